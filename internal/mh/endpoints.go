// Package mh implements the Ministerio de Hacienda DTE API protocol:
// authentication, document reception, status query, invalidation and
// contingency notification. Endpoint paths and payload shapes follow the
// DGII integration guide for factura electrónica.
package mh

import "strings"

// Environment selects the MH deployment a client talks to.
type Environment string

const (
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// Code returns the two-digit ambiente code embedded in documents and
// reception requests: "00" test, "01" production.
func (e Environment) Code() string {
	if e == EnvProduction {
		return "01"
	}
	return "00"
}

const (
	testBaseURL       = "https://apitest.dtes.mh.gob.sv"
	productionBaseURL = "https://api.dtes.mh.gob.sv"
)

// Endpoints resolves the MH service URLs for one base host.
type Endpoints struct {
	base string
}

// EndpointsFor returns the official endpoints for env.
func EndpointsFor(env Environment) Endpoints {
	if env == EnvProduction {
		return Endpoints{base: productionBaseURL}
	}
	return Endpoints{base: testBaseURL}
}

// CustomEndpoints points every service at base, used to target a local
// test server.
func CustomEndpoints(base string) Endpoints {
	return Endpoints{base: strings.TrimSuffix(base, "/")}
}

func (e Endpoints) Auth() string         { return e.base + "/seguridad/auth" }
func (e Endpoints) Reception() string    { return e.base + "/fesv/recepciondte" }
func (e Endpoints) Query() string        { return e.base + "/fesv/recepcion/consultadte/" }
func (e Endpoints) Invalidation() string { return e.base + "/fesv/anulardte" }
func (e Endpoints) Contingency() string  { return e.base + "/fesv/contingencia" }
