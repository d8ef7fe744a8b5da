package dte

import (
	"math"
	"strings"
	"time"
)

// ivaRate is the Salvadoran value-added tax rate.
const ivaRate = 0.13

// ivaTributeCode identifies IVA in the tributos arrays.
const ivaTributeCode = "20"

const ivaTributeDescription = "Impuesto al Valor Agregado 13%"

// round2 rounds to two decimals, half away from zero. Monetary fields in the
// MH schemas carry at most two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// svLocation is El Salvador local time (UTC-6, no DST).
var svLocation = time.FixedZone("America/El_Salvador", -6*60*60)

// svNow returns the emission date and time strings in El Salvador local time,
// formatted as the identificación block requires.
func svNow(now time.Time) (fecha, hora string) {
	local := now.In(svLocation)
	return local.Format("2006-01-02"), local.Format("15:04:05")
}

// ValidNIT reports whether nit matches XXXX-XXXXXX-XXX-X.
func ValidNIT(nit string) bool {
	parts := strings.Split(nit, "-")
	if len(parts) != 4 {
		return false
	}
	lengths := []int{4, 6, 3, 1}
	for i, p := range parts {
		if len(p) != lengths[i] || !allDigits(p) {
			return false
		}
	}
	return true
}

// ValidNRC reports whether nrc matches XXXXXX-X.
func ValidNRC(nrc string) bool {
	parts := strings.Split(nrc, "-")
	if len(parts) != 2 {
		return false
	}
	return allDigits(parts[0]) && len(parts[1]) == 1 && allDigits(parts[1])
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// strPtr returns a pointer to s, used for nullable wire fields.
func strPtr(s string) *string { return &s }

// orDefault returns v unless it is the zero value.
func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultF(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultI(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
