package logger

import (
	"log"
	"os"
)

// New returns the process logger. Timestamps are UTC so log lines line up
// with the MH's fhProcesamiento values regardless of host timezone.
func New() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
}
