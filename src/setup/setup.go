// Package setup provisions the default profile, calendar, etiquettes and
// sample events for a newly registered user.
package setup

import (
	"os"

	"github.com/maddiesch/serverless"
)

// IsTest returns true if running the test suite
func IsTest() bool {
	return os.Getenv("SETUP_TEST") == "true"
}

// ReportError logs an error through the shared serverless logger.
func ReportError(err error) {
	reportError(err)
}

func reportError(err error) {
	serverless.GetLogger().Printf("[ERROR] - %v", err)
}
