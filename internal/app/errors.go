package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/grafana"
)

// FormatSourceError formats a rule source error with actionable guidance
func FormatSourceError(err error) string {
	errMsg := err.Error()

	var statusErr *grafana.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Sprintf(
				"Authentication failed: the server rejected the API key.\n\n"+
					"Troubleshooting steps:\n"+
					"  1. Verify grafana.api_key in config.yaml or RULEDECK_GRAFANA_API_KEY\n"+
					"  2. Ensure the key has at least the Viewer role (Editor to pause rules)\n"+
					"  3. Check grafana.org_id matches the organization owning the key\n"+
					"\nOriginal error: %s", errMsg)
		case http.StatusNotFound:
			return fmt.Sprintf(
				"Alerting API not found.\n\n"+
					"Troubleshooting steps:\n"+
					"  1. Verify grafana.url points at the server root, not a dashboard\n"+
					"  2. Check that legacy alerting is enabled on the server\n"+
					"\nOriginal error: %s", errMsg)
		}
	}

	if errors.Is(err, alerts.ErrRuleNotFound) {
		return fmt.Sprintf(
			"Alert rule not found.\n\n"+
				"Run `ruledeck list` to see the available rule IDs.\n"+
				"\nOriginal error: %s", errMsg)
	}

	if strings.Contains(errMsg, "connection refused") {
		return fmt.Sprintf(
			"Connection refused: the dashboard server is not accepting connections.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Verify the server is running\n"+
				"  2. Check grafana.url host and port\n"+
				"  3. Verify firewall settings allow the connection\n"+
				"\nOriginal error: %s", errMsg)
	}

	if strings.Contains(errMsg, "no such host") {
		return fmt.Sprintf(
			"Host not found: Cannot resolve hostname.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Verify the hostname in grafana.url\n"+
				"  2. Try using an IP address instead of the hostname\n"+
				"\nOriginal error: %s", errMsg)
	}

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline exceeded") {
		return fmt.Sprintf(
			"Timeout: the rule source did not respond in time.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check network connectivity to the server\n"+
				"  2. Increase grafana.timeout in config.yaml\n"+
				"\nOriginal error: %s", errMsg)
	}

	if strings.Contains(errMsg, "unable to open database") || strings.Contains(errMsg, "database is locked") {
		return fmt.Sprintf(
			"Local database unavailable.\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check storage.path is writable\n"+
				"  2. Make sure no other process holds the database open\n"+
				"\nOriginal error: %s", errMsg)
	}

	// Default error formatting
	return fmt.Sprintf(
		"Rule source error:\n\n"+
			"%s\n\n"+
			"Check your configuration in config.yaml or environment variables.\n"+
			"Run with --debug flag for detailed logs.", errMsg)
}
