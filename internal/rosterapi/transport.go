package rosterapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = URLForCohort(DefaultCohort)
	}
	return strings.TrimSuffix(raw, "/")
}

// URLForCohort returns the public players endpoint for a cohort
func URLForCohort(cohort string) string {
	if cohort == "" {
		cohort = DefaultCohort
	}
	return defaultAPIRoot + "/" + url.PathEscape(cohort) + "/players"
}
