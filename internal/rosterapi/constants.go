package rosterapi

import "time"

const (
	// DefaultCohort is the cohort whose roster is used when none is configured
	DefaultCohort = "2302-ACC-PT-WEB-PT-A"

	defaultAPIRoot     = "https://fsa-puppy-bowl.herokuapp.com/api"
	defaultHTTPTimeout = 30 * time.Second

	// errorBodyLimit caps how much of a failed response body ends up in an error
	errorBodyLimit = 512
)

// Operation names used in errors, logs and metrics
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpRemove = "remove"
)
