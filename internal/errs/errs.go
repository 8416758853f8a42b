// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. HTTPError for API responses) to ensure the client
// receives consistent error messages while the original
// failure stays available for server-side logs.
package errs
