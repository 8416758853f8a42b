// Package handler is the HTTP layer of the functions.
//
// Each handler decodes and validates its request, calls one service and
// shapes the success envelope. Failures are returned to echo and rendered by
// the global error handler.
package handler
