// Package models holds the request-scoped records exchanged between the
// handlers, the services and the storage/auth collaborators.
//
// Nothing here is persisted by this service and nothing outlives a request.
package models
