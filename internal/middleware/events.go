package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"
)

// RejectionEvent is the New Relic custom event type for refused requests.
const RejectionEvent = "FunctionRejection"

// EventRecorder sends custom events to New Relic.
type EventRecorder struct {
	nrApp *newrelic.Application
}

func NewEventRecorder(nrApp *newrelic.Application) *EventRecorder {
	return &EventRecorder{nrApp: nrApp}
}

// RecordRejection records a 4xx outcome of a function, e.g. an inactive
// account or a duplicate folio.
func (r *EventRecorder) RecordRejection(route, code string, status int) {
	if r == nil || r.nrApp == nil {
		return
	}

	r.nrApp.RecordCustomEvent(RejectionEvent, map[string]interface{}{
		"route":  route,
		"code":   code,
		"status": status,
	})
}
