package ingest

import (
	"time"

	"github.com/aalemi-dev/spanbridge/observability"
)

func (s *Server) observeOperation(route string, status int, duration time.Duration, err error, size int64) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component: observability.ComponentIngest,
		Operation: OperationRequest,
		Resource:  route,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata: map[string]interface{}{
			"status": status,
		},
	})
}
