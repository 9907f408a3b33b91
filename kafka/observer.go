package kafka

import (
	"time"

	"github.com/aalemi-dev/spanbridge/observability"
)

// Operations reported to the observer.
const (
	OperationConsume = "consume"
	OperationDecode  = "decode"
	OperationCommit  = "commit"
)

func (f *SpanFeed) observeOperation(operation, subResource string, duration time.Duration, err error, size int64) {
	if f.observer == nil {
		return
	}
	f.observer.ObserveOperation(observability.OperationContext{
		Component:   observability.ComponentKafka,
		Operation:   operation,
		Resource:    f.cfg.Topic,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
