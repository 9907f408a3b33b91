package kafka

import (
	"github.com/aalemi-dev/spanbridge/htrace"
)

// Decoder turns one message value into spans.
type Decoder interface {
	Decode(data []byte) ([]htrace.Span, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) ([]htrace.Span, error)

func (f DecoderFunc) Decode(data []byte) ([]htrace.Span, error) {
	return f(data)
}

// JSONDecoder reads HTrace JSON: a single span object or an array of them.
type JSONDecoder struct{}

func (JSONDecoder) Decode(data []byte) ([]htrace.Span, error) {
	return htrace.DecodeBatch(data)
}
