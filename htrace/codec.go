package htrace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidID is returned when a trace, span or parent id is not a hex
// string that fits in 64 bits.
var ErrInvalidID = errors.New("htrace: invalid span id")

// hexID is a 64-bit id written as 16 lower-case hex digits.
type hexID uint64

func (id hexID) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", fmt.Sprintf("%016x", uint64(id)))), nil
}

func (id *hexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, string(data))
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidID, s, err)
	}
	*id = hexID(v)
	return nil
}

type wireAnnotation struct {
	Time    int64  `json:"t"`
	Message string `json:"m"`
}

type wireSpan struct {
	TraceID     hexID             `json:"i"`
	SpanID      hexID             `json:"s"`
	Begin       int64             `json:"b"`
	End         int64             `json:"e"`
	Description string            `json:"d,omitempty"`
	ProcessID   string            `json:"r,omitempty"`
	Parents     []hexID           `json:"p,omitempty"`
	KV          map[string]string `json:"n,omitempty"`
	Timeline    []wireAnnotation  `json:"t,omitempty"`
}

// MarshalJSON writes the span using HTrace's short keys.
func (s Span) MarshalJSON() ([]byte, error) {
	w := wireSpan{
		TraceID:     hexID(s.TraceID),
		SpanID:      hexID(s.SpanID),
		Begin:       s.StartMillis,
		End:         s.StopMillis,
		Description: s.Description,
		ProcessID:   s.ProcessID,
		KV:          s.KVAnnotations,
	}
	for _, p := range s.Parents {
		w.Parents = append(w.Parents, hexID(p))
	}
	for _, a := range s.TimelineAnnotations {
		w.Timeline = append(w.Timeline, wireAnnotation{Time: a.TimeMillis, Message: a.Message})
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads a span written with HTrace's short keys.
func (s *Span) UnmarshalJSON(data []byte) error {
	var w wireSpan
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Span{
		Description:   w.Description,
		TraceID:       uint64(w.TraceID),
		SpanID:        uint64(w.SpanID),
		StartMillis:   w.Begin,
		StopMillis:    w.End,
		ProcessID:     w.ProcessID,
		KVAnnotations: w.KV,
	}
	if len(w.Parents) > 0 {
		s.Parents = make([]uint64, len(w.Parents))
		for i, p := range w.Parents {
			s.Parents[i] = uint64(p)
		}
	}
	if len(w.Timeline) > 0 {
		s.TimelineAnnotations = make([]TimelineAnnotation, len(w.Timeline))
		for i, a := range w.Timeline {
			s.TimelineAnnotations[i] = TimelineAnnotation{TimeMillis: a.Time, Message: a.Message}
		}
	}
	return nil
}

// Decode parses a single JSON span.
func Decode(data []byte) (Span, error) {
	var s Span
	if err := json.Unmarshal(data, &s); err != nil {
		return Span{}, fmt.Errorf("failed to decode htrace span: %w", err)
	}
	return s, nil
}

// DecodeBatch parses either a single JSON span or a JSON array of spans.
func DecodeBatch(data []byte) ([]Span, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("failed to decode htrace spans: empty payload")
	}

	if trimmed[0] != '[' {
		s, err := Decode(trimmed)
		if err != nil {
			return nil, err
		}
		return []Span{s}, nil
	}

	var spans []Span
	if err := json.Unmarshal(trimmed, &spans); err != nil {
		return nil, fmt.Errorf("failed to decode htrace spans: %w", err)
	}
	return spans, nil
}
