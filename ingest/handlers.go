package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aalemi-dev/spanbridge/htrace"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// OperationRequest is reported to the observer once per request.
const OperationRequest = "request"

type acceptedResponse struct {
	Accepted int `json:"accepted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Backend string `json:"backend"`
}

// handleSpans passes every span in the body to the receiver before
// answering, so a 202 means the spans were submitted or dropped.
func (s *Server) handleSpans(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.fail(w, r, start, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, start, http.StatusRequestEntityTooLarge,
				fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit))
			return
		}
		s.fail(w, r, start, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadPayload, err))
		return
	}

	spans, err := htrace.DecodeBatch(body)
	if err != nil {
		s.fail(w, r, start, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadPayload, err))
		return
	}

	for _, span := range spans {
		s.receiver.ReceiveSpanContext(r.Context(), span)
	}

	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: len(spans)})
	s.observeOperation(r.URL.Path, http.StatusAccepted, time.Since(start), nil, int64(len(spans)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: ErrMethodNotAllowed.Error()})
		return
	}

	if s.backend == nil {
		writeJSON(w, http.StatusOK, healthResponse{Backend: "unknown"})
		return
	}

	state := s.backend.State()
	status := http.StatusOK
	if state == tracer.StateFailed {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{Backend: state.String()})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, start time.Time, status int, err error) {
	s.log.WarnWithContext(r.Context(), "rejected span request", err, map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	writeJSON(w, status, errorResponse{Error: err.Error()})
	s.observeOperation(r.URL.Path, status, time.Since(start), err, 0)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
