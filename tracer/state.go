package tracer

// State is the lifecycle state of a backend connection.
//
//	Uninitialized -> Initializing -> Ready
//	                              -> Failed -> (Reset) -> Uninitialized
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// settled reports whether initialization has run to completion, either way.
func (s State) settled() bool {
	return s == StateReady || s == StateFailed
}
