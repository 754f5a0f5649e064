package player

// Status represents the engine's load state.
//
//	┌──────────┐   Load    ┌──────────┐  decoded  ┌──────────┐
//	│  Empty   │ ─────────▶│ Loading  │ ─────────▶│  Ready   │
//	└──────────┘           └──────────┘           └──────────┘
//	                            │                      │
//	                      error │                 Load │ (new track)
//	                            ▼                      ▼
//	                       ┌──────────┐           Loading
//	                       │  Failed  │
//	                       └──────────┘
//
// Close moves any status to Closed. Play before Ready is remembered and
// applied once the track is decoded.
type Status int

const (
	Empty Status = iota
	Loading
	Ready
	Failed
	Closed
)

// String returns the status name for debugging.
func (s Status) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// CanPlay returns true if the status has a decoded stream.
func (s Status) CanPlay() bool {
	return s == Ready
}

// CanLoad returns true if a new Load is accepted.
func (s Status) CanLoad() bool {
	return s != Closed
}
