package moon

// State is a step of a single render call.
//
//	Start -> PhaseResolved -> SceneBuilt -> Rasterized -> Encoded -> Done
//	                                     \-> RasterizationUnavailable -> FallbackRendered -> Encoded -> Done
//
// SceneBuilt is skipped when the failure happens before the scene exists.
type State int

const (
	Start State = iota
	PhaseResolved
	SceneBuilt
	Rasterized
	RasterizationUnavailable
	FallbackRendered
	Encoded
	Done
)

var stateNames = [...]string{
	Start:                    "start",
	PhaseResolved:            "phase_resolved",
	SceneBuilt:               "scene_built",
	Rasterized:               "rasterized",
	RasterizationUnavailable: "rasterization_unavailable",
	FallbackRendered:         "fallback_rendered",
	Encoded:                  "encoded",
	Done:                     "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
