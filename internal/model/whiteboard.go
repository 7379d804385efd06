package model

// Whiteboard action types
const (
	ActionStroke = "stroke"
	ActionFill   = "fill"
)

// Point is a single whiteboard coordinate, serialized as [x, y].
type Point [2]float64

// WhiteboardAction is one entry in a room's append-only drawing log.
// Type selects which fields are meaningful: strokes carry Tool, Size and
// Points; fills carry X and Y. Replaying the log in order reconstructs
// the canvas exactly.
type WhiteboardAction struct {
	Type   string  `json:"type"`
	Tool   string  `json:"tool,omitempty"`
	Color  string  `json:"color,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Points []Point `json:"points,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}
