package models

// Series is an ordered set of (x, y) samples handed to the chart renderer.
// Insertion order is sample order; x is expected to be non-decreasing.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of points, or -1 when X and Y disagree.
func (s Series) Len() int {
	if len(s.X) != len(s.Y) {
		return -1
	}
	return len(s.X)
}

// Append adds one sample.
func (s *Series) Append(x, y float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

// GraphData is the body returned by the backend graph endpoints.
type GraphData struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Time  string    `json:"t,omitempty"` // server time stamp of the recording
	Freq  string    `json:"f,omitempty"` // accelerometer ODR
	Label string    `json:"m,omitempty"` // option the series was built with
}

// Series drops the metadata.
func (g GraphData) Series() Series {
	return Series{X: g.X, Y: g.Y}
}
