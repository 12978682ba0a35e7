package quadrant

const (
	axisMin = 1.0
	axisMax = 4.0
)

// Point is a chart coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MatrixCell is the rectangle a quadrant occupies on the CS x SS chart
type MatrixCell struct {
	Quadrant Quadrant   `json:"quadrant"`
	Color    string     `json:"color"`
	X        [2]float64 `json:"x"`
	Y        [2]float64 `json:"y"`
	Label    Point      `json:"label_pos"`
}

// MatrixAxis describes one chart axis
type MatrixAxis struct {
	Label string     `json:"label"`
	Range [2]float64 `json:"range"`
}

// MatrixLayout is everything a chart needs to draw the quadrant matrix
type MatrixLayout struct {
	Quadrants []MatrixCell `json:"quadrants"`
	Threshold float64      `json:"threshold"`
	XAxis     MatrixAxis   `json:"x_axis"`
	YAxis     MatrixAxis   `json:"y_axis"`
}

// MatrixLayout splits the [1,4] x [1,4] plane at the classifier threshold
func (c *Classifier) MatrixLayout() MatrixLayout {
	low := [2]float64{axisMin, c.threshold}
	high := [2]float64{c.threshold, axisMax}

	cell := func(q Quadrant, x, y [2]float64) MatrixCell {
		return MatrixCell{
			Quadrant: q,
			Color:    q.Profile().Color,
			X:        x,
			Y:        y,
			Label:    Point{X: (x[0] + x[1]) / 2, Y: (y[0] + y[1]) / 2},
		}
	}

	return MatrixLayout{
		Quadrants: []MatrixCell{
			cell(QuadrantGrowth, low, high),
			cell(QuadrantStar, high, high),
			cell(QuadrantDog, low, low),
			cell(QuadrantValue, high, low),
		},
		Threshold: c.threshold,
		XAxis:     MatrixAxis{Label: "Company Score (CS)", Range: [2]float64{axisMin, axisMax}},
		YAxis:     MatrixAxis{Label: "Stock Score (SS)", Range: [2]float64{axisMin, axisMax}},
	}
}
