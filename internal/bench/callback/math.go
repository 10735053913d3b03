package callback

import "math"

// Length returns the euclidean norm of (x, y).
func Length(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// Distance returns the euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// ComplexCalc projects (angle, radius) to cartesian coordinates and scores
// the magnitude: large magnitudes are amplified by the tangent, small ones
// damped and offset by the sine.
func ComplexCalc(angle, radius float64) float64 {
	x := radius * math.Cos(angle)
	y := radius * math.Sin(angle)
	magnitude := math.Sqrt(x*x + y*y)

	if magnitude > 10.0 {
		return magnitude*1.5 + math.Abs(math.Tan(angle))
	}
	return magnitude*0.8 + math.Sin(angle)
}
