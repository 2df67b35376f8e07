package game

import "math"

// Handicap stroke allocation, known in Wolf Goat Pig circles as the Creecher
// Feature: half-strokes appear both on the cusp hole of a fractional
// handicap and, for handicaps above 18, on the easiest holes of the course.

const (
	// MaxHandicap is the upper bound of the supported handicap domain.
	MaxHandicap = 54.0

	// creecherHoles caps how many easy holes can be demoted to half strokes.
	creecherHoles = 6
)

// CalculateStrokes returns the strokes a player receives on a hole with the
// given stroke index:
//
//  1. Stroke index at or below the whole part of the handicap earns a full
//     stroke.
//  2. A fractional handicap of .5 or more earns a half stroke on the next
//     hardest hole.
//  3. Handicaps above 18 have their easiest holes (stroke index counting
//     down from 18) capped at a half stroke each, one hole per stroke over
//     18, up to six holes.
func CalculateStrokes(handicap float64, strokeIndex int) (float64, error) {
	if handicap < 0 || handicap > MaxHandicap {
		return 0, validationf("handicap", "%.1f outside 0-%.0f", handicap, MaxHandicap)
	}
	if strokeIndex < 1 || strokeIndex > 18 {
		return 0, validationf("stroke_index", "%d outside 1-18", strokeIndex)
	}

	full := math.Floor(handicap)

	if handicap > 18 {
		creecherCount := int(math.Min(math.Floor(handicap-18), creecherHoles))
		// Easiest holes run from stroke index 18 downward.
		if strokeIndex > 18-creecherCount {
			return 0.5, nil
		}
	}

	if float64(strokeIndex) <= full {
		return 1.0, nil
	}
	if handicap-full >= 0.5 && strokeIndex == int(full)+1 {
		return 0.5, nil
	}
	return 0, nil
}

// CalculateNetScore subtracts strokes received from the gross score.
// Half-integer results are expected.
func CalculateNetScore(gross, strokes float64) float64 {
	return gross - strokes
}

// AllocateStrokes computes the full-course stroke allocation for a handicap.
// The course is validated first, which asserts stroke index uniqueness; a
// duplicated index is a course-data defect the calculator refuses to work
// around. The returned map is keyed by hole number.
func AllocateStrokes(handicap float64, course Course) (map[int]float64, error) {
	if err := course.Validate(); err != nil {
		return nil, err
	}
	strokes := make(map[int]float64, len(course.Holes))
	for _, h := range course.Holes {
		s, err := CalculateStrokes(handicap, h.StrokeIndex)
		if err != nil {
			return nil, err
		}
		strokes[h.Number] = s
	}
	return strokes, nil
}
