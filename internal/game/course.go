package game

// Hole describes one hole of the course. Records are immutable and supplied
// by external course data at game setup.
type Hole struct {
	Number      int `json:"number" hcl:"number,label"`
	Par         int `json:"par" hcl:"par"`
	Yards       int `json:"yards" hcl:"yards"`
	StrokeIndex int `json:"stroke_index" hcl:"stroke_index"`
}

// Course is an ordered set of 18 holes with unique stroke indexes.
type Course struct {
	Name  string `json:"name"`
	Holes []Hole `json:"holes"`
}

// Validate checks the structural constraints the engine depends on: exactly
// 18 holes numbered 1-18 in order, stroke indexes a permutation of 1-18, and
// a total par between 70 and 74.
func (c Course) Validate() error {
	if len(c.Holes) != 18 {
		return validationf("holes", "course must have 18 holes, got %d", len(c.Holes))
	}
	parTotal := 0
	seenIndex := make(map[int]int, 18)
	for i, h := range c.Holes {
		if h.Number != i+1 {
			return validationf("number", "hole %d out of order (number %d)", i+1, h.Number)
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > 18 {
			return validationf("stroke_index", "hole %d has stroke index %d, want 1-18", h.Number, h.StrokeIndex)
		}
		if prev, dup := seenIndex[h.StrokeIndex]; dup {
			return validationf("stroke_index", "stroke index %d duplicated on holes %d and %d", h.StrokeIndex, prev, h.Number)
		}
		seenIndex[h.StrokeIndex] = h.Number
		if h.Par < 3 || h.Par > 6 {
			return validationf("par", "hole %d has par %d, want 3-6", h.Number, h.Par)
		}
		parTotal += h.Par
	}
	if parTotal < 70 || parTotal > 74 {
		return validationf("par", "course par totals %d, want 70-74", parTotal)
	}
	return nil
}

// HoleByNumber returns the hole record for a 1-based hole number.
func (c Course) HoleByNumber(n int) (Hole, error) {
	if n < 1 || n > len(c.Holes) {
		return Hole{}, validationf("hole", "hole number %d out of range", n)
	}
	return c.Holes[n-1], nil
}

// StandardCourse returns a par-72 course used by the simulator and tests
// when no external course data is supplied.
func StandardCourse() Course {
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5}
	yards := []int{390, 410, 170, 520, 380, 400, 155, 430, 545, 385, 180, 365, 510, 420, 395, 165, 440, 530}
	index := []int{5, 3, 17, 9, 7, 1, 15, 11, 13, 6, 16, 12, 8, 2, 10, 18, 4, 14}
	holes := make([]Hole, 18)
	for i := range holes {
		holes[i] = Hole{Number: i + 1, Par: pars[i], Yards: yards[i], StrokeIndex: index[i]}
	}
	return Course{Name: "Standard", Holes: holes}
}
