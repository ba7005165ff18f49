package game

// PassIncrement is the score for clearing one obstacle.
// A pair is two obstacles passed on the same tick, so a gap is worth one point.
const PassIncrement = 0.5

// UpdateScore flags every obstacle the actor has fully cleared and returns
// the score gained. Each obstacle scores at most once.
func UpdateScore(a *Actor, f *Field) float64 {
	delta := 0.0
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if !o.Passed && o.Trailing() < a.X {
			o.Passed = true
			delta += PassIncrement
		}
	}
	return delta
}
