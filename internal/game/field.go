package game

// Field owns the live obstacles in creation order.
// Pairs are appended top first, so the newest obstacle is always last.
type Field struct {
	obstacles []Obstacle
	gen       Generator
}

// NewField creates an empty field that spawns pairs from gen.
func NewField(gen Generator) *Field {
	return &Field{
		obstacles: make([]Obstacle, 0, 8),
		gen:       gen,
	}
}

// Advance scrolls every obstacle left by speed.
func (f *Field) Advance(speed float64) {
	for i := range f.obstacles {
		f.obstacles[i].X -= speed
	}
}

// Prune removes obstacles whose trailing edge has reached the left edge.
func (f *Field) Prune() {
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.Trailing() > 0 {
			kept = append(kept, o)
		}
	}
	clear(f.obstacles[len(kept):])
	f.obstacles = kept
}

// MaybeSpawn appends a new pair when the field is empty or the newest
// obstacle has scrolled past fieldWidth-spawnThreshold.
// Returns true if a pair was added.
func (f *Field) MaybeSpawn(fieldWidth, spawnThreshold float64) bool {
	if n := len(f.obstacles); n > 0 && f.obstacles[n-1].X >= fieldWidth-spawnThreshold {
		return false
	}
	top, bottom := f.gen.Pair()
	f.obstacles = append(f.obstacles, top, bottom)
	return true
}

// Step runs the per-frame sequence: advance, prune, spawn.
func (f *Field) Step(speed, fieldWidth, spawnThreshold float64) bool {
	f.Advance(speed)
	f.Prune()
	return f.MaybeSpawn(fieldWidth, spawnThreshold)
}

// Obstacles returns the live obstacles. Callers must not modify the slice.
func (f *Field) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Reset removes every obstacle.
func (f *Field) Reset() {
	clear(f.obstacles)
	f.obstacles = f.obstacles[:0]
}
