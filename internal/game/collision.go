package game

// Collides reports whether the actor overlaps the obstacle.
// Touching edges count as a hit.
func Collides(a *Actor, o Obstacle) bool {
	return a.Box().Overlaps(o.Box())
}

// OutOfBounds reports whether the actor has left the field vertically.
func OutOfBounds(a *Actor, fieldHeight float64) bool {
	return a.Y < 0 || a.Y+a.H > fieldHeight
}

// Failed reports whether the run must end: the actor hit any obstacle
// or left the field.
func Failed(a *Actor, obstacles []Obstacle, fieldHeight float64) bool {
	if OutOfBounds(a, fieldHeight) {
		return true
	}
	for _, o := range obstacles {
		if Collides(a, o) {
			return true
		}
	}
	return false
}
