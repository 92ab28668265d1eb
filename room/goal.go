package room

// AtGoal returns the goal object the player stands on, if any.
func (e *Env) AtGoal() (Object, bool) {
	for _, o := range e.room.Objects {
		if o.Hypothesis >= 0 && o.Location == e.pos {
			return o, true
		}
	}
	return Object{}, false
}

// Escaped reports whether the player stands on the goal of the true
// hypothesis.
func (e *Env) Escaped() bool {
	o, ok := e.AtGoal()
	return ok && o.Blessed
}
