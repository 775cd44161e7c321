package planning

// JoinTolerance is the distance under which the last state of one path and
// the first state of the next are considered the same state.
const JoinTolerance = 1e-9

// Path is an ordered sequence of states forming a continuous motion.
type Path []State

// Empty reports whether the path has no states.
func (p Path) Empty() bool { return len(p) == 0 }

// Start returns the first state, or nil for an empty path.
func (p Path) Start() State {
	if len(p) == 0 {
		return nil
	}

	return p[0]
}

// End returns the last state, or nil for an empty path.
func (p Path) End() State {
	if len(p) == 0 {
		return nil
	}

	return p[len(p)-1]
}

// Length sums the configuration-space distance between consecutive states.
func (p Path) Length() float64 {
	var l float64
	for i := 1; i < len(p); i++ {
		l += p[i-1].Distance(p[i])
	}

	return l
}

// Clone deep-copies the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}

	return out
}

// Reversed returns a new path traversing p backwards. States are shared.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	for i, s := range p {
		out[len(p)-1-i] = s
	}

	return out
}

// Concat appends the given paths to a copy of p. When a path starts where
// the accumulated path ends (within JoinTolerance) the duplicate join state
// is dropped.
func (p Path) Concat(others ...Path) Path {
	n := len(p)
	for _, o := range others {
		n += len(o)
	}
	out := make(Path, 0, n)
	out = append(out, p...)
	for _, o := range others {
		if len(o) == 0 {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Equal(o[0], JoinTolerance) {
			o = o[1:]
		}
		out = append(out, o...)
	}

	return out
}

// Subdivide inserts interpolated states so that no two consecutive states
// are further apart than maxStep. Non-positive maxStep returns a copy.
func (p Path) Subdivide(maxStep float64) Path {
	if maxStep <= 0 || len(p) < 2 {
		return append(Path(nil), p...)
	}
	out := Path{p[0]}
	for i := 1; i < len(p); i++ {
		d := p[i-1].Distance(p[i])
		steps := int(d / maxStep)
		for k := 1; k <= steps; k++ {
			t := float64(k) / float64(steps+1)
			out = append(out, Interpolate(p[i-1], p[i], t))
		}
		out = append(out, p[i])
	}

	return out
}

// Compact returns a copy of p without consecutive states closer than tol.
func (p Path) Compact(tol float64) Path {
	out := make(Path, 0, len(p))
	for _, s := range p {
		if len(out) > 0 && out[len(out)-1].Equal(s, tol) {
			continue
		}
		out = append(out, s)
	}

	return out
}
