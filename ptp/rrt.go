package ptp

import (
	"math"
	"time"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// deadlineCheckMask controls how often the wall clock is consulted.
const deadlineCheckMask = 63

type extendStatus int

const (
	trapped extendStatus = iota
	advanced
	reached
)

// tree is a rooted RRT; parent[0] == -1.
type tree struct {
	nodes  []planning.State
	parent []int
}

func newTree(root planning.State) *tree {
	return &tree{nodes: []planning.State{root.Clone()}, parent: []int{-1}}
}

func (t *tree) add(s planning.State, parent int) int {
	t.nodes = append(t.nodes, s)
	t.parent = append(t.parent, parent)

	return len(t.nodes) - 1
}

// nearest is a linear scan; trees stay small under the iteration budget.
func (t *tree) nearest(q planning.State) int {
	best, bestD := 0, math.Inf(1)
	for i, s := range t.nodes {
		if d := s.Distance(q); d < bestD {
			best, bestD = i, d
		}
	}

	return best
}

// branch returns the states from the root to node i.
func (t *tree) branch(i int) planning.Path {
	var out planning.Path
	for ; i >= 0; i = t.parent[i] {
		out = append(out, t.nodes[i])
	}

	return out.Reversed()
}

// connect tries the straight motion, then bidirectional RRT-Connect.
// The returned path starts at start and ends at end.
func (p *Planner) connect(start, end planning.State, deadline time.Time) (planning.Path, bool) {
	if p.validity.CheckMotion(start, end) {
		return planning.Path{start.Clone(), end.Clone()}, true
	}

	a, b := newTree(start), newTree(end)
	aIsStart := true
	for it := 0; it < p.opts.MaxIterations; it++ {
		if it&deadlineCheckMask == 0 && !time.Now().Before(deadline) {
			return nil, false
		}
		q := p.bounds.sample(p.rng)
		status, ia := p.extend(a, q)
		if status != trapped {
			if p.connectTree(b, a.nodes[ia]) == reached {
				ib := len(b.nodes) - 1
				if aIsStart {
					return joinTrees(a, ia, b, ib), true
				}
				return joinTrees(b, ib, a, ia), true
			}
		}
		a, b = b, a
		aIsStart = !aIsStart
	}

	return nil, false
}

// joinTrees concatenates the branch of from up to i with the reversed branch
// of to from j; nodes i and j hold the same state.
func joinTrees(from *tree, i int, to *tree, j int) planning.Path {
	head := from.branch(i)
	tail := to.branch(j).Reversed()

	return head.Concat(tail)
}

// extend grows t one step from its nearest node toward q.
func (p *Planner) extend(t *tree, q planning.State) (extendStatus, int) {
	near := t.nearest(q)
	from := t.nodes[near]
	d := from.Distance(q)
	status := reached
	to := q
	if d > p.opts.Step {
		to = planning.Interpolate(from, q, p.opts.Step/d)
		status = advanced
	}
	if !p.IsValid(to) || !p.validity.CheckMotion(from, to) {
		return trapped, -1
	}

	return status, t.add(to, near)
}

// connectTree extends t toward q until it reaches q or gets trapped.
func (p *Planner) connectTree(t *tree, q planning.State) extendStatus {
	for {
		status, _ := p.extend(t, q)
		if status != advanced {
			return status
		}
	}
}
