package circuit

// TraverseState is a gate's visitation state during a DFS/BFS walk: never
// visited, currently open (on the DFS stack or BFS frontier), or fully
// processed. A gate found in state Entered while being discovered again
// indicates a cycle.
type TraverseState int

const (
	StateUnseen TraverseState = iota
	StateEntered
	StateExited
)

// DFSHooks customizes a DFS/BFS walk. OnEnter/OnExit fire when a gate
// transitions to Entered/Exited. OnDiscover fires for every edge
// walked, reporting the state the target gate was in at that moment;
// returning a non-nil error aborts the walk (used by cycle detection
// to fail as soon as an Entered gate is rediscovered). UnvisitedHook,
// if set, fires once for every gate still Unseen after every label in
// `starts` has been walked — it is notification-only and does not
// itself trigger a visit.
type DFSHooks struct {
	OnEnter       func(Label)
	OnExit        func(Label)
	OnDiscover    func(from, to Label, state TraverseState) error
	UnvisitedHook func(Label)
}

// neighborsOf returns the edges DFS/BFS should follow out of `label`:
// its operands in forward mode, or its users (the reverse edges) in
// inverse mode.
func (c *Circuit) neighborsOf(label Label, inverse bool) ([]Label, error) {
	if inverse {
		return c.users[label], nil
	}
	g, ok := c.gates[label]
	if !ok {
		return nil, newError(KindGateAbsent, "DFS", "gate %q does not exist", label)
	}
	return g.Operands, nil
}

// fireUnvisited calls hooks.UnvisitedHook, in GateLabels order, for
// every gate the walk never reached.
func (c *Circuit) fireUnvisited(state map[Label]TraverseState, hooks DFSHooks) {
	if hooks.UnvisitedHook == nil {
		return
	}
	for _, l := range c.GateLabels() {
		if state[l] == StateUnseen {
			hooks.UnvisitedHook(l)
		}
	}
}

// DFS performs an iterative depth-first walk starting from `starts`,
// visiting operands before the gate itself (postorder) in forward
// mode, or users before the gate itself when inverse is true. This
// matches the reference implementation's dfs/on_discover_hook
// contract.
func (c *Circuit) DFS(starts []Label, inverse bool, hooks DFSHooks) error {
	state := make(map[Label]TraverseState, len(c.gates))

	type frame struct {
		label Label
		next  int // index into neighbors still to visit
	}

	var visit func(root Label) error
	visit = func(root Label) error {
		stack := []frame{{label: root}}
		state[root] = StateEntered
		if hooks.OnEnter != nil {
			hooks.OnEnter(root)
		}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors, err := c.neighborsOf(top.label, inverse)
			if err != nil {
				return err
			}
			if top.next < len(neighbors) {
				op := neighbors[top.next]
				top.next++
				opState := state[op]
				if hooks.OnDiscover != nil {
					if err := hooks.OnDiscover(top.label, op, opState); err != nil {
						return err
					}
				}
				if opState == StateUnseen {
					state[op] = StateEntered
					if hooks.OnEnter != nil {
						hooks.OnEnter(op)
					}
					stack = append(stack, frame{label: op})
				}
				continue
			}
			// all neighbors visited
			state[top.label] = StateExited
			if hooks.OnExit != nil {
				hooks.OnExit(top.label)
			}
			stack = stack[:len(stack)-1]
		}
		return nil
	}

	for _, s := range starts {
		if state[s] == StateUnseen {
			if err := visit(s); err != nil {
				return err
			}
		}
	}
	c.fireUnvisited(state, hooks)
	return nil
}

// BFS performs an iterative breadth-first walk starting from `starts`,
// following operands in forward mode or users in inverse mode. Hooks
// have the same meaning as in DFS: OnEnter/OnExit fire on enqueue and
// on dequeue-after-all-neighbors-discovered, OnDiscover fires for
// every edge walked, and UnvisitedHook fires for gates the walk never
// reached.
func (c *Circuit) BFS(starts []Label, inverse bool, hooks DFSHooks) error {
	state := make(map[Label]TraverseState, len(c.gates))
	queue := make([]Label, 0, len(starts))

	for _, s := range starts {
		if state[s] == StateUnseen {
			state[s] = StateEntered
			if hooks.OnEnter != nil {
				hooks.OnEnter(s)
			}
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		label := queue[0]
		queue = queue[1:]

		neighbors, err := c.neighborsOf(label, inverse)
		if err != nil {
			return err
		}
		for _, op := range neighbors {
			opState := state[op]
			if hooks.OnDiscover != nil {
				if err := hooks.OnDiscover(label, op, opState); err != nil {
					return err
				}
			}
			if opState == StateUnseen {
				state[op] = StateEntered
				if hooks.OnEnter != nil {
					hooks.OnEnter(op)
				}
				queue = append(queue, op)
			}
		}

		state[label] = StateExited
		if hooks.OnExit != nil {
			hooks.OnExit(label)
		}
	}

	c.fireUnvisited(state, hooks)
	return nil
}

// CheckAcyclic returns a CycleIntroduced error if the circuit contains
// a cycle reachable from its outputs (or, if there are none declared
// yet, from every gate).
func (c *Circuit) CheckAcyclic() error {
	starts := c.outputs
	if len(starts) == 0 {
		starts = c.GateLabels()
	}
	return c.DFS(starts, false, DFSHooks{
		OnDiscover: func(from, to Label, state TraverseState) error {
			if state == StateEntered {
				return newError(KindCycleIntroduced, "CheckAcyclic", "cycle through %q -> %q", from, to)
			}
			return nil
		},
	})
}

// TopSort returns gate labels in topological order: operands before
// their users in forward mode (inverse=false), users before their
// operands when inverse=true. The walk starts from the circuit's
// outputs (forward) or inputs (inverse); if none are declared it
// falls back to every gate. When topsortUnvisited is true, gates not
// reachable from those natural starts are appended to the walk too,
// in GateLabels order, so the returned order covers the whole
// circuit. TopSort fails with a CycleIntroduced error if the circuit
// is not acyclic.
func (c *Circuit) TopSort(inverse bool, topsortUnvisited bool) ([]Label, error) {
	var starts []Label
	if inverse {
		starts = c.inputs
	} else {
		starts = c.outputs
	}
	if len(starts) == 0 {
		starts = c.GateLabels()
	} else if topsortUnvisited {
		seen := make(map[Label]bool, len(starts))
		for _, s := range starts {
			seen[s] = true
		}
		for _, l := range c.GateLabels() {
			if !seen[l] {
				starts = append(starts, l)
				seen[l] = true
			}
		}
	}

	var order []Label
	err := c.DFS(starts, inverse, DFSHooks{
		OnDiscover: func(from, to Label, state TraverseState) error {
			if state == StateEntered {
				return newError(KindCycleIntroduced, "TopSort", "cycle through %q -> %q", from, to)
			}
			return nil
		},
		OnExit: func(l Label) {
			order = append(order, l)
		},
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
