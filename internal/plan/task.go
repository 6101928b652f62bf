package plan

// TaskKind discriminates the task tree variants.
type TaskKind int

const (
	// TaskSequence succeeds only if every child succeeds in order,
	// threading the mutated snapshot forward.
	TaskSequence TaskKind = iota + 1
	// TaskSelect tries children in order and stops at the first success.
	TaskSelect
	// TaskAction is a primitive: conditions, a body that emits actions,
	// and an effect that advances the snapshot.
	TaskAction
)

// Condition is a predicate over the planning snapshot. Conditions may stash
// selector results in the snapshot's scratch fields for the body to use.
type Condition func(s *Snapshot) bool

// Task is a node of the declarative planning domain: Sequence, Select, or a
// primitive action. The tree is built once per scenario and reused every
// planning pass.
type Task struct {
	Name       string
	Kind       TaskKind
	Children   []*Task
	Conditions []Condition
	Body       func(s *Snapshot)
	Effect     func(s *Snapshot)
}

// Sequence builds a Sequence node.
func Sequence(name string, children ...*Task) *Task {
	return &Task{Name: name, Kind: TaskSequence, Children: children}
}

// Select builds a Select node.
func Select(name string, children ...*Task) *Task {
	return &Task{Name: name, Kind: TaskSelect, Children: children}
}

// Action builds a primitive node. body and effect may be nil.
func Action(name string, conditions []Condition, body, effect func(s *Snapshot)) *Task {
	return &Task{Name: name, Kind: TaskAction, Conditions: conditions, Body: body, Effect: effect}
}

// Decompose runs the depth-first, order-sensitive search over the task tree
// against a snapshot. Primitive conditions short-circuit on the first false.
// A failing Sequence child aborts the Sequence without rolling back earlier
// children's snapshot mutations; the pass is abandoned wholesale instead.
func Decompose(t *Task, s *Snapshot) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TaskAction:
		for _, cond := range t.Conditions {
			if !cond(s) {
				return false
			}
		}
		if t.Body != nil {
			t.Body(s)
		}
		if t.Effect != nil {
			t.Effect(s)
		}
		return true
	case TaskSequence:
		for _, child := range t.Children {
			if !Decompose(child, s) {
				return false
			}
		}
		return true
	case TaskSelect:
		for _, child := range t.Children {
			if Decompose(child, s) {
				return true
			}
		}
		return false
	}
	return false
}
