package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance with the built-in guard factories registered
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		names:           make(map[string]StateID),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
		triggerReg:      map[string]Trigger{"Tick": TriggerTick},
		activePath:      make([]StateID, 0, 4),
	}
	m.RegisterGuardFactory("StateTimeExceeds", stateTimeExceeds[T])
	return m
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard factory to the registry
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// RegisterTrigger binds a config trigger name to a Trigger value
// Must be called before LoadConfig for every trigger used by the config
func (m *Machine[T]) RegisterTrigger(name string, t Trigger) {
	m.triggerReg[name] = t
}

// Init enters the initial state, running OnEnter from Root down, then settles
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok || m.InitialStateID == StateNone {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}

	m.Settle(ctx)
	return nil
}

// Update advances the FSM by delta time
// Runs OnUpdate for the active leaf, then resolves automatic transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	runActions(ctx, leaf.OnUpdate)

	m.Settle(ctx)
}

// Settle resolves chained automatic transitions without advancing time
// Pass-through states resolve in the same call; chain length is bounded
func (m *Machine[T]) Settle(ctx T) {
	for i := 0; i < maxTickChain; i++ {
		if !m.fire(ctx, TriggerTick) {
			return
		}
	}
}

// HandleEvent routes an external trigger through the active path
// Returns true if the trigger caused a transition
func (m *Machine[T]) HandleEvent(ctx T, trigger Trigger) bool {
	if trigger == TriggerTick {
		return false
	}
	if !m.fire(ctx, trigger) {
		return false
	}
	m.Settle(ctx)
	return true
}

// fire evaluates transitions for trigger, bubbling Leaf -> Parent -> Root
func (m *Machine[T]) fire(ctx T, trigger Trigger) bool {
	if m.activeStateID == StateNone {
		return false
	}

	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Trigger != trigger {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx, m.timeInState) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs state change with exit/enter actions relative to the LCA
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.activeStateID == targetID {
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	// Update state before entering so OnEnter actions observe the new leaf
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}
}

// Reset exits the whole active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.activeStateID != StateNone {
		for i := len(m.activePath) - 1; i >= 0; i-- {
			runActions(ctx, m.nodes[m.activePath[i]].OnExit)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// StateName returns the active leaf name, empty before Init
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the active leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// IsIn reports whether the named state is on the active path
func (m *Machine[T]) IsIn(name string) bool {
	id, ok := m.names[name]
	if !ok {
		return false
	}
	for _, active := range m.activePath {
		if active == id {
			return true
		}
	}
	return false
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// stateTimeExceeds builds a guard passing once the leaf has been active for args["ms"]
func stateTimeExceeds[T any](args map[string]any) (GuardFunc[T], error) {
	d, err := durationArg(args, "ms")
	if err != nil {
		return nil, err
	}
	return func(_ T, inState time.Duration) bool {
		return inState >= d
	}, nil
}

// durationArg reads a millisecond count from decoded config args
func durationArg(args map[string]any, key string) (time.Duration, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing guard arg '%s'", key)
	}
	switch v := raw.(type) {
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case float64:
		return time.Duration(v * float64(time.Millisecond)), nil
	default:
		return 0, fmt.Errorf("guard arg '%s' must be a number, got %T", key, raw)
	}
}
