package fsm

// RootConfig is a decoded FSM file: the initial state and every named state
type RootConfig struct {
	InitialState string                  `toml:"initial"`
	States       map[string]*StateConfig `toml:"states"`
}

// StateConfig is one state; an empty parent means Root
type StateConfig struct {
	Parent      string             `toml:"parent,omitempty"`
	OnEnter     []ActionConfig     `toml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `toml:"on_update,omitempty"`
	OnExit      []ActionConfig     `toml:"on_exit,omitempty"`
	Transitions []TransitionConfig `toml:"transitions,omitempty"`
}

// TransitionConfig is evaluated in file order, the first passing guard wins
type TransitionConfig struct {
	Trigger   string         `toml:"trigger"`              // Registered trigger name or "Tick"
	Target    string         `toml:"target"`               // Target state name
	Guard     string         `toml:"guard,omitempty"`      // Guard function name
	GuardArgs map[string]any `toml:"guard_args,omitempty"` // Parameters for factory guards
}

// ActionConfig names a registered action and its static arguments
type ActionConfig struct {
	Action string         `toml:"action"`         // Registered action name
	Args   map[string]any `toml:"args,omitempty"` // Passed verbatim to the action
}
