package asset

// DefaultDialogueFSMConfig returns the default dialogue FSM TOML configuration
const DefaultDialogueFSMConfig = `
initial = "Entering"

# === Scene playback ===

[states.Scene]
parent = "Root"

[states.Entering]
parent = "Scene"
on_enter = [
    { action = "EnterScene" },
]
transitions = [
    { trigger = "Tick", target = "Typing", guard = "HasLine" },
    { trigger = "Tick", target = "Exhausted" },
]

# --- TYPEWRITER ---

[states.Typing]
parent = "Scene"
on_enter = [
    { action = "BeginLine" },
]
on_update = [
    { action = "RevealTick" },
]
transitions = [
    { trigger = "Continue", target = "LineDone" },
    { trigger = "Tick", target = "LineDone", guard = "LineRevealed" },
]

[states.LineDone]
parent = "Scene"
on_enter = [
    { action = "RevealAll" },
]
transitions = [
    { trigger = "Continue", target = "Advancing" },
    { trigger = "Tick", target = "Advancing", guard = "AutoAdvanceElapsed" },
]

[states.Advancing]
parent = "Scene"
on_enter = [
    { action = "NextLine" },
]
transitions = [
    { trigger = "Tick", target = "Typing", guard = "HasLine" },
    { trigger = "Tick", target = "Exhausted" },
]

# --- OUTFLOW ---

[states.Exhausted]
parent = "Scene"
on_enter = [
    { action = "QueueNext" },
]
transitions = [
    { trigger = "Tick", target = "Ended", guard = "IsEnding" },
    { trigger = "Tick", target = "Interstitial", guard = "IsInterstitial" },
    { trigger = "Tick", target = "AwaitingDecision", guard = "HasDecision" },
    { trigger = "Tick", target = "Entering", guard = "IsLinear" },
]

[states.AwaitingDecision]
parent = "Scene"
on_enter = [
    { action = "ShowDecision" },
]
on_exit = [
    { action = "HideDecision" },
]
transitions = [
    { trigger = "Choose", target = "Entering" },
]

[states.Interstitial]
parent = "Scene"
transitions = [
    { trigger = "Continue", target = "Entering" },
    { trigger = "Tick", target = "Entering", guard = "InterstitialHoldElapsed" },
]

[states.Ended]
parent = "Root"
on_enter = [
    { action = "FinishStory" },
]
`
