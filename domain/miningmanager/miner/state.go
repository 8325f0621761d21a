package miner

import "fmt"

// RoundState is the state of the miner's current round
type RoundState uint32

// A round goes Idle -> Templating -> Searching -> (Solved | Preempted) -> Idle.
// A miner waiting for transactions is Idle.
const (
	StateIdle RoundState = iota
	StateTemplating
	StateSearching
	StateSolved
	StatePreempted
)

var roundStateStrings = map[RoundState]string{
	StateIdle:       "Idle",
	StateTemplating: "Templating",
	StateSearching:  "Searching",
	StateSolved:     "Solved",
	StatePreempted:  "Preempted",
}

func (s RoundState) String() string {
	if str, ok := roundStateStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("Unknown RoundState (%d)", uint32(s))
}

var validTransitions = map[RoundState][]RoundState{
	StateIdle:       {StateTemplating},
	StateTemplating: {StateSearching, StateIdle},
	StateSearching:  {StateSolved, StatePreempted, StateIdle},
	StateSolved:     {StateIdle},
	StatePreempted:  {StateIdle},
}

func isValidTransition(from, to RoundState) bool {
	for _, valid := range validTransitions[from] {
		if valid == to {
			return true
		}
	}
	return false
}
