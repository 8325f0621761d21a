package model

import "time"

// DifficultyManager keeps the window of recent solve times and resolves
// the difficulty of the next mining round from it
type DifficultyManager interface {
	CurrentDifficulty() uint32
	AddSolveTime(solveTime time.Duration) (newDifficulty uint32)
	SolveTimes() []time.Duration
}
