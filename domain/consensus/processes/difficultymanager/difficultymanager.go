package difficultymanager

import (
	"math/big"
	"sync"
	"time"

	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model"
)

// difficultyManager retargets the difficulty after every solved round
// from the window of the most recent solve times
type difficultyManager struct {
	mtx sync.RWMutex

	targetTimePerBlock time.Duration
	minDifficulty      uint32
	maxDifficulty      uint32
	maxDifficultyStep  uint32

	difficulty uint32
	window     *solveTimeWindow
}

// New instantiates a new DifficultyManager starting at the initial difficulty of params
func New(params *chaincfg.Params) model.DifficultyManager {
	return &difficultyManager{
		targetTimePerBlock: params.TargetTimePerBlock,
		minDifficulty:      params.MinDifficulty,
		maxDifficulty:      params.MaxDifficulty,
		maxDifficultyStep:  params.MaxDifficultyStep,
		difficulty:         clamp(params.InitialDifficulty, params.MinDifficulty, params.MaxDifficulty),
		window:             newSolveTimeWindow(params.DifficultyAdjustmentWindowSize),
	}
}

// CurrentDifficulty returns the difficulty of the next mining round
func (dm *difficultyManager) CurrentDifficulty() uint32 {
	dm.mtx.RLock()
	defer dm.mtx.RUnlock()

	return dm.difficulty
}

// AddSolveTime records the solve time of a round, evicting the oldest one
// if the window is full, and retargets the difficulty
func (dm *difficultyManager) AddSolveTime(solveTime time.Duration) uint32 {
	dm.mtx.Lock()
	defer dm.mtx.Unlock()

	if solveTime < 0 {
		solveTime = 0
	}
	dm.window.add(solveTime)

	oldDifficulty := dm.difficulty
	dm.difficulty = NextDifficulty(oldDifficulty, dm.window.len(), dm.window.sum(),
		dm.targetTimePerBlock, dm.minDifficulty, dm.maxDifficulty, dm.maxDifficultyStep)
	if dm.difficulty != oldDifficulty {
		log.Debugf("Retargeted difficulty from %d to %d (window of %d solve times summing to %s)",
			oldDifficulty, dm.difficulty, dm.window.len(), dm.window.sum())
	}
	return dm.difficulty
}

// SolveTimes returns the solve times in the window, oldest first
func (dm *difficultyManager) SolveTimes() []time.Duration {
	dm.mtx.RLock()
	defer dm.mtx.RUnlock()

	return dm.window.ordered()
}

// NextDifficulty returns floor(oldDifficulty * N * T / S), where N solve
// times sum up to S and T is the target time per block. It departs from
// the literal floor(old * S / (N * T)) and inverts the ratio: difficulty is
// a target exponent, and rounds solved faster than the target must raise it.
//
// The result moves at most maxStep away from oldDifficulty, unless maxStep
// is 0, and is clamped to [minDifficulty, maxDifficulty]. An empty window
// leaves the difficulty as is.
func NextDifficulty(oldDifficulty uint32, windowLength int, windowSum time.Duration,
	targetTimePerBlock time.Duration, minDifficulty, maxDifficulty, maxStep uint32) uint32 {

	if windowLength <= 0 {
		return clamp(oldDifficulty, minDifficulty, maxDifficulty)
	}

	next := uint64(maxDifficulty)
	if windowSum > 0 {
		numerator := new(big.Int).SetUint64(uint64(oldDifficulty))
		numerator.Mul(numerator, big.NewInt(int64(windowLength)))
		numerator.Mul(numerator, big.NewInt(int64(targetTimePerBlock)))
		quotient := numerator.Div(numerator, big.NewInt(int64(windowSum)))
		if quotient.IsUint64() && quotient.Uint64() < next {
			next = quotient.Uint64()
		}
	}

	if maxStep > 0 {
		upper := uint64(oldDifficulty) + uint64(maxStep)
		lower := uint64(0)
		if oldDifficulty > maxStep {
			lower = uint64(oldDifficulty - maxStep)
		}
		if next > upper {
			next = upper
		}
		if next < lower {
			next = lower
		}
	}

	if next > uint64(maxDifficulty) {
		return maxDifficulty
	}
	return clamp(uint32(next), minDifficulty, maxDifficulty)
}

func clamp(difficulty, minDifficulty, maxDifficulty uint32) uint32 {
	if difficulty < minDifficulty {
		return minDifficulty
	}
	if difficulty > maxDifficulty {
		return maxDifficulty
	}
	return difficulty
}
