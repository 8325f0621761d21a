package difficultymanager

import (
	"testing"
	"time"

	"github.com/kaspanet/powledger/domain/chaincfg"
)

func TestNextDifficulty(t *testing.T) {
	const target = time.Minute
	tests := []struct {
		name          string
		oldDifficulty uint32
		windowLength  int
		windowSum     time.Duration
		expected      uint32
	}{
		{name: "on target", oldDifficulty: 20, windowLength: 10, windowSum: 10 * target, expected: 20},
		{name: "twice as fast", oldDifficulty: 20, windowLength: 10, windowSum: 5 * target, expected: 40},
		{name: "twice as slow", oldDifficulty: 20, windowLength: 10, windowSum: 20 * target, expected: 10},
		{name: "floor", oldDifficulty: 10, windowLength: 3, windowSum: 4 * target, expected: 7},
		{name: "clamped to the minimum", oldDifficulty: 1, windowLength: 1, windowSum: 3 * target, expected: 1},
		{name: "clamped to the maximum", oldDifficulty: 200, windowLength: 1, windowSum: target / 2, expected: 255},
		{name: "zero solve times", oldDifficulty: 5, windowLength: 4, windowSum: 0, expected: 255},
		{name: "empty window", oldDifficulty: 5, windowLength: 0, windowSum: 0, expected: 5},
	}

	for _, test := range tests {
		next := NextDifficulty(test.oldDifficulty, test.windowLength, test.windowSum, target, 1, 255, 0)
		if next != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, next)
		}
	}
}

func TestNextDifficultyIsBoundedPerStep(t *testing.T) {
	const target = time.Minute
	tests := []struct {
		name          string
		oldDifficulty uint32
		windowSum     time.Duration
		maxStep       uint32
		expected      uint32
	}{
		{name: "much faster", oldDifficulty: 10, windowSum: time.Microsecond, maxStep: 1, expected: 11},
		{name: "zero solve times", oldDifficulty: 10, windowSum: 0, maxStep: 2, expected: 12},
		{name: "much slower", oldDifficulty: 10, windowSum: 100 * target, maxStep: 3, expected: 7},
		{name: "within the step", oldDifficulty: 10, windowSum: target * 10 / 11, maxStep: 2, expected: 11},
		{name: "step below the minimum", oldDifficulty: 2, windowSum: 100 * target, maxStep: 5, expected: 1},
		{name: "step above the maximum", oldDifficulty: 24, windowSum: 0, maxStep: 1, expected: 24},
	}

	for _, test := range tests {
		next := NextDifficulty(test.oldDifficulty, 1, test.windowSum, target, 1, 24, test.maxStep)
		if next != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, next)
		}
	}
}

func TestAddSolveTime(t *testing.T) {
	params := chaincfg.MainnetParams
	params.InitialDifficulty = 8
	params.MaxDifficulty = 255
	params.MaxDifficultyStep = 0
	params.DifficultyAdjustmentWindowSize = 3
	dm := New(&params)

	if dm.CurrentDifficulty() != 8 {
		t.Fatalf("expected the initial difficulty, got %d", dm.CurrentDifficulty())
	}

	// On target
	if difficulty := dm.AddSolveTime(params.TargetTimePerBlock); difficulty != 8 {
		t.Fatalf("expected difficulty 8, got %d", difficulty)
	}
	// Two rounds in the time of one: 8 * 2T / T
	if difficulty := dm.AddSolveTime(0); difficulty != 16 {
		t.Fatalf("expected difficulty 16, got %d", difficulty)
	}
	// 16 * 3T / 2T
	if difficulty := dm.AddSolveTime(params.TargetTimePerBlock); difficulty != 24 {
		t.Fatalf("expected difficulty 24, got %d", difficulty)
	}
	// The first solve time is evicted: 24 * 3T / 5T
	if difficulty := dm.AddSolveTime(4 * params.TargetTimePerBlock); difficulty != 14 {
		t.Fatalf("expected difficulty 14, got %d", difficulty)
	}

	expectedWindow := []time.Duration{0, params.TargetTimePerBlock, 4 * params.TargetTimePerBlock}
	window := dm.SolveTimes()
	if len(window) != len(expectedWindow) {
		t.Fatalf("expected a window of %d, got %d", len(expectedWindow), len(window))
	}
	for i := range expectedWindow {
		if window[i] != expectedWindow[i] {
			t.Fatalf("window position %d: expected %s, got %s", i, expectedWindow[i], window[i])
		}
	}
}

func TestSolveTimeWindowEviction(t *testing.T) {
	window := newSolveTimeWindow(2)
	for i := 1; i <= 5; i++ {
		window.add(time.Duration(i))
	}
	if window.len() != 2 {
		t.Fatalf("expected 2 solve times, got %d", window.len())
	}
	if window.sum() != 9 {
		t.Fatalf("expected the two newest solve times to sum to 9, got %d", window.sum())
	}
}

func TestMainnetRetargetStaysSolvable(t *testing.T) {
	params := chaincfg.MainnetParams
	dm := New(&params)

	// Blocks solved far below the target time climb one step at a time
	for i := uint32(1); i <= params.MaxDifficulty+5; i++ {
		difficulty := dm.AddSolveTime(time.Microsecond)
		expected := params.InitialDifficulty + i*params.MaxDifficultyStep
		if expected > params.MaxDifficulty {
			expected = params.MaxDifficulty
		}
		if difficulty != expected {
			t.Fatalf("after %d fast blocks: expected difficulty %d, got %d", i, expected, difficulty)
		}
	}
}
