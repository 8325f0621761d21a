package difficultymanager

import "time"

// solveTimeWindow is a bounded FIFO of solve times. Once full, every
// addition evicts the oldest entry.
type solveTimeWindow struct {
	solveTimes []time.Duration
	start      int
	size       int
}

func newSolveTimeWindow(capacity int) *solveTimeWindow {
	return &solveTimeWindow{
		solveTimes: make([]time.Duration, capacity),
	}
}

func (w *solveTimeWindow) add(solveTime time.Duration) {
	if len(w.solveTimes) == 0 {
		return
	}
	if w.size < len(w.solveTimes) {
		w.solveTimes[(w.start+w.size)%len(w.solveTimes)] = solveTime
		w.size++
		return
	}
	w.solveTimes[w.start] = solveTime
	w.start = (w.start + 1) % len(w.solveTimes)
}

func (w *solveTimeWindow) len() int {
	return w.size
}

func (w *solveTimeWindow) sum() time.Duration {
	var sum time.Duration
	for i := 0; i < w.size; i++ {
		sum += w.solveTimes[(w.start+i)%len(w.solveTimes)]
	}
	return sum
}

// ordered returns the solve times oldest first
func (w *solveTimeWindow) ordered() []time.Duration {
	ordered := make([]time.Duration, w.size)
	for i := range ordered {
		ordered[i] = w.solveTimes[(w.start+i)%len(w.solveTimes)]
	}
	return ordered
}
