// Package metrics exposes the node's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "powledger"

// Registry holds every collector of this package. It is separate from the
// prometheus default registry so that embedding the node doesn't pollute it.
var Registry = prometheus.NewRegistry()

var (
	hashesTried = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "hashes_tried_total",
		Help:      "Number of header hashes computed while searching for a nonce",
	})

	roundsSolved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "rounds_solved_total",
		Help:      "Number of mining rounds that found a valid nonce",
	})

	roundsPreempted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "rounds_preempted_total",
		Help:      "Number of mining rounds abandoned because another block was accepted",
	})

	difficulty = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "difficulty",
		Help:      "Difficulty the miner searches with",
	})

	blocksProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "blocks_processed_total",
		Help:      "Number of blocks submitted to the ledger, by outcome",
	}, []string{"status"})

	chainLength = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "blocks",
		Help:      "Number of blocks stored in the ledger",
	})

	mempoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "mempool",
		Name:      "transactions",
		Help:      "Number of transactions waiting in the mempool",
	})
)

func init() {
	Registry.MustRegister(hashesTried, roundsSolved, roundsPreempted, difficulty,
		blocksProcessed, chainLength, mempoolSize)
}

// AddHashesTried adds n to the number of hashes computed by the miner
func AddHashesTried(n uint64) {
	hashesTried.Add(float64(n))
}

// IncRoundsSolved records a solved mining round
func IncRoundsSolved() {
	roundsSolved.Inc()
}

// IncRoundsPreempted records an abandoned mining round
func IncRoundsPreempted() {
	roundsPreempted.Inc()
}

// SetDifficulty records the difficulty the miner currently searches with
func SetDifficulty(d uint32) {
	difficulty.Set(float64(d))
}

// IncBlocksProcessed records a block submission with the given outcome
func IncBlocksProcessed(status string) {
	blocksProcessed.WithLabelValues(status).Inc()
}

// SetChainLength records the number of blocks in the ledger
func SetChainLength(n int) {
	chainLength.Set(float64(n))
}

// SetMempoolSize records the number of transactions in the mempool
func SetMempoolSize(n int) {
	mempoolSize.Set(float64(n))
}
