// Package execenv prepares the process environment for a long running node
package execenv

import (
	"fmt"
	"os"
	"runtime"
)

// DesiredLimits are the resource limits the process asks for on startup
type DesiredLimits struct {
	// RequiredFileLimit is the open files limit below which the process
	// refuses to run. The on-disk chain store keeps many files open.
	RequiredFileLimit uint64

	// WantedFileLimit is the open files limit the process raises its soft
	// limit to when the hard limit allows it.
	WantedFileLimit uint64
}

// Initialize uses all processor cores and raises the resource limits of the
// process. It exits the process when the limits cannot be met.
func Initialize(desiredLimits *DesiredLimits) {
	runtime.GOMAXPROCS(runtime.NumCPU())

	err := setLimits(desiredLimits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set limits: %s\n", err)
		os.Exit(1)
	}
}
