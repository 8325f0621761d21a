//go:build !windows

package execenv

import (
	"syscall"

	"github.com/pkg/errors"
)

func setLimits(desiredLimits *DesiredLimits) error {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		return errors.WithStack(err)
	}
	if rLimit.Cur >= desiredLimits.WantedFileLimit {
		return nil
	}
	if rLimit.Max < desiredLimits.RequiredFileLimit {
		return errors.Errorf("need at least %d file descriptors, hard limit is %d",
			desiredLimits.RequiredFileLimit, rLimit.Max)
	}

	rLimit.Cur = desiredLimits.WantedFileLimit
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}
	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		return errors.WithStack(err)
	}
	if rLimit.Cur < desiredLimits.RequiredFileLimit {
		return errors.Errorf("need at least %d file descriptors, soft limit is %d",
			desiredLimits.RequiredFileLimit, rLimit.Cur)
	}
	return nil
}
