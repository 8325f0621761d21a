package blockvalidator

import (
	"github.com/kaspanet/powledger/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BLVL")
