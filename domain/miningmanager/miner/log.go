package miner

import (
	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/kaspanet/powledger/util/panics"
)

var log = logger.RegisterSubSystem("MINR")
var spawn = panics.GoroutineWrapperFunc(log)
