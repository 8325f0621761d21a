package main

import (
	"github.com/kaspanet/powledger/infrastructure/logger"
)

var log = logger.RegisterSubSystem("PMNR")

func initLog(logFile, errLogFile string) {
	if logFile == "" {
		logger.InitLogStdout(logger.LevelInfo)
		return
	}
	logger.InitLog(logFile, errLogFile)
}
