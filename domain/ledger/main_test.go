package ledger

import (
	"os"
	"testing"

	"github.com/kaspanet/powledger/infrastructure/logger"
)

func TestMain(m *testing.M) {
	log.SetLevel(logger.LevelTrace)
	os.Exit(m.Run())
}
