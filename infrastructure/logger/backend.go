package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// defaultFlags is read from the LOGFLAGS environment variable. It is a
// variable initializer rather than an init function because BackendLog
// depends on it.
var defaultFlags = getDefaultFlags()

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile adds the full path and line number of the logging
	// callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line number of the logging
	// callsite, e.g. main.go:123. Takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// getDefaultFlags parses LOGFLAGS, a comma separated list of
// "longfile" and "shortfile".
func getDefaultFlags() (flags uint32) {
	for _, f := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch strings.TrimSpace(f) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

const (
	logsBuffer = 128

	defaultThresholdKB = 100 * 1000 // 100 MB
	defaultMaxRolls    = 8
)

var errBackendRunning = errors.New("the logger is already running")

type logWriter struct {
	io.WriteCloser
	level Level
}

// Backend multiplexes the entries of all subsystem loggers onto its
// writers. Each writer receives the entries at or above its own level.
// Entries logged while the backend is not running are dropped.
type Backend struct {
	flag    uint32
	writers []logWriter

	// runLock guards running. Entries are sent to writeChan under its
	// read lock so that Close never closes the channel under a sender.
	runLock   sync.RWMutex
	running   bool
	writeChan chan logEntry
	done      chan struct{}
}

// NewBackendWithFlags creates a backend that uses flags instead of LOGFLAGS
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{
		flag:      flags,
		writeChan: make(chan logEntry, logsBuffer),
		done:      make(chan struct{}),
	}
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

// AddLogFile adds a rotated log file with the default rotation settings.
// The file and its directory are created if they don't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds a writer receiving the entries at or above logLevel.
// Writers can only be added before Run.
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) error {
	b.runLock.Lock()
	defer b.runLock.Unlock()

	if b.running {
		return errBackendRunning
	}
	b.writers = append(b.writers, logWriter{WriteCloser: writer, level: logLevel})
	return nil
}

// AddLogFileWithCustomRotator adds a log file that is rotated once it
// reaches thresholdKB, keeping maxRolls old files.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	err = b.AddLogWriter(r, logLevel)
	if err != nil {
		_ = r.Close()
		return err
	}
	return nil
}

// Run starts writing entries in a separate goroutine. It may only be
// called once.
func (b *Backend) Run() error {
	b.runLock.Lock()
	defer b.runLock.Unlock()

	if b.running {
		return errBackendRunning
	}
	select {
	case <-b.done:
		return errors.New("the logger was closed")
	default:
	}
	b.running = true

	go func() {
		defer close(b.done)
		defer func() {
			if err := recover(); err != nil {
				fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
				fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		for entry := range b.writeChan {
			for _, writer := range b.writers {
				if entry.level >= writer.level {
					_, _ = writer.Write(entry.log)
				}
			}
		}
	}()
	return nil
}

// IsRunning returns whether Run was called and Close wasn't
func (b *Backend) IsRunning() bool {
	b.runLock.RLock()
	defer b.runLock.RUnlock()

	return b.running
}

func (b *Backend) write(entry logEntry) {
	b.runLock.RLock()
	defer b.runLock.RUnlock()

	if !b.running {
		return
	}
	b.writeChan <- entry
}

// Close flushes the pending entries and closes all writers. Entries logged
// afterwards are dropped.
func (b *Backend) Close() {
	b.runLock.Lock()
	wasRunning := b.running
	b.running = false
	if wasRunning {
		close(b.writeChan)
	}
	b.runLock.Unlock()

	if wasRunning {
		<-b.done
	}
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a new logger for the given subsystem tag. The logger is
// off until its level is set.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: LevelOff, tag: subsystemTag, b: b}
}
