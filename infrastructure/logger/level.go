package logger

import "strings"

// Level is the level at which a logger is configured. Entries below the
// level are filtered.
type Level uint32

// Level constants.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelNames holds the tag and the full name of every level, in order
var levelNames = [...]struct {
	tag  string
	name string
}{
	{"TRC", "trace"},
	{"DBG", "debug"},
	{"INF", "info"},
	{"WRN", "warn"},
	{"ERR", "error"},
	{"CRT", "critical"},
	{"OFF", "off"},
}

// LevelFromString parses either the full name or the tag of a level, case
// insensitively. It returns LevelInfo and false if s is neither.
func LevelFromString(s string) (Level, bool) {
	for level, names := range levelNames {
		if strings.EqualFold(s, names.name) || strings.EqualFold(s, names.tag) {
			return Level(level), true
		}
	}
	return LevelInfo, false
}

// String returns the tag of the level as it appears in log lines
func (l Level) String() string {
	if l >= LevelOff {
		return levelNames[LevelOff].tag
	}
	return levelNames[l].tag
}
