// Package mstime holds the millisecond precision time block timestamps are
// kept in.
package mstime

import (
	"time"
)

const (
	nanosecondsInMillisecond = int64(time.Millisecond / time.Nanosecond)
	millisecondsInSecond     = int64(time.Second / time.Millisecond)
)

// MSTime is a wrapper for time.Time that guarantees millisecond precision
type MSTime struct {
	time time.Time
}

// Now returns the current local time, with precision of one millisecond.
func Now() MSTime {
	return ToMSTime(time.Now())
}

// UnixMilliseconds returns t as a Unix time, the number of milliseconds elapsed
// since January 1, 1970 UTC.
func (t MSTime) UnixMilliseconds() int64 {
	return t.time.UnixNano() / nanosecondsInMillisecond
}

// UnixSeconds returns t as a Unix time, the number of seconds elapsed
// since January 1, 1970 UTC.
func (t MSTime) UnixSeconds() int64 {
	return t.time.Unix()
}

// Sub returns the duration t-u.
func (t MSTime) Sub(u MSTime) time.Duration {
	return t.time.Sub(u.time)
}

// String returns the time formatted using the format string
//	"2006-01-02 15:04:05.999999999 -0700 MST"
func (t MSTime) String() string {
	return t.time.String()
}

// ToNativeTime converts t to time.Time
func (t MSTime) ToNativeTime() time.Time {
	return t.time
}

// ToMSTime converts t to MSTime, rounding it to the nearest millisecond
func ToMSTime(t time.Time) MSTime {
	return MSTime{time: t.Round(time.Millisecond)}
}

// UnixMilliseconds returns the local Time corresponding to the given Unix time,
// ms milliseconds since January 1, 1970 UTC.
func UnixMilliseconds(ms int64) MSTime {
	seconds := ms / millisecondsInSecond
	nanoseconds := (ms - seconds*millisecondsInSecond) * nanosecondsInMillisecond
	return ToMSTime(time.Unix(seconds, nanoseconds))
}
