package countdown

import (
	"fmt"
	"time"
)

// Breakdown is a remaining duration split into display columns.
type Breakdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// Decompose splits d with floor division on whole milliseconds. Anything at
// or below zero decomposes to the zero Breakdown.
func Decompose(d time.Duration) Breakdown {
	ms := d.Milliseconds()
	if ms <= 0 {
		return Breakdown{}
	}
	return Breakdown{
		Days:    int(ms / msPerDay),
		Hours:   int(ms % msPerDay / msPerHour),
		Minutes: int(ms % msPerHour / msPerMinute),
		Seconds: int(ms % msPerMinute / msPerSecond),
	}
}

// FromParts builds a Breakdown from server supplied columns. Negative parts
// count as zero.
func FromParts(days, hours, minutes, seconds int) Breakdown {
	return Breakdown{
		Days:    max(days, 0),
		Hours:   max(hours, 0),
		Minutes: max(minutes, 0),
		Seconds: max(seconds, 0),
	}
}

// TotalSeconds reconstructs the total number of whole seconds.
func (b Breakdown) TotalSeconds() int64 {
	return int64(b.Days)*86400 + int64(b.Hours)*3600 + int64(b.Minutes)*60 + int64(b.Seconds)
}

// Duration returns the breakdown as a time.Duration.
func (b Breakdown) Duration() time.Duration {
	return time.Duration(b.TotalSeconds()) * time.Second
}

// IsZero reports whether the countdown has run out.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", b.Days, b.Hours, b.Minutes, b.Seconds)
}
