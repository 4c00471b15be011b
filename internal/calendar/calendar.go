package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	ics "github.com/arran4/golang-ical"

	"github.com/five82/paddock/internal/f1api"
	"github.com/five82/paddock/internal/render"
)

const (
	productID       = "-//paddock//F1 Calendar//EN"
	uidDomain       = "paddock"
	raceDuration    = 2 * time.Hour
	sessionDuration = time.Hour
)

// ErrNoSchedule marks a session without a usable date and time.
var ErrNoSchedule = errors.New("session has no schedule")

// Result is a built calendar plus bookkeeping about what went in.
type Result struct {
	Calendar *ics.Calendar
	Events   int
	Skipped  int
}

// WriteTo serializes the calendar.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := r.Calendar.SerializeTo(cw); err != nil {
		return cw.n, fmt.Errorf("write calendar: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type options struct {
	stamp time.Time
}

// Option adjusts Build.
type Option func(*options)

// WithStamp fixes the DTSTAMP written on every event.
func WithStamp(t time.Time) Option {
	return func(o *options) { o.stamp = t }
}

// Build turns a season schedule into an iCalendar with one event per
// session. Sessions without a parseable date and time are skipped.
func Build(year int, races []f1api.Race, opts ...Option) Result {
	o := options{stamp: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	cal := ics.NewCalendarFor("paddock")
	cal.SetProductId(productID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(fmt.Sprintf("Formula 1 %d", year))

	res := Result{Calendar: cal}
	for _, race := range races {
		slug := race.Slug
		if strings.TrimSpace(slug) == "" {
			slug = slugify(race.EventName)
		}
		for _, s := range race.Sessions {
			start, err := SessionStart(s)
			if err != nil {
				res.Skipped++
				continue
			}
			ev := cal.AddEvent(fmt.Sprintf("%s-%s@%s", slug, slugify(s.Name), uidDomain))
			ev.SetDtStampTime(o.stamp)
			ev.SetSummary(fmt.Sprintf("%s - %s", race.EventName, s.Name))
			if loc := render.Location(race); loc != "" {
				ev.SetLocation(loc)
			}
			ev.SetDescription(fmt.Sprintf("Round %d, %s", race.Round, race.WeekendLabel()))
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(duration(s)))
			res.Events++
		}
	}
	return res
}

// SessionStart parses a session's date (YYYY-MM-DD) and time (HH:MM or
// HH:MM:SS, optionally with Z or an offset) as an instant. Times without an
// offset are UTC.
func SessionStart(s f1api.Session) (time.Time, error) {
	date := strings.TrimSpace(s.Date)
	clock := strings.TrimSpace(s.Time)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoSchedule, s.Name)
	}
	if t, err := time.Parse(time.RFC3339, date+"T"+clock); err == nil {
		return t.UTC(), nil
	}
	clock = strings.TrimSuffix(clock, "Z")
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q has date %q time %q", ErrNoSchedule, s.Name, s.Date, s.Time)
}

func duration(s f1api.Session) time.Duration {
	if strings.EqualFold(strings.TrimSpace(s.Name), "race") {
		return raceDuration
	}
	return sessionDuration
}

// Entry is one event read back from a calendar.
type Entry struct {
	UID      string
	Summary  string
	Location string
	Start    time.Time
	End      time.Time
}

// Session returns the part of the summary after the last " - ".
func (e Entry) Session() string {
	if i := strings.LastIndex(e.Summary, " - "); i >= 0 {
		return e.Summary[i+3:]
	}
	return e.Summary
}

// Parse reads the events of an iCalendar stream.
func Parse(r io.Reader) ([]Entry, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}
	var entries []Entry
	for _, ev := range cal.Events() {
		entry := Entry{
			UID:      value(ev.GetProperty(ics.ComponentPropertyUniqueId)),
			Summary:  value(ev.GetProperty(ics.ComponentPropertySummary)),
			Location: value(ev.GetProperty(ics.ComponentPropertyLocation)),
		}
		if ev.GetProperty(ics.ComponentPropertyDtStart) != nil {
			if start, err := ev.GetStartAt(); err == nil {
				entry.Start = start.UTC()
			}
		}
		if ev.GetProperty(ics.ComponentPropertyDtEnd) != nil {
			if end, err := ev.GetEndAt(); err == nil {
				entry.End = end.UTC()
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func value(p *ics.IANAProperty) string {
	if p == nil {
		return ""
	}
	return p.Value
}

// slugify lowercases s and collapses every run of other characters into a
// single dash.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
