package f1api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestID_AcceptsStringsAndNumbers(t *testing.T) {
	var rows []struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`[{"id":"hamilton"},{"id":44},{"id":null},{"id":1.5}]`), &rows); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	want := []ID{"hamilton", "44", "", "1.5"}
	for i, w := range want {
		if rows[i].ID != w {
			t.Fatalf("rows[%d].ID = %q, want %q", i, rows[i].ID, w)
		}
	}

	var bad struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id":true}`), &bad); err == nil {
		t.Fatalf("boolean id accepted")
	}
}

func TestRace_SessionHelpers(t *testing.T) {
	race := Race{Sessions: []Session{
		{Name: "Practice 1"},
		{Name: "SPRINT"},
		{Name: " race ", Date: "2025-05-04", Time: "20:00:00Z"},
	}}
	s, ok := race.RaceSession()
	if !ok || s.Date != "2025-05-04" {
		t.Fatalf("RaceSession() = %#v, %v", s, ok)
	}
	if race.WeekendLabel() != "Sprint Weekend" {
		t.Fatalf("WeekendLabel() = %q", race.WeekendLabel())
	}

	standard := Race{Sessions: []Session{{Name: "Qualifying"}}}
	if _, ok := standard.RaceSession(); ok {
		t.Fatalf("RaceSession() found a race in a weekend without one")
	}
	if standard.WeekendLabel() != "Standard Weekend" {
		t.Fatalf("WeekendLabel() = %q", standard.WeekendLabel())
	}
}

func TestCountdown_Duration(t *testing.T) {
	c := Countdown{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
	want := 26*time.Hour + 3*time.Minute + 4*time.Second
	if got := c.Duration(); got != want {
		t.Fatalf("Duration() = %v, want %v", got, want)
	}
}

func TestFormatPoints(t *testing.T) {
	tests := map[float64]string{
		0:     "0",
		25:    "25",
		4.5:   "4.5",
		0.25:  "0.25",
		437:   "437",
		12.10: "12.1",
	}
	for in, want := range tests {
		if got := FormatPoints(in); got != want {
			t.Errorf("FormatPoints(%v) = %q, want %q", in, got, want)
		}
	}
}
