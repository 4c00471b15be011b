package f1api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID is an identifier the API sends either as a string or as a number.
type ID string

// UnmarshalJSON accepts both "ver" and 830 style identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Season mirrors an entry of get_seasons.
type Season struct {
	Year int    `json:"year"`
	URL  string `json:"url"`
}

// Session is a scheduled on-track activity within an event.
type Session struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Race describes one event on a season calendar. The next-event endpoint
// returns the same record.
type Race struct {
	Round       int       `json:"round"`
	EventName   string    `json:"eventName"`
	Country     string    `json:"country"`
	Location    string    `json:"location"`
	CountryCode string    `json:"countryCode"`
	Slug        string    `json:"slug"`
	Sessions    []Session `json:"sessions"`
}

// RaceSession returns the first session named "race", ignoring case.
func (r Race) RaceSession() (Session, bool) {
	for _, s := range r.Sessions {
		if strings.EqualFold(strings.TrimSpace(s.Name), "race") {
			return s, true
		}
	}
	return Session{}, false
}

// IsSprintWeekend reports whether any session is named "sprint".
func (r Race) IsSprintWeekend() bool {
	for _, s := range r.Sessions {
		if strings.EqualFold(strings.TrimSpace(s.Name), "sprint") {
			return true
		}
	}
	return false
}

// WeekendLabel returns "Sprint Weekend" or "Standard Weekend".
func (r Race) WeekendLabel() string {
	if r.IsSprintWeekend() {
		return "Sprint Weekend"
	}
	return "Standard Weekend"
}

// RacePoints is one race column of a points matrix row.
type RacePoints struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Points   float64 `json:"points"`
	Position int     `json:"position"`
}

// DriverPoints mirrors an entry of get_driver_points.
type DriverPoints struct {
	DriverID    ID           `json:"driverId"`
	Name        string       `json:"name"`
	Constructor string       `json:"constructor"`
	Total       float64      `json:"total"`
	Position    int          `json:"position"`
	Races       []RacePoints `json:"races"`
}

// ConstructorPoints mirrors an entry of get_constructor_points.
type ConstructorPoints struct {
	ConstructorID ID           `json:"constructorId"`
	Constructor   string       `json:"constructor"`
	Total         float64      `json:"total"`
	Position      int          `json:"position"`
	Races         []RacePoints `json:"races"`
}

// DriverStanding is a row of the current driver championship.
type DriverStanding struct {
	ID          ID      `json:"id"`
	Position    int     `json:"position"`
	Name        string  `json:"name"`
	Driver      string  `json:"driver"`
	Nationality string  `json:"nationality"`
	Constructor string  `json:"constructor"`
	Points      float64 `json:"points"`
}

// ConstructorStanding is a row of the current constructor championship.
type ConstructorStanding struct {
	ID          ID      `json:"id"`
	Position    int     `json:"position"`
	Name        string  `json:"name"`
	Nationality string  `json:"nationality"`
	Points      float64 `json:"points"`
}

// DriverStats holds season counters for one driver.
type DriverStats struct {
	ID      ID  `json:"id"`
	Poles   int `json:"poles"`
	Podiums int `json:"podiums"`
	Wins    int `json:"wins"`
	DNF     int `json:"dnf"`
}

// ConstructorStats holds season counters for one constructor.
type ConstructorStats struct {
	ID      ID  `json:"id"`
	Poles   int `json:"poles"`
	Podiums int `json:"podiums"`
	Wins    int `json:"wins"`
}

// TeamDrivers lists the drivers racing for a constructor.
type TeamDrivers struct {
	ID      ID       `json:"id"`
	Drivers []string `json:"drivers"`
}

// Countdown is the remaining time to the next event as reported by the
// server at request time.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Duration converts the countdown to a time.Duration.
func (c Countdown) Duration() time.Duration {
	return time.Duration(c.Days)*24*time.Hour +
		time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
}

// FormatPoints prints a points value without trailing zeros (25, 4.5).
func FormatPoints(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
