package f1api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SeasonFetcher covers the endpoints behind the seasons view.
type SeasonFetcher interface {
	FetchSeasons(ctx context.Context) ([]Season, error)
	FetchRaceCalendar(ctx context.Context, year int) ([]Race, error)
	FetchDriverPoints(ctx context.Context, year int) ([]DriverPoints, error)
	FetchConstructorPoints(ctx context.Context, year int) ([]ConstructorPoints, error)
}

// HomeFetcher covers the endpoints behind the home view.
type HomeFetcher interface {
	FetchDriverStandings(ctx context.Context) ([]DriverStanding, error)
	FetchConstructorStandings(ctx context.Context) ([]ConstructorStanding, error)
	FetchDriverStats(ctx context.Context) ([]DriverStats, error)
	FetchConstructorStats(ctx context.Context) ([]ConstructorStats, error)
	FetchNextEvent(ctx context.Context) (Race, error)
	FetchNextEventCountdown(ctx context.Context) (Countdown, error)
	FetchTeamDrivers(ctx context.Context) ([]TeamDrivers, error)
}

// Fetcher is the full read-only API surface.
type Fetcher interface {
	SeasonFetcher
	HomeFetcher
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the F1 statistics HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBase is the API root used when none is configured.
	DefaultBase      = "http://localhost:8000/api/f1"
	defaultBasePath  = "/api/f1"
	defaultUserAgent = "paddock/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 8 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at base, e.g. http://localhost:8000/api/f1.
// A bare host:port gets the http scheme and the default /api/f1 path.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client resolves endpoints against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchSeasons lists every season the API knows about.
func (c *Client) FetchSeasons(ctx context.Context) ([]Season, error) {
	var out []Season
	if err := c.get(ctx, "get_seasons", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchRaceCalendar returns the events of a season in calendar order.
func (c *Client) FetchRaceCalendar(ctx context.Context, year int) ([]Race, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	var out []Race
	if err := c.get(ctx, "get_race_calendar", query, objectWithArray("calendar"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchDriverPoints returns the per-race driver points matrix for a season.
func (c *Client) FetchDriverPoints(ctx context.Context, year int) ([]DriverPoints, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	var out []DriverPoints
	if err := c.get(ctx, "get_driver_points/"+strconv.Itoa(year), nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchConstructorPoints returns the per-race constructor points matrix for a season.
func (c *Client) FetchConstructorPoints(ctx context.Context, year int) ([]ConstructorPoints, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	var out []ConstructorPoints
	if err := c.get(ctx, "get_constructor_points/"+strconv.Itoa(year), nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchDriverStandings returns the current driver championship table.
func (c *Client) FetchDriverStandings(ctx context.Context) ([]DriverStanding, error) {
	var out []DriverStanding
	if err := c.get(ctx, "get_driver_standings", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchConstructorStandings returns the current constructor championship table.
func (c *Client) FetchConstructorStandings(ctx context.Context) ([]ConstructorStanding, error) {
	var out []ConstructorStanding
	if err := c.get(ctx, "get_constructor_standings", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchDriverStats returns poles, podiums, wins and DNFs per driver.
func (c *Client) FetchDriverStats(ctx context.Context) ([]DriverStats, error) {
	var out []DriverStats
	if err := c.get(ctx, "get_driver_stats", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchConstructorStats returns poles, podiums and wins per constructor.
func (c *Client) FetchConstructorStats(ctx context.Context) ([]ConstructorStats, error) {
	var out []ConstructorStats
	if err := c.get(ctx, "get_constructor_stats", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchNextEvent returns the next event on the calendar.
func (c *Client) FetchNextEvent(ctx context.Context) (Race, error) {
	var out Race
	if err := c.get(ctx, "get_next_event", nil, nextEventShape, &out); err != nil {
		return Race{}, err
	}
	return out, nil
}

// FetchNextEventCountdown returns the time remaining until the next event.
func (c *Client) FetchNextEventCountdown(ctx context.Context) (Countdown, error) {
	var out Countdown
	if err := c.get(ctx, "get_next_event_countdown", nil, countdownShape, &out); err != nil {
		return Countdown{}, err
	}
	return out, nil
}

// FetchTeamDrivers returns the driver line-up of every constructor.
func (c *Client) FetchTeamDrivers(ctx context.Context) ([]TeamDrivers, error) {
	var out []TeamDrivers
	if err := c.get(ctx, "get_drivers", nil, arrayShape, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, s shape, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.JoinPath(strings.Split(endpoint, "/")...)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxBodyBytes {
		return &ShapeError{Endpoint: endpoint, Want: s.want, Reason: "body exceeds 8 MiB"}
	}
	return decode(endpoint, body, s, dest)
}

// statusText returns the reason phrase of resp without the numeric code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func checkYear(year int) error {
	if year < 1950 || year > 9999 {
		return fmt.Errorf("invalid season year %d", year)
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", base)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = defaultBasePath
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
