package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/javierperezm/fitnesspark-ical/internal/event"
)

const (
	// DefaultBaseURL is the booking shop's course list endpoint. It returns
	// a JSON envelope whose "articles" field holds the rendered schedule
	// table for the requested shop and day.
	DefaultBaseURL = "https://shop-fp-national.fitnesspark.ch/shop/courses/category/"

	UserAgent      = "fitnesspark-ical/1.0 (github.com/javierperezm/fitnesspark-ical)"
	DefaultTimeout = 30 * time.Second
)

// envelope is the upstream response wrapper; only the HTML fragment matters.
type envelope struct {
	Articles string `json:"articles"`
}

// Client fetches rendered schedule HTML from the booking site.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries uint64
}

// NewClient creates a schedule client. An empty baseURL selects
// DefaultBaseURL, a zero timeout selects DefaultTimeout, maxRetries < 0
// disables retrying.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: uint64(maxRetries),
	}
}

// FetchDay fetches the schedule HTML for one shop and day, retrying
// transient failures with exponential backoff. Client errors (4xx) are not
// retried.
func (c *Client) FetchDay(ctx context.Context, shop int, date time.Time) (string, error) {
	var html string

	op := func() error {
		fragment, err := c.fetchOnce(ctx, shop, date)
		if err != nil {
			return err
		}
		html = fragment
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}

	return html, nil
}

func (c *Client) fetchOnce(ctx context.Context, shop int, date time.Time) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dayURL(shop, date), nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decoding response envelope: %w", err)
	}

	return env.Articles, nil
}

// dayURL builds the query for one shop and day. Parameter names and fixed
// values mirror what the booking site's own frontend sends.
func (c *Client) dayURL(shop int, date time.Time) string {
	q := url.Values{}
	q.Set("accountArea", "1")
	q.Set("iframe", "yes")
	q.Set("articles", "true")
	q.Set("date", event.DayKey(date))
	q.Set("offset", "0")
	q.Add("shops[]", strconv.Itoa(shop))
	return c.baseURL + "?" + q.Encode()
}
