package sleeper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

// rateLimitDelay is the fixed pause between calls. Sleeper asks clients to
// stay under 1000 calls/minute; a flat delay keeps the fetch loops polite.
const rateLimitDelay = 100 * time.Millisecond

type Client struct {
	httpClient *http.Client
	baseURL    string

	mu       sync.Mutex
	lastCall time.Time
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local
// server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

func (c *Client) Get(endpoint string, params map[string]string, result interface{}) error {
	c.throttle()

	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// throttle paces calls from all goroutines sharing the client; the scheduler
// jobs and the bot update loop hit the same instance.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastCall.IsZero() {
		if wait := rateLimitDelay - time.Since(c.lastCall); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastCall = time.Now()
}
