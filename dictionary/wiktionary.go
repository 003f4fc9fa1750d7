package dictionary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://en.wiktionary.org/w/api.php"

// Wiktionary won't serve clients without a descriptive User-Agent.
const userAgent = "Word Chain Discord Bot // enforces the rules of chain word games // " +
	"https://github.com/RedGuy12/ChainGameBot"

// Client checks words against the Wiktionary parse API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Wiktionary client.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type parseResponse struct {
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

// IsWord reports whether Wiktionary has a page for the given word, following
// redirects. A failed lookup returns an error, never a silent false.
func (c *Client) IsWord(word string) (bool, error) {
	query := url.Values{}
	query.Set("action", "parse")
	query.Set("summary", "example")
	query.Set("format", "json")
	query.Set("redirects", "true")
	query.Set("page", word)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("wiktionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("wiktionary error: status %d", resp.StatusCode)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode wiktionary response: %w", err)
	}

	// The parse API reports a missing page as an error member.
	return parsed.Error == nil, nil
}
