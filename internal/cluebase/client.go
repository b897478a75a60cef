// Package cluebase fetches the candidate clue pool from the external Cluebase API
// and filters it down to clues usable on a board.
package cluebase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a pool fetch when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// maxPoolBytes caps the response body we are willing to decode.
const maxPoolBytes = 64 << 20

// Client talks to the Cluebase HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient builds a client for baseURL. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchClues returns the raw clue pool. Any transport failure, non-2xx status, or
// body that is not a JSON array is reported as SOURCE_UNAVAILABLE.
func (c *Client) FetchClues(ctx context.Context) ([]models.CandidateClue, error) {
	url := c.baseURL + "/clues"
	c.logger.WithField("url", url).Debug("fetching clue pool")

	clues, err := c.fetch(ctx, url)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Error("failed to fetch clues from Cluebase API")
		return nil, apperr.Wrap(apperr.CodeSourceUnavailable, err,
			"Cluebase API is currently unavailable. Please try again later.")
	}
	return clues, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]models.CandidateClue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get clues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get clues: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPoolBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return DecodePool(body)
}

// DecodePool parses a pool payload, which must be a JSON array of clues.
func DecodePool(body []byte) ([]models.CandidateClue, error) {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("invalid response format from Cluebase API")
	}
	var clues []models.CandidateClue
	if err := json.Unmarshal([]byte(trimmed), &clues); err != nil {
		return nil, fmt.Errorf("decode clues: %w", err)
	}
	return clues, nil
}
