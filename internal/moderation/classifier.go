package moderation

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Kunalgarg108/ShareSpace/internal/metrics"
	"github.com/Kunalgarg108/ShareSpace/pkg/apperr"
	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
)

// Classifier consults the external abuse-screening service before a message
// or comment is accepted. An unreachable classifier rejects content (fail
// closed): this service exists to screen content, so it never approves
// content it could not see. An empty endpoint disables screening entirely,
// which is an explicit dev-mode configuration, not a fallback.
type Classifier struct {
	endpoint string
	client   *http.Client

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	abusive   bool
	timestamp time.Time
}

const cacheTTL = 1 * time.Hour

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Abusive bool `json:"abusive"`
}

func NewClassifier(endpoint string, timeout time.Duration) *Classifier {
	c := &Classifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		cache:    make(map[string]cacheEntry),
	}

	// Cleanup routine
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			c.mu.Lock()
			for key, entry := range c.cache {
				if time.Since(entry.timestamp) > cacheTTL {
					delete(c.cache, key)
				}
			}
			c.mu.Unlock()
		}
	}()

	return c
}

// Enabled reports whether an endpoint is configured.
func (c *Classifier) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// Check returns nil when the text may be accepted. The two rejection
// reasons stay distinct for the user: abusive content vs. screening outage.
func (c *Classifier) Check(ctx context.Context, text string) error {
	if !c.Enabled() {
		return nil
	}

	key := cacheKey(text)
	c.mu.RLock()
	entry, hit := c.cache[key]
	c.mu.RUnlock()
	if hit && time.Since(entry.timestamp) <= cacheTTL {
		return c.verdict(entry.abusive)
	}

	body, err := json.Marshal(checkRequest{Text: text})
	if err != nil {
		metrics.ModerationErrors.Inc()
		return apperr.Moderation("content screening is unavailable, please try again")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		metrics.ModerationErrors.Inc()
		return apperr.Moderation("content screening is unavailable, please try again")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ModerationErrors.Inc()
		logger.Error().Err(err).Msg("classifier unreachable, rejecting content")
		return apperr.Moderation("content screening is unavailable, please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ModerationErrors.Inc()
		logger.Error().Int("status", resp.StatusCode).Msg("classifier returned non-OK, rejecting content")
		return apperr.Moderation("content screening is unavailable, please try again")
	}

	var result checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.ModerationErrors.Inc()
		logger.Error().Err(err).Msg("classifier response unreadable, rejecting content")
		return apperr.Moderation("content screening is unavailable, please try again")
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{abusive: result.Abusive, timestamp: time.Now()}
	c.mu.Unlock()

	return c.verdict(result.Abusive)
}

func (c *Classifier) verdict(abusive bool) error {
	if abusive {
		metrics.ModerationRejections.Inc()
		return apperr.Moderation("this content was flagged as abusive and cannot be posted")
	}
	return nil
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
