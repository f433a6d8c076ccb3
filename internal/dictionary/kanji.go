package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/model"
)

// KanjiAPIBaseURL is the default kanji detail endpoint.
const KanjiAPIBaseURL = "https://kanjiapi.dev/v1/kanji"

// KanjiClient fetches kanji details and caches successful responses.
type KanjiClient struct {
	baseURL string
	http    *http.Client
	cache   *lru.Cache[string, model.KanjiDetail]
	logger  *zap.Logger
}

// NewKanjiClient returns a client for the kanji detail source.
func NewKanjiClient(opts Options) (*KanjiClient, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, model.KanjiDetail](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create kanji cache: %w", err)
	}
	base := opts.BaseURL
	if base == "" {
		base = KanjiAPIBaseURL
	}
	return &KanjiClient{
		baseURL: strings.TrimRight(base, "/"),
		http:    opts.httpClient(),
		cache:   cache,
		logger:  opts.logger(),
	}, nil
}

// Kanji returns the details of a single character.
func (c *KanjiClient) Kanji(ctx context.Context, char string) (model.KanjiDetail, error) {
	char = strings.TrimSpace(char)
	if char == "" {
		return model.KanjiDetail{}, fmt.Errorf("kanji is required")
	}
	if detail, ok := c.cache.Get(char); ok {
		return detail, nil
	}

	resp, err := get(ctx, c.http, c.baseURL+"/"+url.PathEscape(char))
	if err != nil {
		return model.KanjiDetail{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.KanjiDetail{}, fmt.Errorf("kanji %s: %w", char, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return model.KanjiDetail{}, fmt.Errorf("unexpected kanji status: %s", resp.Status)
	}

	var detail model.KanjiDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return model.KanjiDetail{}, fmt.Errorf("failed to decode kanji response: %w", err)
	}
	detail = normalizeDetail(detail, char)
	c.cache.Add(char, detail)
	c.logger.Debug("fetched kanji", zap.String("kanji", char), zap.Int("meanings", len(detail.Meanings)))
	return detail, nil
}

// Prefetch fetches details for every character, skipping failures. The
// result preserves input order.
func (c *KanjiClient) Prefetch(ctx context.Context, chars []string) []model.KanjiDetail {
	out := make([]model.KanjiDetail, 0, len(chars))
	for _, ch := range chars {
		detail, err := c.Kanji(ctx, ch)
		if err != nil {
			c.logger.Debug("skipping kanji", zap.String("kanji", ch), zap.Error(err))
			continue
		}
		out = append(out, detail)
	}
	return out
}

func normalizeDetail(d model.KanjiDetail, char string) model.KanjiDetail {
	if d.Kanji == "" {
		d.Kanji = char
	}
	if d.Meanings == nil {
		d.Meanings = []string{}
	}
	if d.KunReadings == nil {
		d.KunReadings = []string{}
	}
	if d.OnReadings == nil {
		d.OnReadings = []string{}
	}
	if d.NameReadings == nil {
		d.NameReadings = []string{}
	}
	return d
}
