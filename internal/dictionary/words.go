package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/model"
)

// JishoBaseURL is the default word search endpoint.
const JishoBaseURL = "https://jisho.org/api/v1/search/words"

type jishoResponse struct {
	Data []struct {
		Slug     string   `json:"slug"`
		IsCommon bool     `json:"is_common"`
		JLPT     []string `json:"jlpt"`
		Japanese []struct {
			Word    string `json:"word"`
			Reading string `json:"reading"`
		} `json:"japanese"`
		Senses []struct {
			English       []string `json:"english_definitions"`
			PartsOfSpeech []string `json:"parts_of_speech"`
		} `json:"senses"`
	} `json:"data"`
}

// WordClient searches words by romaji, English or Japanese text.
type WordClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewWordClient returns a client for the word search source.
func NewWordClient(opts Options) *WordClient {
	base := opts.BaseURL
	if base == "" {
		base = JishoBaseURL
	}
	return &WordClient{baseURL: base, http: opts.httpClient(), logger: opts.logger()}
}

// Search returns candidate words for keyword.
func (c *WordClient) Search(ctx context.Context, keyword string) ([]model.WordResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}

	resp, err := get(ctx, c.http, c.baseURL+"?keyword="+url.QueryEscape(keyword))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected word search status: %s", resp.Status)
	}

	var payload jishoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode word search response: %w", err)
	}

	results := make([]model.WordResult, 0, len(payload.Data))
	for _, entry := range payload.Data {
		result := model.WordResult{IsCommon: entry.IsCommon, JLPT: entry.JLPT}
		if len(entry.Japanese) > 0 {
			result.Word = entry.Japanese[0].Word
			result.Reading = entry.Japanese[0].Reading
		}
		if result.Word == "" {
			result.Word = entry.Slug
		}
		for _, s := range entry.Senses {
			result.Senses = append(result.Senses, model.WordSense{English: s.English, PartsOfSpeech: s.PartsOfSpeech})
		}
		results = append(results, result)
	}
	c.logger.Debug("word search", zap.String("keyword", keyword), zap.Int("results", len(results)))
	return results, nil
}
