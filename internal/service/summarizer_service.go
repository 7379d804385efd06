package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"holomeet/internal/config"
)

// SummarizerService turns a meeting transcript into bullet points via
// an OpenAI-compatible completions API. When no API key is configured,
// or when the call fails, it falls back to the local deterministic
// extractive summarizer so summaries always come back.
type SummarizerService struct {
	config *config.SummaryConfig
	client *http.Client
}

// NewSummarizerService creates a new summarizer service
func NewSummarizerService() *SummarizerService {
	cfg := config.DefaultSummaryConfig()
	return &SummarizerService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Summarize returns a bullet list summarizing the given text.
func (s *SummarizerService) Summarize(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	if !s.config.IsEnabled() {
		return selectKeySentences(text), nil
	}

	bullets, err := s.callCompletions(ctx, text)
	if err != nil {
		// Fallback to the local summarizer on error
		return selectKeySentences(text), nil
	}
	return bullets, nil
}

func (s *SummarizerService) callCompletions(ctx context.Context, text string) ([]string, error) {
	reqBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "Summarize the meeting transcript as concise bullet points, one per line, each starting with \"- \".",
			},
			{"role": "user", "content": text},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.Endpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var completions struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completions); err != nil {
		return nil, err
	}
	if len(completions.Choices) == 0 {
		return nil, fmt.Errorf("empty response from summarizer")
	}

	bullets := []string{}
	for _, line := range strings.Split(completions.Choices[0].Message.Content, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("summarizer returned no bullets")
	}
	return bullets, nil
}
