// Package translate provides single-string machine translation through a
// chain of backends. The first backend to produce a non-empty translation
// wins; if the whole chain fails the caller gets an empty string, never an
// error.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"dualnews/internal/logger"
	"dualnews/internal/model"
	"dualnews/internal/ratelimit"
)

// Backend names, used as rate limiter service keys.
const (
	BackendDeepL  = "deepl"
	BackendGoogle = "google"
	BackendOpenAI = "openai"
)

const (
	deepLBaseURL  = "https://api-free.deepl.com/v2/translate"
	googleBaseURL = "https://translate.googleapis.com/translate_a/single"
)

// Client chains DeepL, the public Google Translate endpoint and OpenAI.
// Backends without credentials are skipped; the Google endpoint needs none.
type Client struct {
	deepLKey  string
	openAIKey string

	deepLURL  string
	googleURL string

	http    *http.Client
	limiter *ratelimit.Limiter
}

func NewClient(deepLKey, openAIKey string, timeout time.Duration, limiter *ratelimit.Limiter) *Client {
	return &Client{
		deepLKey:  deepLKey,
		openAIKey: openAIKey,
		deepLURL:  deepLBaseURL,
		googleURL: googleBaseURL,
		http:      &http.Client{Timeout: timeout},
		limiter:   limiter,
	}
}

// Translate converts text into targetLang ("en" or "ja"). Empty input yields
// empty output without any network call.
func (c *Client) Translate(ctx context.Context, text, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if c.deepLKey != "" && c.limiter.Allow(BackendDeepL) {
		out, err := c.translateWithDeepL(ctx, text, targetLang)
		if err != nil {
			logger.Warn("deepl translation failed", "target", targetLang, "error", err)
		} else if out != "" {
			return out
		}
	}

	if c.limiter.Allow(BackendGoogle) {
		out, err := c.translateWithGoogle(ctx, text, targetLang)
		if err != nil {
			logger.Warn("google translation failed", "target", targetLang, "error", err)
		} else if out != "" && out != text {
			return out
		}
	}

	if c.openAIKey != "" && c.limiter.Allow(BackendOpenAI) {
		out, err := c.translateWithOpenAI(ctx, text, targetLang)
		if err != nil {
			logger.Warn("openai translation failed", "target", targetLang, "error", err)
		} else if out != "" {
			return out
		}
	}

	logger.Warn("all translation backends failed", "target", targetLang)
	return ""
}

// translateWithDeepL posts to the DeepL v2 REST endpoint. The target code is
// upper-cased per the DeepL convention (JA, EN).
func (c *Client) translateWithDeepL(ctx context.Context, text, targetLang string) (string, error) {
	form := url.Values{
		"auth_key":    {c.deepLKey},
		"text":        {text},
		"target_lang": {strings.ToUpper(targetLang)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.deepLURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl returned status %d", resp.StatusCode)
	}

	var payload struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Translations) == 0 {
		return "", errors.New("deepl returned no translations")
	}
	return payload.Translations[0].Text, nil
}

// translateWithGoogle uses the public gtx endpoint, which requires no key.
func (c *Client) translateWithGoogle(ctx context.Context, text, targetLang string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.googleURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse walks the nested-array response of the gtx endpoint
// and concatenates the translated segments.
func parseGoogleResponse(body []byte) (string, error) {
	var response []interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response) == 0 {
		return "", errors.New("empty response from google translate")
	}

	segments, ok := response[0].([]interface{})
	if !ok {
		return "", errors.New("unexpected response format")
	}

	var result strings.Builder
	for _, segment := range segments {
		if parts, ok := segment.([]interface{}); ok && len(parts) > 0 {
			if translated, ok := parts[0].(string); ok {
				result.WriteString(translated)
			}
		}
	}
	return result.String(), nil
}

func (c *Client) translateWithOpenAI(ctx context.Context, text, targetLang string) (string, error) {
	client := openai.NewClient(c.openAIKey)

	language := "Japanese"
	if targetLang == model.LangEN {
		language = "English"
	}

	prompt := fmt.Sprintf(`Translate the following news text to %s.
Keep the meaning, tone and journalistic style of the original.
Translate only the text itself, without additional comments.

Text to translate:
%s`, language, text)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: 2000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
