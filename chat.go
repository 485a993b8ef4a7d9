package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxChatMessage caps the characters forwarded to the text-generation API.
const maxChatMessage = 2000

var errNoReply = errors.New("no candidates in response")

/* ─── Gemini HTTP client ─────────────────────────────────────────────── */

// assistant forwards chat messages to a Gemini-compatible generateContent
// endpoint. baseURL is overridable so tests can point it at a mock server.
type assistant struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func newAssistant(baseURL, apiKey, model string) *assistant {
	return &assistant{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// reply sends one user message and returns the first candidate's text.
func (a *assistant) reply(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: message}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := a.baseURL + "/" + url.PathEscape(a.model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	var sb strings.Builder
	if len(result.Candidates) > 0 {
		for _, p := range result.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errNoReply
	}
	return sb.String(), nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// chat handles POST /api/chat: { "message": "..." } → { "reply": "..." }.
// The message is trimmed and capped before it is forwarded.
func (h *Handler) chat(c *gin.Context) {
	if h.assistant == nil {
		apiError(c, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}
	if r := []rune(message); len(r) > maxChatMessage {
		message = string(r[:maxChatMessage])
	}

	reply, err := h.assistant.reply(c.Request.Context(), message)
	if err != nil {
		h.log.Warn("assistant request failed", zap.Error(err))
		apiError(c, http.StatusBadGateway, "AI provider error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
