package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// RelayService forwards extraction requests to an OpenAI-compatible chat
// completions endpoint and hands back the first completion's text.
type RelayService struct {
	cfg    *config.RelayConfig
	client *resty.Client
}

func NewRelayService(cfg *config.RelayConfig) *RelayService {
	return &RelayService{
		cfg:    cfg,
		client: resty.New().SetTimeout(cfg.Timeout),
	}
}

type ChatCompletionRequest struct {
	Model    string            `json:"model"`
	Messages []dto.ChatMessage `json:"messages"`
}

// BuildRequest puts the fixed system prompt ahead of the caller's messages.
func (s *RelayService) BuildRequest(messages []dto.ChatMessage) ChatCompletionRequest {
	all := make([]dto.ChatMessage, 0, len(messages)+1)
	all = append(all, dto.NewTextMessage(dto.RoleSystem, ResumeExtractionPrompt))
	all = append(all, messages...)
	return ChatCompletionRequest{
		Model:    s.cfg.Model,
		Messages: all,
	}
}

func (s *RelayService) Extract(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.APIToken).
		SetHeader("Content-Type", "application/json").
		SetBody(s.BuildRequest(messages)).
		Post(s.cfg.APIURL)
	if err != nil {
		return "", fmt.Errorf("call model: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("model responded with status %d: %s", resp.StatusCode(), abbreviate(resp.String(), 200))
	}

	body := resp.String()
	if !gjson.Valid(body) {
		return "", fmt.Errorf("model response is not JSON: %s", abbreviate(body, 200))
	}
	return strings.TrimSpace(gjson.Get(body, "choices.0.message.content").String()), nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
