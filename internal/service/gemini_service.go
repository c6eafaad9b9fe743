package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

const maxImageBytes = 10 * 1024 * 1024

// GeminiService is the genai-backed extractor. Image parts are fetched and
// sent inline since Gemini does not read arbitrary URLs.
type GeminiService struct {
	Client         *genai.Client
	Model          string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	downloader *resty.Client

	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	cooldown          time.Duration
	openedAt          time.Time
	trialInFlight     bool
	now               func() time.Time
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, timeout time.Duration) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.Model,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    timeout,
		downloader:        resty.New().SetTimeout(timeout),
		circuitBreakerMax: 5,
		cooldown:          30 * time.Second,
		now:               time.Now,
	}, nil
}

func (s *GeminiService) Extract(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	contents, system, err := s.toContents(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(contents) == 0 {
		contents = genai.Text("Extract the resume fields.")
	}

	result, err := s.GenerateContent(ctx, contents, system)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Text()), nil
}

func (s *GeminiService) toContents(ctx context.Context, messages []dto.ChatMessage) ([]*genai.Content, *genai.Content, error) {
	systemParts := []*genai.Part{genai.NewPartFromText(ResumeExtractionPrompt)}
	var contents []*genai.Content

	for _, msg := range messages {
		parts, err := s.toParts(ctx, msg)
		if err != nil {
			return nil, nil, err
		}
		if len(parts) == 0 {
			continue
		}
		switch msg.Role {
		case dto.RoleSystem:
			systemParts = append(systemParts, parts...)
		case "assistant", "model":
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
		}
	}
	return contents, genai.NewContentFromParts(systemParts, genai.RoleUser), nil
}

func (s *GeminiService) toParts(ctx context.Context, msg dto.ChatMessage) ([]*genai.Part, error) {
	content := gjson.ParseBytes(msg.Content)
	if !content.IsArray() {
		if text := content.String(); text != "" {
			return []*genai.Part{genai.NewPartFromText(text)}, nil
		}
		return nil, nil
	}

	var parts []*genai.Part
	for _, part := range content.Array() {
		switch part.Get("type").String() {
		case dto.PartText:
			parts = append(parts, genai.NewPartFromText(part.Get("text").String()))
		case dto.PartImageURL:
			data, mimeType, err := s.fetchImage(ctx, part.Get("image_url.url").String())
			if err != nil {
				return nil, err
			}
			parts = append(parts, genai.NewPartFromBytes(data, mimeType))
		}
	}
	return parts, nil
}

func (s *GeminiService) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	if url == "" {
		return nil, "", fmt.Errorf("image part has no url")
	}
	resp, err := s.downloader.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("fetch image %s: status %d", url, resp.StatusCode())
	}
	data := resp.Body()
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image %s is larger than %d bytes", url, maxImageBytes)
	}
	mimeType := strings.TrimSpace(strings.Split(resp.Header().Get("Content-Type"), ";")[0])
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

func (s *GeminiService) GenerateContent(ctx context.Context, contents []*genai.Content, system *genai.Content) (*genai.GenerateContentResponse, error) {
	if s.Model == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if open, n := s.circuitOpen(); open {
		return nil, fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(0.1)),
		SystemInstruction: system,
		ResponseMIMEType:  "application/json",
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for GenerateContent after %v", attempt, s.MaxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.recordResult(false)
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, contents, genConfig)
		if err == nil {
			s.recordResult(true)
			if err := s.validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("invalid response: %w", err)
			}
			return result, nil
		}

		lastErr = err
		if !s.isRetryableError(err) {
			// The API answered, so the request was at fault and not the upstream.
			s.recordResult(true)
			return nil, fmt.Errorf("generate content failed: %w", err)
		}
		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.recordResult(false)
	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("candidate content is empty")
	}
	return nil
}

// circuitOpen reports whether calls are refused. Once the cooldown has
// passed a single trial call is let through; its result closes or reopens
// the breaker.
func (s *GeminiService) circuitOpen() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consecutiveErrors < s.circuitBreakerMax {
		return false, s.consecutiveErrors
	}
	if !s.trialInFlight && s.clock().Sub(s.openedAt) >= s.cooldown {
		s.trialInFlight = true
		return false, s.consecutiveErrors
	}
	return true, s.consecutiveErrors
}

func (s *GeminiService) recordResult(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trialInFlight = false
	if ok {
		s.consecutiveErrors = 0
		return
	}
	s.consecutiveErrors++
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.openedAt = s.clock()
	}
}

func (s *GeminiService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
