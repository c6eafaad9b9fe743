package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/middleware"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/fadilmartias/neuraview/internal/service"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type stubExtractor struct {
	raw   string
	err   error
	calls atomic.Int32
}

func (s *stubExtractor) Extract(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	s.calls.Add(1)
	return s.raw, s.err
}

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, file usecase.ResumeFile) (string, error) {
	return s.url, s.err
}

type memoryStore struct {
	mu      sync.Mutex
	records []model.Interview
	nextID  int
}

func (m *memoryStore) Create(ctx context.Context, payload dto.CreateInterviewPayload) (*model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	record := model.Interview{
		DocumentID:        "doc-" + strconv.Itoa(m.nextID),
		CandidateName:     payload.CandidateName,
		Resume:            payload.Resume,
		Mode:              payload.Mode,
		Difficulty:        payload.Difficulty,
		Skills:            payload.Skills,
		Details:           payload.Details,
		NumberOfQuestions: payload.NumberOfQuestions,
		UserID:            payload.User,
		CreatedAt:         time.Now(),
	}
	m.records = append(m.records, record)
	return &record, nil
}

func (m *memoryStore) ListByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Interview
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type testEnv struct {
	app   *fiber.App
	auth  *service.AuthService
	store *memoryStore
}

func newTestEnv(t *testing.T, uploader usecase.Uploader, extractor usecase.Extractor) *testEnv {
	t.Helper()
	store := &memoryStore{}
	auth := service.NewAuthService(&config.AuthConfig{
		JWTSecret: "handler-test-secret",
		Issuer:    "neuraview",
		TokenTTL:  time.Hour,
	})

	interviews := usecase.NewInterviewUsecase(store, time.Second)
	wizards := usecase.NewWizardManager(uploader, extractor, interviews, time.Second, time.Hour)
	reports := usecase.NewReportUsecase(interviews, usecase.NewTaskStore())

	app := fiber.New()
	api := app.Group("/api", middleware.Authenticate(auth))
	NewUploadHandler(uploader).RegisterRoutes(api)
	NewExtractorHandler(extractor).RegisterRoutes(api)
	NewWizardHandler(wizards).RegisterRoutes(api)
	NewInterviewHandler(interviews).RegisterRoutes(api)
	NewReportHandler(reports).RegisterRoutes(api)

	return &testEnv{app: app, auth: auth, store: store}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.auth.GenerateToken(userID)
	require.NoError(t, err)
	return token
}

// do sends the request and returns the status and body.
func (e *testEnv) do(t *testing.T, req *http.Request, token string) (int, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (e *testEnv) call(t *testing.T, method, path, body, token string) (int, gjson.Result) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	status, raw := e.do(t, req, token)
	return status, gjson.ParseBytes(raw)
}

func multipartRequest(t *testing.T, path, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
