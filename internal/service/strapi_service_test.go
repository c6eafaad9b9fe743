package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestStrapi(url string) *StrapiService {
	return NewStrapiService(&config.CMSConfig{URL: url, Token: "cms-token"}, 5*time.Second)
}

func TestStrapiService_Create(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/interviews", r.URL.Path)
		assert.Equal(t, "Bearer cms-token", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)

		_, _ = w.Write([]byte(`{"data":{"id":3,"documentId":"abc123","candidateName":"Jane Doe","createdAt":"2026-01-02T03:04:05.000Z"}}`))
	}))
	defer srv.Close()

	resume := "https://cdn/x.png"
	record, err := newTestStrapi(srv.URL).Create(context.Background(), dto.CreateInterviewPayload{
		Resume:            &resume,
		Mode:              "Technical",
		Difficulty:        "medium",
		Skills:            "react,node",
		Details:           "Frontend Developer",
		NumberOfQuestions: 10,
		User:              "7",
		CandidateName:     "Jane Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", record.DocumentID)
	assert.Equal(t, "Jane Doe", record.CandidateName)
	assert.Equal(t, 2026, record.CreatedAt.Year())

	assert.Equal(t, "https://cdn/x.png", gjson.GetBytes(body, "data.resume").String())
	assert.Equal(t, "Frontend Developer", gjson.GetBytes(body, "data.details").String())
	assert.Equal(t, int64(10), gjson.GetBytes(body, "data.numberOfQuestions").Int())
	assert.Equal(t, "7", gjson.GetBytes(body, "data.user").String())
	assert.Equal(t, "react,node", gjson.GetBytes(body, "data.skills").String())
}

func TestStrapiService_CreateFallsBackToNumericID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":12,"attributes":{"candidateName":"Jane Doe"}}}`))
	}))
	defer srv.Close()

	record, err := newTestStrapi(srv.URL).Create(context.Background(), dto.CreateInterviewPayload{})
	require.NoError(t, err)
	assert.Equal(t, "12", record.DocumentID)
	assert.Equal(t, "Jane Doe", record.CandidateName)
}

func TestStrapiService_CreateErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"data":null,"error":{"status":400,"message":"Invalid key user"}}`))
	}))
	defer srv.Close()

	_, err := newTestStrapi(srv.URL).Create(context.Background(), dto.CreateInterviewPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key user")

	noID := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer noID.Close()

	_, err = newTestStrapi(noID.URL).Create(context.Background(), dto.CreateInterviewPayload{})
	assert.Error(t, err)
}

func TestStrapiService_ListByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("filters[user][id][$eq]"))
		assert.Equal(t, "createdAt:desc", q.Get("sort[0]"))

		_, _ = w.Write([]byte(`{"data":[
			{"id":2,"documentId":"new","details":"Go Developer","mode":"HR","difficulty":"hard","skills":"go","numberOfQuestions":5,"resume":"https://cdn/y.png","report":{"score":90},"user":{"id":7},"createdAt":"2026-02-01T00:00:00.000Z"},
			{"id":1,"documentId":"old","details":"","resume":null,"report":"{\"score\":40}","createdAt":"2026-01-01T00:00:00.000Z"}
		],"meta":{"pagination":{"total":2}}}`))
	}))
	defer srv.Close()

	list, err := newTestStrapi(srv.URL).ListByUser(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "new", list[0].DocumentID)
	assert.Equal(t, "Go Developer", list[0].Details)
	assert.Equal(t, "HR", list[0].Mode)
	assert.Equal(t, 5, list[0].NumberOfQuestions)
	assert.Equal(t, "7", list[0].UserID)
	require.NotNil(t, list[0].Resume)
	assert.Equal(t, "https://cdn/y.png", *list[0].Resume)
	assert.JSONEq(t, `{"score":90}`, string(list[0].Report))

	assert.Nil(t, list[1].Resume)
	assert.Equal(t, `"{\"score\":40}"`, string(list[1].Report))
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestStrapiService_ListErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"Forbidden"}}`))
	}))
	defer srv.Close()

	_, err := newTestStrapi(srv.URL).ListByUser(context.Background(), "7")
	assert.Error(t, err)

	notList := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer notList.Close()

	_, err = newTestStrapi(notList.URL).ListByUser(context.Background(), "7")
	assert.Error(t, err)
}
