package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

const interviewsCollection = "/api/interviews"

// StrapiService is the interview store backed by the Strapi REST API.
type StrapiService struct {
	cfg    *config.CMSConfig
	client *resty.Client
}

func NewStrapiService(cfg *config.CMSConfig, timeout time.Duration) *StrapiService {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &StrapiService{cfg: cfg, client: client}
}

func (s *StrapiService) Create(ctx context.Context, payload dto.CreateInterviewPayload) (*model.Interview, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"data": payload}).
		Post(interviewsCollection)
	if err != nil {
		return nil, fmt.Errorf("strapi create: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("strapi create responded with status %d: %s", resp.StatusCode(), strapiError(resp.Body()))
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("strapi create: response is not JSON")
	}
	record := parseStrapiInterview(gjson.GetBytes(body, "data"))
	if record.DocumentID == "" {
		return nil, fmt.Errorf("strapi create: response has no document id")
	}
	return &record, nil
}

func (s *StrapiService) ListByUser(ctx context.Context, userID string) ([]model.Interview, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"filters[user][id][$eq]": userID,
			"sort[0]":                "createdAt:desc",
			"pagination[pageSize]":   "100",
		}).
		Get(interviewsCollection)
	if err != nil {
		return nil, fmt.Errorf("strapi list: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("strapi list responded with status %d: %s", resp.StatusCode(), strapiError(resp.Body()))
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("strapi list: response is not JSON")
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("strapi list: data is not a list")
	}

	items := data.Array()
	interviews := make([]model.Interview, 0, len(items))
	for _, item := range items {
		interviews = append(interviews, parseStrapiInterview(item))
	}
	return interviews, nil
}

func parseStrapiInterview(data gjson.Result) model.Interview {
	// v4 nests fields under attributes
	fields := data
	if attrs := data.Get("attributes"); attrs.IsObject() {
		fields = attrs
	}

	documentID := data.Get("documentId").String()
	if documentID == "" {
		documentID = data.Get("id").String()
	}

	interview := model.Interview{
		DocumentID:        documentID,
		CandidateName:     fields.Get("candidateName").String(),
		Mode:              fields.Get("mode").String(),
		Difficulty:        fields.Get("difficulty").String(),
		Skills:            fields.Get("skills").String(),
		Details:           fields.Get("details").String(),
		NumberOfQuestions: int(fields.Get("numberOfQuestions").Int()),
		CreatedAt:         fields.Get("createdAt").Time(),
		UpdatedAt:         fields.Get("updatedAt").Time(),
	}
	if resume := fields.Get("resume"); resume.Exists() && resume.Type == gjson.String {
		url := resume.String()
		interview.Resume = &url
	}
	if user := fields.Get("user"); user.IsObject() {
		interview.UserID = user.Get("id").String()
	} else {
		interview.UserID = user.String()
	}
	if report := fields.Get("report"); report.Exists() {
		interview.Report = datatypes.JSON(report.Raw)
	}
	return interview
}

func strapiError(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return msg.String()
	}
	return abbreviate(string(body), 200)
}
