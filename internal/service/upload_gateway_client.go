package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// UploadGatewayClient posts resumes to a remote upload gateway that answers
// with {"result": "<url>"}.
type UploadGatewayClient struct {
	url    string
	client *resty.Client
}

func NewUploadGatewayClient(url string, timeout time.Duration) *UploadGatewayClient {
	return &UploadGatewayClient{
		url:    url,
		client: resty.New().SetTimeout(timeout),
	}
}

// Upload returns an empty URL when the gateway answers without a result.
func (c *UploadGatewayClient) Upload(ctx context.Context, file usecase.ResumeFile) (string, error) {
	name := file.Name
	if name == "" {
		name = "resume"
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetMultipartField("image", name, contentType, bytes.NewReader(file.Data)).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("upload to gateway: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gateway responded with status %d: %s", resp.StatusCode(), abbreviate(resp.String(), 200))
	}
	return gjson.GetBytes(resp.Body(), "result").String(), nil
}
