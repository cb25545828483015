package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskflow/backend/usecase"
)

// Client uploads attachment binaries to the external image-hosting service.
// The host keeps objects forever; nothing here can delete one.
type Client struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	http     *fasthttp.Client
	logger   *zap.Logger
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// NewClient builds an image-host client for the configured endpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		timeout:  timeout,
		http:     &fasthttp.Client{},
		logger:   logger,
	}
}

// Upload posts one file as multipart form data and returns the durable URL
// the host assigned. A single attempt only; callers treat failure as final.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if c.apiKey != "" {
		if err := writer.WriteField("key", c.apiKey); err != nil {
			return "", err
		}
	}
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(writer.FormDataContentType())
	req.SetBody(body.Bytes())

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return "", err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode())
	}

	var parsed uploadResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", err
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("image host rejected upload")
	}

	c.logger.Debug("file uploaded", zap.String("filename", filename), zap.String("url", parsed.Data.URL))
	return parsed.Data.URL, nil
}

var _ usecase.Uploader = (*Client)(nil)
