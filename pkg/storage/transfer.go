package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// TransferUploader proxies files to a third-party transfer service with a
// multipart POST. The service's JSON reply is passed back to the client.
type TransferUploader struct {
	Endpoint   string
	APIKey     string
	Path       string
	HTTPClient *http.Client
}

func NewTransferUploader(endpoint, apiKey, path string) *TransferUploader {
	return &TransferUploader{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Path:       path,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (t *TransferUploader) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	endpoint, err := url.Parse(t.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", t.APIKey)
	q.Set("path", t.Path)
	if in.Compress {
		q.Set("compression_level", CompressionLevel)
	}
	endpoint.RawQuery = q.Encode()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", in.Filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, in.Body); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1*MB))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("transfer service returned %d", resp.StatusCode)
	}

	extra := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &extra); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	result := &UploadResult{Provider: "transfer", Extra: extra}
	if u, ok := extra["url"].(string); ok {
		result.URL = u
	}
	return result, nil
}
