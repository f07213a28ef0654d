package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/rs/zerolog"
)

// Sender delivers a single text message
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

const (
	DefaultCloudSMSURL = "https://api.cloudsmsbd.com/sms/"
	DefaultBulkSMSURL  = "http://bulksmsbd.net/api/smsapi"
)

// CloudSMSClient posts JSON to the cloudsms API. It answers 201 on success.
type CloudSMSClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type cloudSMSRequest struct {
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

func NewCloudSMSClient(baseURL, apiKey string) *CloudSMSClient {
	if baseURL == "" {
		baseURL = DefaultCloudSMSURL
	}
	return &CloudSMSClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *CloudSMSClient) Send(ctx context.Context, phoneNumber, message string) error {
	payload, err := json.Marshal(cloudSMSRequest{Message: message, Recipient: phoneNumber})
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid cloudsms url: %w", err)
	}
	q := endpoint.Query()
	q.Set("key", c.APIKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return do(c.HTTPClient, req, http.StatusCreated)
}

// BulkSMSClient posts a form to the bulksms API. It answers 200 on success.
type BulkSMSClient struct {
	BaseURL    string
	APIKey     string
	SenderID   string
	HTTPClient *http.Client
}

func NewBulkSMSClient(baseURL, apiKey, senderID string) *BulkSMSClient {
	if baseURL == "" {
		baseURL = DefaultBulkSMSURL
	}
	return &BulkSMSClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		SenderID:   senderID,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BulkSMSClient) Send(ctx context.Context, phoneNumber, message string) error {
	form := url.Values{
		"api_key":  {c.APIKey},
		"senderid": {c.SenderID},
		"number":   {phoneNumber},
		"message":  {message},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return do(c.HTTPClient, req, http.StatusOK)
}

func do(client *http.Client, req *http.Request, want int) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// SNSSender publishes transactional SMS through AWS SNS. Numbers must be E.164.
type SNSSender struct {
	client *sns.Client
}

func NewSNSSender(cfg aws.Config) *SNSSender {
	return &SNSSender{client: sns.NewFromConfig(cfg)}
}

func (s *SNSSender) Send(ctx context.Context, phoneNumber, message string) error {
	input := &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phoneNumber),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	}
	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

// LogSender only logs the message.
type LogSender struct {
	Logger zerolog.Logger
}

func (l LogSender) Send(_ context.Context, phoneNumber, message string) error {
	l.Logger.Info().Str("to", phoneNumber).Int("length", len(message)).Msg("sms suppressed")
	return nil
}
