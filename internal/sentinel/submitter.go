package sentinel

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/models"
)

const (
	method      = http.MethodPost
	contentType = "application/json"
	resource    = "/api/logs"
	apiVersion  = "2016-04-01"

	// DefaultLogType is the custom table detections land in.
	DefaultLogType = "B9Phish_Email_Detections"
	DefaultTimeout = 30 * time.Second
)

// Config holds the workspace credentials and request settings.
type Config struct {
	WorkspaceID string
	// SharedKey is the base64-encoded workspace key.
	SharedKey string
	LogType   string
	// Endpoint replaces "https://{WorkspaceID}.ods.opinsights.azure.com" when set.
	Endpoint string
	// TimeGeneratedField names the record field the service should use as TimeGenerated.
	TimeGeneratedField string
	Timeout            time.Duration
}

// Validate checks the credentials without building a submitter.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.WorkspaceID) == "" {
		errs = append(errs, ErrMissingWorkspaceID)
	}
	if strings.TrimSpace(c.SharedKey) == "" {
		errs = append(errs, ErrMissingSharedKey)
	} else if _, err := base64.StdEncoding.DecodeString(c.SharedKey); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidSharedKey, err))
	}
	return errors.Join(errs...)
}

// Result describes one submission.
type Result struct {
	OK         bool
	StatusCode int
	Events     int
}

// Option customizes a Submitter.
type Option func(*Submitter)

// WithHTTPClient replaces the default client. Redirect handling is left to the caller's client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) { s.client = c }
}

// WithClock overrides the time source used for x-ms-date.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// Submitter signs and posts detection batches to the Log Analytics Data Collector API.
// It holds only read-only state and is safe for concurrent use.
type Submitter struct {
	workspaceID        string
	key                []byte
	logType            string
	url                string
	timeGeneratedField string

	client *http.Client
	now    func() time.Time
	logger *zap.Logger
}

// New validates cfg and returns a Submitter. Credential errors are configuration
// errors and should stop the process.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Submitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, _ := base64.StdEncoding.DecodeString(cfg.SharedKey)

	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LogType == "" {
		cfg.LogType = DefaultLogType
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := strings.TrimRight(cfg.Endpoint, "/")
	if base == "" {
		base = "https://" + cfg.WorkspaceID + ".ods.opinsights.azure.com"
	}

	s := &Submitter{
		workspaceID:        cfg.WorkspaceID,
		key:                key,
		logType:            cfg.LogType,
		url:                base + resource + "?api-version=" + apiVersion,
		timeGeneratedField: cfg.TimeGeneratedField,
		client: &http.Client{
			Timeout: cfg.Timeout,
			// A redirect would re-send a signature bound to another host.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// URL returns the ingestion URL requests are posted to.
func (s *Submitter) URL() string { return s.url }

// Send posts records as a single signed request. It makes exactly one attempt.
// An empty batch is accepted without contacting the endpoint.
func (s *Submitter) Send(ctx context.Context, records []models.Record) (Result, error) {
	if len(records) == 0 {
		s.logger.Debug("no events to send")
		return Result{OK: true}, nil
	}

	body, err := json.Marshal(records)
	if err != nil {
		return Result{Events: len(records)}, fmt.Errorf("encode events: %w", err)
	}

	req, err := s.newRequest(ctx, body)
	if err != nil {
		return Result{Events: len(records)}, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return Result{Events: len(records)}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	// Only the status is consulted.
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()

	result := Result{StatusCode: res.StatusCode, Events: len(records)}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return result, &StatusError{StatusCode: res.StatusCode}
	}
	result.OK = true
	return result, nil
}

func (s *Submitter) newRequest(ctx context.Context, body []byte) (*http.Request, error) {
	date := s.now().UTC().Format(http.TimeFormat)

	req, err := http.NewRequestWithContext(ctx, method, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("content-type", contentType)
	req.Header.Set("Authorization", s.BuildSignature(date, len(body), method, contentType, resource))
	req.Header.Set("Log-Type", s.logType)
	req.Header.Set("x-ms-date", date)
	if s.timeGeneratedField != "" {
		req.Header.Set("time-generated-field", s.timeGeneratedField)
	}
	return req, nil
}

// Submit sends records and reports whether the endpoint accepted them.
// Every failure, transport or status, is logged and returned as false.
func (s *Submitter) Submit(ctx context.Context, records []models.Record) bool {
	result, err := s.Send(ctx, records)
	if err != nil {
		s.logger.Error("failed to send events",
			zap.Int("status", result.StatusCode),
			zap.Int("events", len(records)),
			zap.Error(err),
		)
		return false
	}
	s.logger.Info("sent events to log analytics", zap.Int("events", result.Events))
	return true
}
