package inference

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/utils/platformerrors"
)

// ClientConfig configures the HTTP client used to reach the model runtime.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retries int
}

// NewRestyClient builds a resty client with request logging hooks.
func NewRestyClient(cfg ClientConfig, log zerolog.Logger) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryOnConnectionRefused).
		SetLogger(restyLogger{log: log.With().Str("client", "model-runtime").Logger()})

	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	client.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
		if requestID := platformerrors.RequestIDFromContext(r.Context()); requestID != "" {
			r.SetHeader("X-Request-Id", requestID)
		}
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
		log.Debug().
			Str("request_id", platformerrors.RequestIDFromContext(r.Request.Context())).
			Str("client", "model-runtime").
			Int("status", r.StatusCode()).
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Dur("latency", r.Time()).
			Msg("HTTP client request")
		return nil
	})
	return client
}

// retryOnConnectionRefused retries only requests the runtime never received.
// Timeouts are not retried: a generate or load may still be running remotely.
func retryOnConnectionRefused(_ *resty.Response, err error) bool {
	return err != nil && errors.Is(err, syscall.ECONNREFUSED)
}

// restyLogger routes resty's own warnings through zerolog.
type restyLogger struct {
	log zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
