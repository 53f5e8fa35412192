// Package leadcapture отправляет email во внешний сервис сбора контактов
// (форма в стиле Formspree) и открывает доступ к выгрузке графика.
package leadcapture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/noel97chan-creator/IFRS16calculator/internal/resilience"
)

// ErrNotConfigured возвращается, когда адрес сервиса сбора контактов не задан
var ErrNotConfigured = errors.New("lead capture endpoint is not configured")

// RejectedError - сервис ответил статусом вне диапазона 2xx
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("lead capture endpoint rejected submission: status %d", e.StatusCode)
}

// Client отправляет форму с email на внешний endpoint
type Client struct {
	httpClient *http.Client
	endpoint   string
	cb         *gobreaker.CircuitBreaker
	retry      resilience.Config
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, endpoint string, cb *gobreaker.CircuitBreaker, retry resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		cb:         cb,
		retry:      retry,
		logger:     logger,
	}
}

// Submit отправляет email как данные формы с Accept: application/json.
// Успехом считается только ответ 2xx.
func (c *Client) Submit(ctx context.Context, email string) error {
	if c.endpoint == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("email", email)
	body := form.Encode()

	return resilience.RetryWithBackoff(ctx, c.retry, isRetryable, func() error {
		_, err := c.cb.Execute(func() (interface{}, error) {
			return nil, c.post(ctx, body)
		})
		if err != nil {
			c.logger.Warn("lead submission attempt failed", zap.Error(err))
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("building lead capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting lead: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RejectedError{StatusCode: resp.StatusCode}
	}
	return nil
}

// 4xx - ошибка в самих данных, повтор не поможет
func isRetryable(err error) bool {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.StatusCode >= 500 || rejected.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, context.Canceled)
}
