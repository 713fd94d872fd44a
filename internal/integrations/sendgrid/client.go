package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент SendGrid v3 Mail Send API
type Client struct {
	baseURL    string
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SendGrid
func NewClient(baseURL, apiKey, fromEmail, fromName string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendTemplate отправляет письмо по динамическому шаблону.
// SendGrid отвечает 202 без тела при принятии письма в очередь.
func (c *Client) SendTemplate(ctx context.Context, to, templateID string, dynamicData map[string]interface{}) error {
	payload := mailRequest{
		Personalizations: []personalization{
			{
				To:          []mailAddress{{Email: to}},
				DynamicData: dynamicData,
			},
		},
		From:       mailAddress{Email: c.fromEmail, Name: c.fromName},
		TemplateID: templateID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	endpoint := c.baseURL + "/v3/mail/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil
	case http.StatusBadRequest:
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && len(apiErr.Errors) > 0 {
			return fmt.Errorf("%w: %s", ErrRejected, apiErr.Errors[0].Message)
		}
		return ErrRejected
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// SendTemplateWithGracefulDegradation отправляет письмо с graceful degradation.
// При недоступности SendGrid возвращает ErrServiceDegraded, чтобы вызывающий
// код мог повторить отправку на следующем прогоне.
func (c *Client) SendTemplateWithGracefulDegradation(ctx context.Context, to, templateID string, dynamicData map[string]interface{}) error {
	c.log.Info("Sending template=%s to=%s", templateID, to)

	err := c.SendTemplate(ctx, to, templateID, dynamicData)
	if err != nil {
		// Отклоненное письмо пробрасываем как есть: повтор не поможет
		if errors.Is(err, ErrRejected) || errors.Is(err, ErrUnauthorized) {
			c.log.Error("SendGrid rejected template=%s to=%s: %v", templateID, to, err)
			return err
		}

		c.log.Error("SendGrid unavailable, applying graceful degradation for to=%s: %v", to, err)
		return fmt.Errorf("%w: to=%s, error=%v", ErrServiceDegraded, to, err)
	}

	c.log.Info("Successfully sent template=%s to=%s", templateID, to)
	return nil
}
