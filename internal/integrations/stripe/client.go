package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client клиент Stripe Payment Links API
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Stripe
func NewClient(baseURL, secretKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePaymentLink создает платежную ссылку на одну позицию.
// Payment Links API принимает только идентификатор Price, поэтому сначала
// создается одноразовый Price с inline product_data, затем сама ссылка.
func (c *Client) CreatePaymentLink(ctx context.Context, linkReq PaymentLinkRequest) (*PaymentLink, error) {
	priceID, err := c.createPrice(ctx, linkReq)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	if linkReq.Reference != "" {
		form.Set("metadata[booking_id]", linkReq.Reference)
	}

	var link PaymentLink
	if err := c.postForm(ctx, "/v1/payment_links", form, &link); err != nil {
		return nil, err
	}

	c.log.Info("CreatePaymentLink: created link id=%s for reference=%s", link.ID, linkReq.Reference)
	return &link, nil
}

// createPrice создает Price под одну позицию и возвращает его идентификатор
func (c *Client) createPrice(ctx context.Context, linkReq PaymentLinkRequest) (string, error) {
	form := url.Values{}
	form.Set("currency", linkReq.Currency)
	form.Set("unit_amount", strconv.FormatInt(linkReq.AmountCents, 10))
	form.Set("product_data[name]", linkReq.Description)

	var created price
	if err := c.postForm(ctx, "/v1/prices", form, &created); err != nil {
		return "", err
	}

	c.log.Info("createPrice: created price id=%s for reference=%s", created.ID, linkReq.Reference)
	return created.ID, nil
}

// postForm выполняет form-encoded POST запрос и декодирует успешный ответ в out
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, apiErr.Error.Message)
		}
		return ErrInvalidRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
