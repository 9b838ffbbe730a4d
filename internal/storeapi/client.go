// Package storeapi предоставляет клиент HTTP-API сервера магазина.
package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/flugede/storefront-ui/internal/model"
)

// tokenField — имя поля формы с токеном защиты от подделки запросов.
const tokenField = "csrfmiddlewaretoken"

// Client инкапсулирует HTTP-взаимодействие с сервером магазина.
// Ошибка любого метода означает транспортный сбой или неразборчивый
// ответ; отказ сервера выполнить действие приходит внутри ActionResult.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт HTTP-клиент магазина по указанному адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) resolve(path string) string {
	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base + path
}

type suggestionsResponse struct {
	Suggestions []model.SuggestionItem `json:"suggestions"`
}

// SearchSuggestions запрашивает подсказки поиска по строке запроса.
func (c *Client) SearchSuggestions(ctx context.Context, query string) ([]model.SuggestionItem, error) {
	u := c.resolve("/search-suggestions/") + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result suggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.Suggestions, nil
}

// Subscribe отправляет подписку на рассылку.
func (c *Client) Subscribe(ctx context.Context, email, token string) (*model.ActionResult, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set(tokenField, token)

	return c.postForm(ctx, "/subscribe/", form)
}

// ApplyCoupon отправляет код купона для применения к заказу.
func (c *Client) ApplyCoupon(ctx context.Context, code, token string) (*model.ActionResult, error) {
	form := url.Values{}
	form.Set("coupon_code", code)
	form.Set(tokenField, token)

	return c.postForm(ctx, "/apply-coupon/", form)
}

// UpdateCartQuantity отправляет новое количество товара в корзине.
func (c *Client) UpdateCartQuantity(ctx context.Context, itemID int64, quantity int, token string) (*model.ActionResult, error) {
	form := url.Values{}
	form.Set("quantity", strconv.Itoa(quantity))
	form.Set(tokenField, token)

	return c.postForm(ctx, fmt.Sprintf("/cart/update/%d/", itemID), form)
}

// PageState запрашивает состояние страницы оформления заказа.
func (c *Client) PageState(ctx context.Context) (*model.PageState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve("/page-state/"), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var state model.PageState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &state, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*model.ActionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result model.ActionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}
