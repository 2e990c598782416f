package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client 封裝 Binance 公開行情 API。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", fullURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance api error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// GetPrice 查詢單一交易對的最新成交價，回傳原始字串。
func (c *Client) GetPrice(ctx context.Context, symbol string) (string, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	body, err := c.call(ctx, "GET", "/api/v3/ticker/price", params)
	if err != nil {
		return "", err
	}

	var ticker tickerPrice
	if err := json.Unmarshal(body, &ticker); err != nil {
		return "", fmt.Errorf("parse ticker response: %w", err)
	}
	if ticker.Price == "" {
		return "", fmt.Errorf("empty price for symbol %s", symbol)
	}
	return ticker.Price, nil
}
