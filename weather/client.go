// Package weather looks up current conditions from a weatherapi.com
// compatible provider.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tasknest-service/config"
	"tasknest-service/models"

	"github.com/umakantv/go-utils/httpclient"
)

// Error is a failed lookup. Message is safe to return to clients: it never
// contains the request URL and therefore never the API key.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Client calls the provider's current-conditions endpoint. Each call is
// bounded by the configured timeout and never retried.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *httpclient.Client
}

func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: httpclient.New(httpclient.ClientConfig{
			Timeout:     cfg.Timeout,
			MaxRetries:  0,
			BaseHeaders: map[string]string{"Accept": "application/json"},
		}),
	}
}

type currentResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC float64 `json:"temp_c"`
	} `json:"current"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current returns the provider's name for city and its temperature in
// Celsius.
func (c *Client) Current(ctx context.Context, city string) (*models.WeatherResponse, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", city)

	// httpclient requests carry no context, so a request already abandoned
	// by its caller is not sent at all
	if err := ctx.Err(); err != nil {
		return nil, &Error{Message: "weather lookup cancelled", Err: err}
	}

	resp, err := c.httpClient.Get(c.baseURL + "/current.json?" + params.Encode())
	if err != nil {
		cause := redact(err)
		return nil, &Error{Message: c.scrub(cause.Error()), Err: cause}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "reading weather response failed", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var upstream errorResponse
		if json.Unmarshal(body, &upstream) == nil && upstream.Error.Message != "" {
			return nil, &Error{StatusCode: resp.StatusCode, Message: upstream.Error.Message}
		}
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("weather provider returned status %d", resp.StatusCode),
		}
	}

	var current currentResponse
	if err := json.Unmarshal(body, &current); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: "malformed weather response", Err: err}
	}

	return &models.WeatherResponse{
		City: current.Location.Name,
		Temp: current.Current.TempC,
	}, nil
}

// scrub removes the API key from msg.
func (c *Client) scrub(msg string) string {
	if c.apiKey == "" {
		return msg
	}
	return strings.ReplaceAll(msg, c.apiKey, "[redacted]")
}

// redact drops the request URL, which carries the API key, from transport
// errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
