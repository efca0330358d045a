// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/go-resty/resty/v2"
)

// Client queries the Practicum homework-review API. It implements the
// homework.StatusProvider interface.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the given endpoint. The timeout bounds every
// request so a stalled upstream cannot stall a poll cycle indefinitely.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Authorization", "OAuth "+token).
		SetTimeout(timeout)

	return &Client{http: httpClient}
}

// FetchStatuses issues one GET with from_date as a query parameter and
// returns the raw response body. Structural validation of the body belongs to
// homework.ParseResponse; this client only owns transport and HTTP status.
func (c *Client) FetchStatuses(ctx context.Context, fromDate int64) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("from_date", strconv.FormatInt(fromDate, 10)).
		Get("")
	if err != nil {
		return nil, &homework.RequestStatusError{Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &homework.RequestStatusError{StatusCode: resp.StatusCode()}
	}

	return json.RawMessage(resp.Body()), nil
}
