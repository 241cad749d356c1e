package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client posts messages to the external message relay API.
type Client struct {
	APIURL   string
	HTTP     *http.Client
	validate *validator.Validate
}

func NewClient(apiURL string) *Client {
	return &Client{
		APIURL: apiURL,
		HTTP: &http.Client{
			Timeout: 20 * time.Second,
		},
		validate: validator.New(),
	}
}

type relayRequest struct {
	Number  string `json:"number" validate:"required,numeric,min=10"`
	Message string `json:"message" validate:"required"`
}

type relayResponse struct {
	Status string `json:"status"`
}

// Relay delivers one message to the given recipient number.
// A non-"success" status from the API is reported as an error.
func (c *Client) Relay(ctx context.Context, recipient, body string) error {
	req := relayRequest{Number: recipient, Message: body}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid relay payload: %w", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal relay payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.APIURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay error: status %d", resp.StatusCode)
	}

	var apiResp relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode relay response: %w", err)
	}
	if apiResp.Status != "success" {
		return fmt.Errorf("relay reported status %q", apiResp.Status)
	}

	return nil
}
