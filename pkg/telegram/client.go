package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

const DefaultAPIBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API: it is the outbound message sink
// and also fetches user-uploaded documents.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &Client{
		Token:   token,
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiResponse struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.methodURL(method), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if !api.Ok {
		return nil, fmt.Errorf("%s rejected: %s", method, api.Description)
	}
	return &api, nil
}

// SendMessage delivers a plain text reply to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := c.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	return err
}

// SendDocument delivers a file as a document attachment with an optional caption.
func (c *Client) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("write chat_id field: %w", err)
	}
	if caption != "" {
		if err := mw.WriteField("caption", caption); err != nil {
			return fmt.Errorf("write caption field: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("document", filename)
	if err != nil {
		return fmt.Errorf("create document part: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write document part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.methodURL("sendDocument"), &buf)
	if err != nil {
		return fmt.Errorf("create sendDocument request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sendDocument request failed: %w", err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("decode sendDocument response: %w", err)
	}
	if !api.Ok {
		return fmt.Errorf("sendDocument rejected: %s", api.Description)
	}
	return nil
}

type fileInfo struct {
	FilePath string `json:"file_path"`
}

// FetchDocument downloads the bytes of a file a user sent to the bot.
func (c *Client) FetchDocument(ctx context.Context, fileID string) ([]byte, error) {
	api, err := c.call(ctx, "getFile", map[string]interface{}{
		"file_id": fileID,
	})
	if err != nil {
		return nil, err
	}

	var info fileInfo
	if err := json.Unmarshal(api.Result, &info); err != nil {
		return nil, fmt.Errorf("decode getFile result: %w", err)
	}
	if info.FilePath == "" {
		return nil, fmt.Errorf("getFile returned no file_path")
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.BaseURL, c.Token, info.FilePath)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create file download request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("file download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download error: status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
