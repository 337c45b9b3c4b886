package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the bearer credential.
// Callers must treat it as the session-teardown trigger, never as an
// ordinary request failure.
var ErrUnauthorized = errors.New("backend rejected credentials")

// APIError is a non-2xx backend response carrying the backend's own message
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsAPIError extracts an *APIError from err when present
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client is the REST client for the catalog/order backend. Every call is a
// single attempt; failed mutations are reported once and never retried.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// doJSON performs a JSON round trip. A non-empty token is attached as a
// Bearer credential. A 401 response maps to ErrUnauthorized, any other
// non-2xx to *APIError with the backend's message.
func (c *Client) doJSON(ctx context.Context, method, path, token string, reqBody, respBody interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if respBody != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, respBody); err != nil {
			return fmt.Errorf("decoding backend response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls the backend's error text out of a response body. The
// backend answers sometimes with {"error": ...}, sometimes {"message": ...},
// sometimes plain text.
func extractMessage(raw []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// uploadMultipart posts a single file field named "file" and returns the
// uploaded file's URL. Relative URLs are resolved against the backend base.
func (c *Client) uploadMultipart(ctx context.Context, path, token, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	var result struct {
		URL      string `json:"url"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}

	uploaded := result.URL
	if uploaded == "" {
		uploaded = result.ImageURL
	}
	if uploaded == "" {
		return "", fmt.Errorf("upload response carried no url")
	}
	return c.absoluteURL(uploaded), nil
}

// absoluteURL completes a backend-relative upload path
func (c *Client) absoluteURL(u string) string {
	if strings.HasPrefix(u, "http") || strings.HasPrefix(u, "data:") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return c.BaseURL + u
}
