// Package utils chứa các tiện ích dùng chung cho API test: HTTP client và mint token.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient là wrapper đơn giản quanh net/http cho các test case.
type HTTPClient struct {
	BaseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient tạo client với timeout (giây).
func NewHTTPClient(baseURL string, timeoutSeconds int) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
	}
}

// SetToken đặt bearer token cho các request tiếp theo.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do gửi request với method, path và payload JSON (nil nếu không có body).
func (c *HTTPClient) do(method, path string, payload interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// GET gửi GET request.
func (c *HTTPClient) GET(path string) (*http.Response, []byte, error) {
	return c.do(http.MethodGet, path, nil)
}

// POST gửi POST request với payload JSON.
func (c *HTTPClient) POST(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPost, path, payload)
}

// PUT gửi PUT request với payload JSON.
func (c *HTTPClient) PUT(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodPut, path, payload)
}

// DELETE gửi DELETE request với payload JSON (nil nếu không có body).
func (c *HTTPClient) DELETE(path string, payload interface{}) (*http.Response, []byte, error) {
	return c.do(http.MethodDelete, path, payload)
}
