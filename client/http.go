package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HttpClient implements a client for sending HTTP requests, while automating
// some busywork such as closing response bodies.
type HttpClient struct {
	Client http.Client
}

func NewHttpClient(timeout time.Duration) *HttpClient {
	hc := &HttpClient{
		Client: http.Client{
			Timeout: timeout,
		},
	}
	return hc
}

type Resp struct {
	Code   int
	Body   []byte
	Header http.Header
}

// OK reports whether the response has a 2xx status.
func (r *Resp) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

// Decode unmarshals the JSON body into v.
func (r *Resp) Decode(v any) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}
	return nil
}

// NewJSONRequest builds a request whose body is v encoded as JSON. A nil v
// sends no body.
func NewJSONRequest(ctx context.Context, method, url string, v any) (*http.Request, error) {
	var body io.Reader
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if v != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do is a simplified version of http.Client.Do that reads the response body
// and returns it as a byte slice.
func (hc *HttpClient) Do(req *http.Request) (*Resp, error) {
	hr, err := hc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client error: %w", err)
	}

	defer hr.Body.Close()
	body, err := io.ReadAll(hr.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Resp{
		Code:   hr.StatusCode,
		Body:   body,
		Header: hr.Header,
	}, nil
}
