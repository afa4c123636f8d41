package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sporadisk/selfcare/client"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// errorBody covers the error shapes of both GoTrue and PostgREST.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func parseAPIError(resp *client.Resp) *APIError {
	apiErr := &APIError{Status: resp.Code}

	var body errorBody
	if json.Unmarshal(resp.Body, &body) == nil {
		for _, msg := range []string{body.Message, body.Msg, body.ErrorDescription, body.Error} {
			if msg != "" {
				apiErr.Message = msg
				return apiErr
			}
		}
	}

	apiErr.Message = strings.TrimSpace(string(resp.Body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.Code)
	}
	return apiErr
}

func (c *Client) authEndpoint(path string, params url.Values) string {
	return c.endpoint("auth/v1/"+path, params)
}

func (c *Client) restEndpoint(table string, params url.Values) string {
	return c.endpoint("rest/v1/"+table, params)
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.Endpoint + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

type request struct {
	method   string
	endpoint string
	body     any
	bearer   string
	prefer   string
}

// send performs r with the project's anon key. Requests without a bearer
// token are made as the anonymous role.
func (c *Client) send(ctx context.Context, r request) (*client.Resp, error) {
	req, err := client.NewJSONRequest(ctx, r.method, r.endpoint, r.body)
	if err != nil {
		return nil, fmt.Errorf("client.NewJSONRequest: %w", err)
	}

	bearer := r.bearer
	if bearer == "" {
		bearer = c.AnonKey
	}
	req.Header.Set("apikey", c.AnonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HttpClient.Do: %w", err)
	}

	if !resp.OK() {
		return resp, parseAPIError(resp)
	}
	return resp, nil
}

// sendAuthed is send on behalf of the signed-in user.
func (c *Client) sendAuthed(ctx context.Context, r request) (*client.Resp, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	r.bearer = token
	return c.send(ctx, r)
}
