package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/model"
)

// HTTPClient implements RosterClient using the HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ RosterClient = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func recordPath(kind model.Kind, id string) string {
	p := "/v1/records/" + url.PathEscape(string(kind))
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func criteriaQuery(c model.Criteria) url.Values {
	q := url.Values{}
	for k, v := range c.Active() {
		q.Set(k, v)
	}
	return q
}

func (c *HTTPClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	q := criteriaQuery(req.Criteria)
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", strconv.Itoa(req.Offset))
	}
	var resp SearchResponse
	if err := c.doJSON(ctx, http.MethodGet, withQuery(recordPath(req.Kind, ""), q), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetRecord(ctx context.Context, kind model.Kind, id string) (*model.Record, error) {
	var rec model.Record
	if err := c.doJSON(ctx, http.MethodGet, recordPath(kind, id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type recordBody struct {
	Fields map[string]any `json:"fields"`
}

func (c *HTTPClient) PutRecord(ctx context.Context, kind model.Kind, id string, fields map[string]any) (*model.Record, error) {
	var rec model.Record
	if err := c.doJSON(ctx, http.MethodPut, recordPath(kind, id), recordBody{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) CreateRecord(ctx context.Context, kind model.Kind, fields map[string]any) (*model.Record, error) {
	var rec model.Record
	if err := c.doJSON(ctx, http.MethodPost, recordPath(kind, ""), recordBody{Fields: fields}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, kind model.Kind, id string) error {
	return c.doJSON(ctx, http.MethodDelete, recordPath(kind, id), nil, nil)
}

func (c *HTTPClient) VerifyLawyer(ctx context.Context, id, action string) (*model.Record, error) {
	var resp struct {
		Lawyer *model.Record `json:"lawyer"`
	}
	body := map[string]string{"action": action}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/lawyers/"+url.PathEscape(id)+"/verify", body, &resp); err != nil {
		return nil, err
	}
	return resp.Lawyer, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context, role, tab string, criteria model.Criteria) (*Dashboard, error) {
	q := criteriaQuery(criteria)
	if tab != "" {
		q.Set("tab", tab)
	}
	var d Dashboard
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/v1/dashboards/"+url.PathEscape(role), q), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Schema(ctx context.Context, kind model.Kind) (*model.Schema, error) {
	var s model.Schema
	if err := c.doJSON(ctx, http.MethodGet, "/v1/schemas/"+url.PathEscape(string(kind)), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// maxEventLine bounds one line of the event stream. A data line carries a
// whole record, so it is well above bufio's default.
const maxEventLine = 8 << 20

// Watch reads the server's event stream and calls fn for every event until
// ctx is done, the stream ends, or fn returns an error. Topic patterns use
// NATS syntax; none means all topics.
func (c *HTTPClient) Watch(ctx context.Context, topics []string, fn func(events.Message) error) error {
	q := url.Values{}
	if len(topics) > 0 {
		q.Set("topics", strings.Join(topics, ","))
	}
	req, err := c.newRequest(ctx, http.MethodGet, withQuery("/v1/events/stream", q), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The shared client may carry a timeout; streams must not.
	resp, err := (&http.Client{Transport: c.httpClient.Transport}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}

	var msg events.Message
	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), maxEventLine)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if msg.Topic != "" {
				if err := fn(msg); err != nil {
					return err
				}
			}
			msg = events.Message{}
		case strings.HasPrefix(line, "event:"):
			msg.Topic = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			msg.Data = []byte(strings.TrimPrefix(line, "data:"))
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("reading event stream: %w", err)
	}
	return nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
}
