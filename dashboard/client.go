package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Saran-k-ece/Forensync/models"
	"github.com/Saran-k-ece/Forensync/store"
)

const requestTimeout = 10 * time.Second

// APIError carries the status code and message of a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the evidence API on behalf of the dashboard.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetToken installs the bearer session used on protected calls.
func (c *Client) SetToken(token string) { c.token = token }

// Login authenticates the administrator and installs the issued session
// token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// ListEvidence fetches all records, newest first.
func (c *Client) ListEvidence(ctx context.Context) ([]models.Evidence, error) {
	var records []models.Evidence
	if err := c.do(ctx, http.MethodGet, "/api/v1/evidence", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetEvidence fetches one record by id.
func (c *Client) GetEvidence(ctx context.Context, id string) (*models.Evidence, error) {
	var record models.Evidence
	if err := c.do(ctx, http.MethodGet, "/api/v1/evidence/"+id, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateEvidence applies a partial update.
func (c *Client) UpdateEvidence(ctx context.Context, id string, upd store.EvidenceUpdate) (*models.Evidence, error) {
	var record models.Evidence
	if err := c.do(ctx, http.MethodPut, "/api/v1/evidence/"+id, upd, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteEvidence removes a record permanently.
func (c *Client) DeleteEvidence(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/evidence/"+id, nil, nil)
}

// MarkViewed clears the record's isNew flag server-side.
func (c *Client) MarkViewed(ctx context.Context, id string) (*models.Evidence, error) {
	var record models.Evidence
	if err := c.do(ctx, http.MethodPatch, "/api/v1/evidence/"+id+"/mark-viewed", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
