// Package airtable implements the remote data client for the Airtable
// REST API: bearer-token authenticated JSON calls against one base and a
// set of per-resource tables.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"taskboard/internal/errors"
)

const (
	// DefaultBaseURL is the public Airtable API endpoint.
	DefaultBaseURL = "https://api.airtable.com/v0"

	defaultTimeout = 30 * time.Second
)

// record is the wire shape of one Airtable record.
type record struct {
	ID          string                 `json:"id"`
	CreatedTime string                 `json:"createdTime,omitempty"`
	Fields      map[string]interface{} `json:"fields"`
}

// listResponse is the wire shape of a table page. A non-empty Offset means
// more pages follow.
type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// recordPayload is the wire shape of a create or update body.
type recordPayload struct {
	Fields map[string]interface{} `json:"fields"`
}

// RESTClient issues raw HTTP calls against one Airtable base.
type RESTClient struct {
	token      string
	baseID     string
	baseURL    string
	httpClient *http.Client
}

// NewRESTClient creates a RESTClient for the given credential and base id.
func NewRESTClient(token, baseID string) *RESTClient {
	return &RESTClient{
		token:      token,
		baseID:     baseID,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *RESTClient) WithBaseURL(baseURL string) *RESTClient {
	c.baseURL = baseURL
	return c
}

func (c *RESTClient) tableURL(tableID string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(tableID))
}

func (c *RESTClient) do(ctx context.Context, operation, method, rawURL string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.NewRemoteError(operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errors.NewRemoteError(operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewRemoteError(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.NewRemoteStatusError(operation, resp.StatusCode, string(payload))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.NewRemoteError(operation, err)
		}
	}
	return nil
}

// listAll walks every page of a table, following the offset cursor until
// the server stops returning one.
func (c *RESTClient) listAll(ctx context.Context, operation, tableID string) ([]record, error) {
	base := c.tableURL(tableID)
	var all []record
	offset := ""

	for {
		pageURL := base
		if offset != "" {
			pageURL = base + "?offset=" + url.QueryEscape(offset)
		}

		var page listResponse
		if err := c.do(ctx, operation, http.MethodGet, pageURL, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Records...)

		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

// getRecord fetches a single record by id. A 404 maps to a NotFound error
// for the given resource name.
func (c *RESTClient) getRecord(ctx context.Context, operation, resource, tableID, recordID string) (*record, error) {
	var rec record
	err := c.do(ctx, operation, http.MethodGet, c.tableURL(tableID)+"/"+url.PathEscape(recordID), nil, &rec)
	if err != nil {
		if errors.StatusCode(err) == http.StatusNotFound {
			return nil, errors.NewNotFoundError(resource, recordID)
		}
		return nil, err
	}
	return &rec, nil
}

// createRecord creates a record and returns the server's normalized copy.
func (c *RESTClient) createRecord(ctx context.Context, operation, tableID string, fields map[string]interface{}) (*record, error) {
	var rec record
	err := c.do(ctx, operation, http.MethodPost, c.tableURL(tableID), recordPayload{Fields: fields}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// updateRecord patches only the supplied fields and returns the server's
// normalized copy.
func (c *RESTClient) updateRecord(ctx context.Context, operation, resource, tableID, recordID string, fields map[string]interface{}) (*record, error) {
	var rec record
	err := c.do(ctx, operation, http.MethodPatch, c.tableURL(tableID)+"/"+url.PathEscape(recordID), recordPayload{Fields: fields}, &rec)
	if err != nil {
		if errors.StatusCode(err) == http.StatusNotFound {
			return nil, errors.NewNotFoundError(resource, recordID)
		}
		return nil, err
	}
	return &rec, nil
}
