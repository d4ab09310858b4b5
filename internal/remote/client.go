package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bigtrip/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client performs the point store's HTTP requests. A bounded timeout lives
// here, not in the engine: the synchronizer only ever sees a rejection.
type Client struct {
	httpClient    *http.Client
	endpoint      string
	authorization string
}

// NewClient builds a client for the given endpoint. authorization is sent
// verbatim in the Authorization header ("Basic ..." or "Bearer ...").
func NewClient(endpoint, authorization string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		endpoint:      strings.TrimRight(endpoint, "/"),
		authorization: authorization,
	}
}

// ListPoints fetches every point record.
func (c *Client) ListPoints(ctx context.Context) ([]PointRecord, error) {
	var records []PointRecord
	if err := c.do(ctx, http.MethodGet, "points", "", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreatePoint stores a new point and returns the record with the server id.
func (c *Client) CreatePoint(ctx context.Context, record PointRecord) (PointRecord, error) {
	var out PointRecord
	if err := c.do(ctx, http.MethodPost, "points", "", record, &out); err != nil {
		return PointRecord{}, err
	}
	return out, nil
}

// UpdatePoint replaces the stored record and returns the confirmed one.
func (c *Client) UpdatePoint(ctx context.Context, record PointRecord) (PointRecord, error) {
	var out PointRecord
	if err := c.do(ctx, http.MethodPut, "points", record.ID, record, &out); err != nil {
		return PointRecord{}, err
	}
	return out, nil
}

// DeletePoint removes the stored record.
func (c *Client) DeletePoint(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "points", id, nil, nil)
}

// ListDestinations fetches the destination catalog.
func (c *Client) ListDestinations(ctx context.Context) ([]DestinationRecord, error) {
	var records []DestinationRecord
	if err := c.do(ctx, http.MethodGet, "destinations", "", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListOffers fetches the offer catalog grouped by point type.
func (c *Client) ListOffers(ctx context.Context) ([]OfferGroupRecord, error) {
	var records []OfferGroupRecord
	if err := c.do(ctx, http.MethodGet, "offers", "", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) do(ctx context.Context, method, resource, id string, body, out any) error {
	op := method + " " + resource
	target := c.endpoint + "/" + resource
	if id != "" {
		target += "/" + url.PathEscape(id)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resource, id, resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.MalformedRecordError{Field: resource, Err: err}
	}
	return nil
}

func checkStatus(op, resource, id string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return domain.NotFoundError{Resource: strings.TrimSuffix(resource, "s"), ID: id}
	default:
		return domain.ServerError{Op: op, Status: status}
	}
}
