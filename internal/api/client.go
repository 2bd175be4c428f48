// Package api talks to the shop REST backend. It builds requests
// (bearer auth, JSON or multipart bodies), performs the call and hands
// the raw status + body back to the caller; interpreting status codes
// is the dispatcher's job (see outcome.go).
package api

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
)

const HeaderRequestID = "X-Request-ID"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Request describes one backend call. Token is attached as a bearer
// credential when non-empty. JSON and Form are mutually exclusive;
// when both are nil the request has no body.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Token     string
	JSON      any
	Form      *Form
	RequestID string
}

type Response struct {
	Status int
	Body   []byte
}

// Do performs the call. A returned error means the request never
// produced a status (transport failure, encode failure); callers must
// treat it as distinct from any decoded outcome.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.JSON != nil:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return Response{}, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	case req.Form != nil:
		r, err := req.Form.Reader()
		if err != nil {
			return Response{}, fmt.Errorf("finalize multipart form: %w", err)
		}
		body = r
		contentType = req.Form.ContentType()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	rid := req.RequestID
	if rid == "" {
		rid = RequestIDFrom(ctx)
	}
	if rid != "" {
		httpReq.Header.Set(HeaderRequestID, rid)
	}

	res, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response body: %w", err)
	}

	return Response{Status: res.StatusCode, Body: raw}, nil
}
