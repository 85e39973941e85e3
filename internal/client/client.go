// Package client talks to the spreadsheet-backed ledger web app. Each action
// is a Request variant; every reply is an envelope with ok/error plus a
// payload that is normalized into typed model records before it leaves this
// package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBody = 8 << 20

// Options configures a Client.
type Options struct {
	URL        string
	Timeout    time.Duration // per attempt; 0 means 10s
	Retries    int           // extra attempts after a temporary failure
	Backoff    time.Duration // pause between attempts, multiplied by attempt number
	Location   *time.Location
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// Client is a ledger service client. It is safe for concurrent use.
type Client struct {
	url     string
	timeout time.Duration
	retries int
	backoff time.Duration
	loc     *time.Location
	log     *slog.Logger
	http    *http.Client
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		url:     opts.URL,
		timeout: opts.Timeout,
		retries: opts.Retries,
		backoff: opts.Backoff,
		loc:     opts.Location,
		log:     opts.Logger,
		http:    opts.HTTPClient,
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if c.retries < 0 {
		c.retries = 0
	}
	if c.loc == nil {
		c.loc = time.UTC
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// Envelope is the common part of every reply.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Do sends req and decodes a successful reply into out (which may be nil).
// Transport errors and 5xx/429 responses are retried; a reply with ok=false
// is returned as *ServiceError and never retried.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	action := req.Action()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*c.backoff); err != nil {
				return fmt.Errorf("%s: %w", action, err)
			}
		}

		body, temporary, err := c.roundTrip(ctx, req)
		if err != nil {
			lastErr = err
			if !temporary || ctx.Err() != nil {
				return err
			}
			if attempt < c.retries {
				c.log.Debug("retrying request", "action", action, "attempt", attempt+1, "err", err)
			}
			continue
		}
		return decode(action, body, out)
	}
	return lastErr
}

// roundTrip performs one attempt. temporary reports whether a failed attempt
// is worth repeating.
func (c *Client) roundTrip(ctx context.Context, req Request) (body []byte, temporary bool, err error) {
	action := req.Action()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("%s: building request: %w", action, err)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", action, redact(err))
	}
	defer resp.Body.Close()

	c.log.Debug("service reply", "action", action, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		se := &StatusError{Action: action, Code: resp.StatusCode}
		return nil, se.Temporary(), se
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, true, fmt.Errorf("%s: reading reply: %w", action, err)
	}
	return body, false, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	fields, err := wireFields(req)
	if err != nil {
		return nil, err
	}

	if req.Method() == http.MethodGet {
		u, err := url.Parse(c.url)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		for k, v := range fields {
			q.Set(k, stringify(v))
		}
		u.RawQuery = q.Encode()
		c.log.Debug("service request", "method", http.MethodGet, "action", req.Action())
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	c.log.Debug("service request", "method", http.MethodPost, "action", req.Action(), "bytes", len(payload))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// secretFields never leave this package in errors or logs.
var secretFields = []string{"pin", "admin_pin"}

// redact strips secret query fields from the URL carried by a transport error.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		ue.URL = "[redacted]"
		return err
	}
	q := u.Query()
	for _, k := range secretFields {
		q.Del(k)
	}
	u.RawQuery = q.Encode()
	ue.URL = u.String()
	return err
}

// wireFields flattens a request into its JSON fields plus "action".
func wireFields(req Request) (map[string]any, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	fields["action"] = req.Action()
	return fields, nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func decode(action string, body []byte, out any) error {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%s: decoding reply: %w (body starts %q)", action, err, preview(body))
	}
	if !env.OK {
		return &ServiceError{Action: action, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: decoding payload: %w", action, err)
	}
	return nil
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
