// Package api is the typed HTTP client for the storefront backend.
//
// Every call goes through one configured client: JSON bodies in and out, the
// bearer token attached by transport middleware when the session holds one,
// and all failures normalized into *Error. Resource methods are grouped by
// backend resource (auth, products, search, cart, chat, payment) and are pure
// pass-through adapters: no retries, no caching, no client-side validation of
// what the backend returns.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/xenking/storefront-cli/internal/session"
	"github.com/xenking/storefront-cli/pkg/httpclient"
)

// Config holds the client settings.
type Config struct {
	// BaseURL is the backend API root, e.g. http://127.0.0.1:5000/api.
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// Client is the storefront API client. Construct it once at application start
// with the session object; request plumbing never reads ambient storage.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

// NewClient builds a Client around the given session. The transport chain
// stamps request IDs, injects the bearer token, logs each call, and carries
// OpenTelemetry instrumentation.
func NewClient(cfg Config, sess *session.Session) *Client {
	transport := httpclient.Wrap(
		otelhttp.NewTransport(http.DefaultTransport),
		httpclient.RequestID(),
		httpclient.Bearer(sess),
		httpclient.LogRequests(),
	)
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		session: sess,
	}
}

// Error is the normalized failure for any API call. Transport failures,
// non-2xx statuses, and 2xx envelopes carrying success:false all collapse into
// a single human-readable message, per the backend contract.
type Error struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// genericFailure is the fallback message when the backend supplies none.
const genericFailure = "request failed"

// envelope is the probed view of the backend's response wrapper. Object
// replies are expected to carry a success boolean, with an error string
// alongside when it is false. Array replies have no envelope.
type envelope struct {
	hasSuccess bool
	success    bool
	errMsg     string
}

// probeEnvelope extracts success/error from a JSON object without binding the
// rest of the payload. Non-object payloads and malformed JSON yield an empty
// envelope; full decoding happens later and reports its own errors.
func probeEnvelope(data []byte) envelope {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return envelope{}
	}

	var e envelope
	_ = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "success":
			v, err := d.Bool()
			if err != nil {
				return err
			}
			e.hasSuccess = true
			e.success = v
			return nil
		case "error":
			v, err := d.Str()
			if err != nil {
				return err
			}
			e.errMsg = v
			return nil
		default:
			return d.Skip()
		}
	})
	return e
}

// do performs one request and decodes the JSON reply into out (when non-nil).
// contentType applies only when body is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: genericFailure, cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: genericFailure, cause: err}
	}

	env := probeEnvelope(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.errMsg
		if msg == "" {
			msg = genericFailure
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	// Application-level failure: a 2xx reply whose envelope says success:false.
	if env.hasSuccess && !env.success {
		msg := env.errMsg
		if msg == "" {
			msg = genericFailure
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// get issues a GET with optional query parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// post issues a POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

// del issues a DELETE with a JSON body; the cart endpoint identifies the line
// to remove via the body rather than the path.
func (c *Client) del(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodDelete, path, body, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		r = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, "application/json", r, out)
}

// postMultipart uploads a single file as multipart form data under field.
func (c *Client) postMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return errors.Wrap(err, "create form file")
	}
	if _, err := io.Copy(fw, file); err != nil {
		return errors.Wrap(err, "copy file")
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "finish form")
	}

	return c.do(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf, out)
}

// Ping checks backend connectivity via the test endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/test", nil, nil)
}
