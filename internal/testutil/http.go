package testutil

import (
	"io"
	"net/http"
	"strings"
)

// RoundTripperFunc adapts a function into an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// JSONResponse builds a response with a JSON content type.
func JSONResponse(status int, body string) *http.Response {
	return newResponse(status, "application/json", body)
}

// HTMLResponse builds a response with an HTML content type.
func HTMLResponse(status int, body string) *http.Response {
	return newResponse(status, "text/html; charset=utf-8", body)
}

func newResponse(status int, contentType, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{contentType}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// ClientFunc returns an http.Client routed through fn.
func ClientFunc(fn func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: RoundTripperFunc(fn)}
}
