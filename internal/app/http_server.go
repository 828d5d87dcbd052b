package app

import (
	"context"
	"net/http"
)

// httpServer abstracts the metrics server for tests.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
}

type netHTTPServer struct {
	srv *http.Server
}

func (s netHTTPServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
