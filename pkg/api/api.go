// healthprobe
// (C) 2023, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/config"
	"github.com/go-chi/chi/v5"
)

// API serves the monitoring endpoints
type API interface {
	// Run listens on the configured address and serves until the context is done
	Run(ctx context.Context) error
	// Shutdown gracefully stops serving
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds the given routes and the root ok route
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

// Route is a single endpoint of the api
type Route struct {
	Path    string
	Method  string
	Handler http.Handler
}

// ErrNoRoutes is returned when the api is started without any routes
var ErrNoRoutes = errors.New("no routes registered")

var supportedMethods = []string{http.MethodGet, http.MethodHead}

type server struct {
	http   *http.Server
	router chi.Router
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// New creates a new api listening on the configured address
func New(cfg config.ApiConfig) API {
	r := chi.NewRouter()
	return &server{
		http:   &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
	}
}

func (s *server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if len(s.router.Routes()) == 0 {
		return fmt.Errorf("failed serving api: %w", ErrNoRoutes)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed serving api: %w", err)
	}

	// listening before serving surfaces a busy address as an error of Run
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		log.ErrorContext(ctx, "Failed to listen", "addr", s.http.Addr, "error", err)
		return fmt.Errorf("failed serving api: %w", err)
	}
	log.InfoContext(ctx, "Serving api", "addr", ln.Addr().String())

	cErr := make(chan error, 1)
	go func() {
		cErr <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed serving api: %w", ctx.Err())
	case err := <-cErr:
		if errors.Is(err, http.ErrServerClosed) {
			log.InfoContext(ctx, "Api server closed")
			return nil
		}
		log.ErrorContext(ctx, "Failed serving api", "error", err)
		return fmt.Errorf("failed serving api: %w", err)
	}
}

// Shutdown returns the context's error if it is done,
// joined with any error from stopping the server
func (s *server) Shutdown(ctx context.Context) error {
	errC := ctx.Err()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Failed to shutdown api server", "error", err)
		return fmt.Errorf("failed shutting down api: %w", errors.Join(errC, err))
	}
	return errC
}

func (s *server) RegisterRoutes(ctx context.Context, routes ...Route) error {
	s.router.Use(logger.Middleware(ctx))
	for _, route := range routes {
		if !slices.Contains(supportedMethods, route.Method) {
			return fmt.Errorf("unsupported method for %s: %s", route.Path, route.Method)
		}
		s.router.Method(route.Method, route.Path, route.Handler)
	}

	s.router.Handle("/", OkHandler(ctx))
	return nil
}

// OkHandler returns a handler that will serve status ok
func OkHandler(ctx context.Context) http.Handler {
	log := logger.FromContext(ctx)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			log.Error("Could not write response", "error", err.Error())
		}
	})
}
