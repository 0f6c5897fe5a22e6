package workers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// Listener opens the socket a server worker serves on. It is called on every (re)start.
type Listener func() (net.Listener, error)

// TCPListener listens on a TCP address.
func TCPListener(address string) Listener {
	return func() (net.Listener, error) {
		return net.Listen("tcp", address)
	}
}

// HTTPWorker serves the REST and SSE API until its context is cancelled.
type HTTPWorker struct {
	log    *slog.Logger
	server *http.Server
	listen Listener
}

func NewHTTPWorker(log *slog.Logger, handler http.Handler, listen Listener) HTTPWorker {
	return HTTPWorker{
		log:    log,
		server: &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		listen: listen,
	}
}

func (w HTTPWorker) Run(ctx context.Context) error {
	listener, err := w.listen()
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting HTTP server", "address", listener.Addr().String())
		errChan <- w.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		w.log.Info("Shutting down HTTP server")
		// Streaming responses never finish on their own, force them once the grace period is over.
		if err := w.server.Shutdown(shutdownCtx); err != nil {
			_ = w.server.Close()
		}
		return nil
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	}
}

// GRPCWorker serves the gRPC API until its context is cancelled.
type GRPCWorker struct {
	log    *slog.Logger
	server *grpc.Server
	listen Listener
}

func NewGRPCWorker(log *slog.Logger, server *grpc.Server, listen Listener) GRPCWorker {
	return GRPCWorker{log: log, server: server, listen: listen}
}

func (w GRPCWorker) Run(ctx context.Context) error {
	listener, err := w.listen()
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting gRPC server", "address", listener.Addr().String(), "at", time.Now().UTC())
		errChan <- w.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		w.log.Info("Shutting down gRPC server")
		stopped := make(chan struct{})
		go func() {
			w.server.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			w.server.Stop()
		}
		return nil
	case err := <-errChan:
		if err == nil || err == grpc.ErrServerStopped {
			return nil
		}
		return fmt.Errorf("gRPC server error: %w", err)
	}
}
