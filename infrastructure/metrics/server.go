package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes Registry on /metrics at listenAddress until ctx is done
func Serve(ctx context.Context, listenAddress string) error {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", listenAddress)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("Serving metrics on %s", listener.Addr())
		errChan <- server.Serve(listener)
	}()

	select {
	case err := <-errChan:
		return errors.WithStack(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			return errors.WithStack(err)
		}
		return nil
	}
}
