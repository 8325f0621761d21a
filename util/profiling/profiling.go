// Package profiling serves the runtime profiles of the process over HTTP
package profiling

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// Serve serves the pprof handlers on the given port until ctx is done
func Serve(ctx context.Context, port string, log *logger.Logger) error {
	listenAddr := net.JoinHostPort("", port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", listenAddr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/", http.RedirectHandler("/debug/pprof/", http.StatusSeeOther))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("Profile server listening on %s", listener.Addr())
		errChan <- server.Serve(listener)
	}()

	select {
	case err := <-errChan:
		return errors.WithStack(err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.WithStack(server.Shutdown(shutdownCtx))
	}
}
