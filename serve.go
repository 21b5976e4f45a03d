package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/golang/groupcache"

	"github.com/sioncodes/blog/config"
	"github.com/sioncodes/blog/paths"
	"github.com/sioncodes/blog/web"
)

// cacheSize is the preview server's cache size in bytes.
const cacheSize = 10 * 1024 * 1024

type serverOptions struct {
	addr              string
	cacheDuration     time.Duration
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
}

// newServer creates the preview server for the exported site. Files are read
// through a groupcache-backed cache whose entries expire after
// opts.cacheDuration, so rebuilds show up without a restart.
func newServer(cfg *config.Config, production bool, opts serverOptions) *http.Server {
	// Setup groupcache with no peers
	groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })

	out := cachefs.New(os.DirFS(cfg.Output), &cachefs.Config{
		GroupName:   "blog",
		SizeInBytes: cacheSize,
		Duration:    opts.cacheDuration,
	})
	base := paths.CleanBase(cfg.BasePath(production))

	handler := web.HeaderHandler(
		web.ExpiresHandler(
			gziphandler.GzipHandler(
				web.ErrorHandler(
					web.BasePathHandler(http.FileServer(http.FS(out)), base),
					out,
				),
			),
			time.Duration(cfg.Expires),
			time.Duration(cfg.StaticExpires),
		),
		cfg.Headers)

	log.Printf("Serving %q at http://localhost%s%s/", cfg.Output, opts.addr, base)
	return &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadTimeout:       opts.readTimeout,
		WriteTimeout:      opts.writeTimeout,
		ReadHeaderTimeout: opts.readHeaderTimeout,
	}
}

// serve runs srv until an interrupt or SIGTERM, then shuts it down.
func serve(srv *http.Server) error {
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
	}()

	log.Print("Listening for requests")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
