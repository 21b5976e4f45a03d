package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/facebookgo/flagenv"

	"github.com/sioncodes/blog/config"
	"github.com/sioncodes/blog/export"
	"github.com/sioncodes/blog/paths"
)

// site is everything needed to rebuild the blog from its sources.
type site struct {
	root       string // Folder fsys reads from
	fsys       fs.FS
	configFile string
	production bool
	markdown   string
	out        string
}

// load reads the configuration and applies command line overrides.
func (s *site) load() (*config.Config, error) {
	cfg, err := config.Load(s.fsys, s.configFile)
	if err != nil {
		return nil, err
	}
	if s.markdown != "" {
		cfg.Markdown = s.markdown
	}
	if s.out != "" {
		cfg.Output = s.out
	}
	return cfg, nil
}

// build exports the whole site. The base path is chosen once per build.
func (s *site) build() (*config.Config, *export.Result, error) {
	cfg, err := s.load()
	if err != nil {
		return nil, nil, err
	}
	if err := export.CheckOutput(s.root, cfg.Output, cfg); err != nil {
		return nil, nil, err
	}
	r := paths.New(cfg.BasePath(s.production))
	e, err := export.New(cfg, s.fsys, r)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Loaded templates: %s", e.Templates().Defined())
	res, err := e.Export(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func main() {
	// Setup flags
	var (
		fRoot              = flag.String("root", ".", "Root of the blog sources.")
		fConfig            = flag.String("config", config.DefaultFile, "Configuration file, relative to the root.")
		fOut               = flag.String("out", "", "Output folder; overrides the output setting.")
		fProduction        = flag.Bool("production", false, "Build with the production base path.")
		fMarkdown          = flag.String("markdown", "", "Markdown engine, blackfriday or goldmark; overrides the markdown setting.")
		fServe             = flag.Bool("serve", false, "Serve the exported site after building it.")
		fWatch             = flag.Bool("watch", false, "Rebuild when the sources change; requires -serve.")
		fAddr              = flag.String("addr", ":8080", "Address the preview server listens on.")
		fCacheDuration     = flag.Duration("cacheduration", 2*time.Second, "Preview server cache expiration.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
	)
	flag.Parse()
	flagenv.Prefix = "BLOG_"
	flagenv.Parse()

	// Switch to site folder
	err := os.Chdir(*fRoot)
	if err != nil {
		log.Printf("Cannot switch to root %q: %s", *fRoot, err)
		os.Exit(1)
	}
	log.Printf("Changed to %q directory", *fRoot)

	s := &site{
		root:       ".",
		fsys:       os.DirFS("."),
		configFile: *fConfig,
		production: *fProduction,
		markdown:   *fMarkdown,
		out:        *fOut,
	}

	cfg, res, err := s.build()
	if err != nil {
		log.Printf("Cannot build site: %s", err)
		os.Exit(2)
	}
	log.Printf("Built %d pages for base path %q", len(res.Pages), paths.CleanBase(cfg.BasePath(s.production)))

	if !*fServe {
		if *fWatch {
			log.Print("-watch has no effect without -serve")
		}
		return
	}

	if *fWatch {
		w, err := newWatcher(s, cfg)
		if err != nil {
			log.Printf("Cannot watch sources: %s", err)
			os.Exit(3)
		}
		defer w.Close()
		go w.run()
	}

	srv := newServer(cfg, s.production, serverOptions{
		addr:              *fAddr,
		cacheDuration:     *fCacheDuration,
		readTimeout:       *fReadTimeout,
		readHeaderTimeout: *fReadHeaderTimeout,
		writeTimeout:      *fWriteTimeout,
	})
	if err := serve(srv); err != nil {
		log.Printf("HTTP server: %v", err)
		os.Exit(4)
	}
	log.Print("Goodbye.")
}
