package internal

import (
	"context"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NYTimes/gziphandler"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/logger"

	"github.com/jointwt/ghuser/client"
)

// Server ...
type Server struct {
	bind   string
	config *Config
	router *Router
	server *http.Server

	// Worker pool, nil when running inline
	dispatcher *Dispatcher

	aggregator *Aggregator
}

// AddShutdownHook ...
func (s *Server) AddShutdownHook(f func()) {
	s.server.RegisterOnShutdown(f)
}

// Handler returns the server's root http.Handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Shutdown ...
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error shutting down server")
		return err
	}

	return nil
}

// Run ...
func (s *Server) Run() (err error) {
	idleConnsClosed := make(chan struct{})
	go func() {
		sigch := make(chan os.Signal, 1)
		signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigch
		log.Infof("Received signal %s", sig)

		log.Info("Shutting down...")

		// We received an interrupt signal, shut down.
		if err = s.Shutdown(context.Background()); err != nil {
			// Error from closing listeners, or context timeout:
			log.WithError(err).Fatal("Error shutting down HTTP server")
		}
		close(idleConnsClosed)
	}()

	if err = s.ListenAndServe(); err != http.ErrServerClosed {
		// Error starting or closing listener:
		log.WithError(err).Fatal("HTTP server ListenAndServe")
	}

	<-idleConnsClosed

	return
}

// ListenAndServe ...
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

func (s *Server) initRoutes() {
	s.router.NotFound = http.HandlerFunc(s.NotFoundHandler)

	s.router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	s.router.GET("/api/v1/users/:login", s.UserHandler())
	s.router.GET("/api/v1/tasks/:id", s.TaskHandler())
}

// NewServer ...
func NewServer(bind string, options ...Option) (*Server, error) {
	config, err := LoadConfig(options...)
	if err != nil {
		log.WithError(err).Error("error loading config")
		return nil, err
	}

	clientOptions := []client.Option{
		client.WithURI(config.APIURI),
		client.WithTimeout(config.FetchTimeout),
		client.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: config.Workers,
			},
		}),
	}
	if config.APIToken != "" {
		clientOptions = append(clientOptions, client.WithToken(config.APIToken))
	}

	cli, err := client.NewClient(clientOptions...)
	if err != nil {
		log.WithError(err).Error("error creating api client")
		return nil, err
	}

	return newServer(bind, config, cli), nil
}

func newServer(bind string, config *Config, fetcher Fetcher) *Server {
	var (
		pool       Pool
		dispatcher *Dispatcher
	)

	if config.Workers > 0 {
		dispatcher = NewDispatcher(config.Workers, config.MaxQueue)
		dispatcher.SetTaskTTL(config.TaskTTL)
		dispatcher.Start()
		pool = dispatcher
	} else {
		pool = InlineDispatcher{}
	}

	router := NewRouter()

	server := &Server{
		bind:   bind,
		config: config,
		router: router,

		server: &http.Server{
			Addr: bind,
			Handler: logger.New(logger.Options{
				Prefix:               config.Name,
				RemoteAddressHeaders: []string{"X-Forwarded-For"},
			}).Handler(
				gziphandler.GzipHandler(router),
			),
		},

		dispatcher: dispatcher,
		aggregator: NewAggregator(fetcher, pool),
	}

	// Log interesting configuration options
	log.Infof("Instance Name: %s", config.Name)
	if path := config.ConfigFile(); path != "" {
		log.Infof("Config File: %s", path)
	}
	log.Infof("API URI: %s", config.APIURI)
	log.Infof("Workers: %d", config.Workers)
	log.Infof("Max Queue: %d", config.MaxQueue)
	log.Infof("Fetch Timeout: %s", config.FetchTimeout)

	if config.Workers <= 0 {
		log.Warn("No workers configured, lookups will run sequentially")
	}

	if dispatcher != nil {
		server.AddShutdownHook(func() {
			log.Info("stopping worker pool")
			dispatcher.Stop()
		})
	}

	server.initRoutes()

	return server
}
