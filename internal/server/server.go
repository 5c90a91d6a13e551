// Package server serves device data over HTTP in the shape the remote
// provider consumes, so the dashboard can run against a local demo API.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/table"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = 5 * time.Second

// Options configure a Server.
type Options struct {
	// Listen is the TCP address, e.g. ":3000". Port 0 picks a free port.
	Listen string
	// Provider defaults to the built-in catalog.
	Provider provider.Provider
	Logger   logger.Logger
}

// Server is the demo device API.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	provider   provider.Provider
	fields     table.Fields
	sortKeys   []string
	log        logger.Logger
	listenAddr string
	wg         sync.WaitGroup
}

// New builds the gin engine and mounts all routes.
func New(opts Options) (*Server, error) {
	if opts.Listen == "" {
		return nil, errors.New(errors.ErrServer,
			"No listen address",
			"Set server.listen in your config or pass --listen.")
	}
	if opts.Provider == nil {
		opts.Provider = provider.NewCatalog(nil)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	fields := table.DefaultFields()
	keys := lo.Keys(fields)
	slices.Sort(keys)

	s := &Server{
		router:     router,
		provider:   opts.Provider,
		fields:     fields,
		sortKeys:   keys,
		log:        opts.Logger,
		listenAddr: opts.Listen,
	}
	router.Use(s.logRequests())

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	for _, category := range device.Categories {
		s.router.GET(provider.Endpoints[category], s.handleDevices(category))
	}
	s.router.GET(provider.HealthPath, s.handleHealth)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves connections in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrServer,
			"Can't listen on "+s.listenAddr,
			"Pick a free address with --listen or server.listen.")
	}
	s.listenAddr = ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.log.Info("serving device API on %s", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server failed: %v", err)
		}
	}()
	return nil
}

// Address returns the actual listen address.
func (s *Server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Middlewares ---

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("%s %s -> %d (%v)", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start))
	}
}

// --- Handlers ---

func (s *Server) handleDevices(category device.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		sort, err := s.parseSort(c.Query("sortBy"), c.Query("sortOrder"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		records, err := s.provider.FetchDevices(c.Request.Context(), category, sort)
		if err != nil {
			s.log.Warn("fetching %s failed: %v", category, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": errors.Reason(err)})
			return
		}

		s.writeJSON(c, http.StatusOK, gin.H{"devices": records})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	health := provider.Health{Status: "healthy", Mode: string(provider.SourceCatalog)}
	if hc, ok := s.provider.(provider.HealthChecker); ok {
		h, err := hc.Health(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": errors.Reason(err)})
			return
		}
		health = h
	}
	s.writeJSON(c, http.StatusOK, health)
}

func (s *Server) parseSort(by, order string) (table.SortConfig, error) {
	if by == "" {
		return table.SortConfig{}, nil
	}
	if _, ok := s.fields[by]; !ok {
		return table.SortConfig{}, stderrors.New("unknown sortBy '" + by + "', use one of: " + strings.Join(s.sortKeys, ", "))
	}

	dir := table.Desc
	if order != "" {
		d, err := table.ParseDirection(order)
		if err != nil {
			return table.SortConfig{}, err
		}
		dir = d
	}
	return table.SortConfig{Key: by, Direction: dir}, nil
}

// writeJSON encodes with jsoniter rather than gin's default encoder.
func (s *Server) writeJSON(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encoding response failed"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}
