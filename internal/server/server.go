// Package server exposes the loading engine over HTTP.
//
// Routes:
//
//	GET  /api/health
//	GET  /api/catalog
//	GET  /api/vehicles
//	POST /api/calculate  {items, settings?, vehicle?} -> CalculationResult
//	POST /api/compare    {items, settings?, vehicle?} -> []ComparisonResult
//	POST /api/chart      {items, settings?, vehicle?} -> HTML chart
//
// Malformed bodies and invalid settings answer 400. Unknown beams and
// unsupported lengths answer 422. Domain conditions such as the height limit
// are part of a 200 result.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/piwi3910/BeamLoad/internal/engine"
	"github.com/piwi3910/BeamLoad/internal/export"
	"github.com/piwi3910/BeamLoad/internal/model"
)

// CalculateRequest is the body of the calculate, compare and chart routes.
// Settings default to the server defaults. A vehicle type, when given,
// replaces the vehicle and max width of the settings.
type CalculateRequest struct {
	Items    []model.LoadItem    `json:"items"`
	Settings *model.LoadSettings `json:"settings,omitempty"`
	Vehicle  model.VehicleType   `json:"vehicle,omitempty"`
}

// Server holds the read-only state shared by all requests.
type Server struct {
	catalog  model.BeamCatalog
	vehicles []model.Vehicle // built-in followed by custom
	defaults model.LoadSettings
	logger   *log.Logger
}

func New(catalog model.BeamCatalog, customVehicles []model.Vehicle, defaults model.LoadSettings, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		catalog:  catalog,
		vehicles: model.AllVehicles(customVehicles),
		defaults: defaults,
		logger:   logger,
	}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/catalog", s.handleCatalog)
	api.GET("/vehicles", s.handleVehicles)
	api.POST("/calculate", s.handleCalculate)
	api.POST("/compare", s.handleCompare)
	api.POST("/chart", s.handleChart)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Beams)
}

func (s *Server) handleVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, s.vehicles)
}

func (s *Server) handleCalculate(c *gin.Context) {
	req, settings, ok := s.bind(c)
	if !ok {
		return
	}

	result, err := engine.New(settings, s.catalog).Calculate(req.Items)
	if err != nil {
		s.engineError(c, err)
		return
	}
	s.logger.Debug("calculated", "items", len(req.Items), "layers", len(result.Layers), "safe", result.IsSafe())
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCompare(c *gin.Context) {
	req, settings, ok := s.bind(c)
	if !ok {
		return
	}

	scenarios := engine.BuildDefaultScenarios(settings, s.vehicles)
	results, err := engine.CompareScenarios(scenarios, req.Items, s.catalog)
	if err != nil {
		s.engineError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleChart(c *gin.Context) {
	req, settings, ok := s.bind(c)
	if !ok {
		return
	}

	result, err := engine.New(settings, s.catalog).Calculate(req.Items)
	if err != nil {
		s.engineError(c, err)
		return
	}
	if len(result.Layers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no items to chart"})
		return
	}

	var buf bytes.Buffer
	if err := export.RenderChart(&buf, result, settings); err != nil {
		s.logger.Error("chart render failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// bind decodes the request body and resolves its settings. On failure it has
// already written a 400 response.
func (s *Server) bind(c *gin.Context) (CalculateRequest, model.LoadSettings, bool) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return req, model.LoadSettings{}, false
	}

	settings, err := s.resolveSettings(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, model.LoadSettings{}, false
	}
	return req, settings, true
}

func (s *Server) resolveSettings(req CalculateRequest) (model.LoadSettings, error) {
	settings := s.defaults
	if req.Settings != nil {
		settings = *req.Settings
	}
	if req.Vehicle != "" {
		v, ok := model.FindVehicle(req.Vehicle, s.vehicles)
		if !ok {
			return settings, fmt.Errorf("unknown vehicle %q", req.Vehicle)
		}
		settings.UseVehicle(v)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func (s *Server) engineError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrUnknownBeam) || errors.Is(err, engine.ErrUnsupportedLength) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("calculation failed", "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// requestLogger logs one line per request at debug level, or warn level for
// server errors.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request", args...)
			return
		}
		logger.Debug("request", args...)
	}
}
