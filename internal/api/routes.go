package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes attaches the practice procedures to rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	registerValidators()

	rg.POST("/createPractice", h.CreatePractice)
	rg.GET("/listPractices", h.ListPractices)
	rg.GET("/getPractice", h.GetPractice)
	rg.POST("/updatePractice", h.UpdatePractice)
	rg.POST("/deletePractice", h.DeletePractice)
	rg.GET("/getStatistics", h.GetStatistics)
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger     *slog.Logger
	CORSOrigin string
}

// NewRouter builds the gin engine with middleware, the /rpc procedures, the
// health check and the Prometheus endpoint.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), CORS(opts.CORSOrigin), RequestLogger(logger), Metrics())

	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.RegisterRoutes(router.Group("/rpc"))
	return router
}

// ServerConfig contains tunables for the HTTP server.
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates *http.Server with provided handler.
func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
