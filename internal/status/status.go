package status

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"news-trader/internal/engine"
	"news-trader/internal/logger"
	"news-trader/internal/store"
)

// Server exposes a small read-only HTTP API over the trader's state: recent
// predictions, recent orders and the orders currently under supervision.
type Server struct {
	cfg     *store.Config
	history *store.History
	sup     *engine.Supervisor
	srv     *http.Server
}

func NewServer(cfg *store.Config, history *store.History, sup *engine.Supervisor) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, history: history, sup: sup}

	router.GET("/healthz", s.health)
	api := router.Group("/api")
	{
		api.GET("/predictions", s.predictions)
		api.GET("/orders", s.orders)
		api.GET("/supervised", s.supervised)
	}

	s.srv = &http.Server{Addr: cfg.Status.Addr, Handler: router}
	return s
}

// Start serves in a background goroutine until Shutdown is called.
func (s *Server) Start(ctx context.Context) {
	go func() {
		logger.Info(ctx, "Status API listening", "addr", s.cfg.Status.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Status API failed", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": s.cfg.Mode})
}

func (s *Server) predictions(c *gin.Context) {
	recs, err := s.history.RecentPredictions(queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": recs})
}

func (s *Server) orders(c *gin.Context) {
	recs, err := s.history.RecentOrders(queryLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": recs})
}

func (s *Server) supervised(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": s.sup.Snapshot()})
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}
