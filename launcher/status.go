package launcher

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeu5/offline-subopt/types"
)

// StatusServer exposes the tracked jobs over http
type StatusServer struct {
	Addr    string
	tracker *Tracker
	server  *http.Server
}

func NewStatusServer(addr string, tracker *Tracker) *StatusServer {
	s := &StatusServer{
		Addr:    addr,
		tracker: tracker,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/healthz", s.handleHealth)
	r.GET("/jobs", s.handleJobs)
	r.GET("/jobs/:id", s.handleJob)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *StatusServer) Handler() http.Handler {
	return s.server.Handler
}

// Start listens right away so that address errors surface here, then serves in the background
func (s *StatusServer) Start() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.Addr = ln.Addr().String()
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("status server: %s", err)
		}
	}()
	return nil
}

func (s *StatusServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *StatusServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *StatusServer) handleJobs(c *gin.Context) {
	states := make([]types.JobState, 0)
	for _, st := range c.QueryArray("state") {
		states = append(states, types.JobState(st))
	}
	c.JSON(http.StatusOK, gin.H{
		"counts": s.tracker.Counts(),
		"jobs":   s.tracker.List(states...),
	})
}

func (s *StatusServer) handleJob(c *gin.Context) {
	status, ok := s.tracker.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	c.JSON(http.StatusOK, status)
}
