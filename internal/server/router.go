package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchkit/launchkit/internal/supervisor"
)

// Router provides embeddable HTTP handlers over the dev-server session.
// Endpoints:
//
//	GET  {basePath}/status    current dev server snapshot
//	GET  {basePath}/logs      captured output tail
//	POST {basePath}/stop      graceful stop with forced fallback
//	POST {basePath}/restart   stop and relaunch with the same spec
//
// basePath may be empty or start with '/'; no trailing slash.
type Router struct {
	sup      *supervisor.Supervisor
	basePath string
}

// NewRouter constructs a Router with a configurable basePath.
// Example basePath: "/api" results in /api/status, /api/logs, /api/stop.
func NewRouter(sup *supervisor.Supervisor, basePath string) *Router {
	return &Router{sup: sup, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in
// any server or mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/status", r.handleStatus)
	group.GET("/logs", r.handleLogs)
	group.POST("/stop", r.handleStop)
	group.POST("/restart", r.handleRestart)
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
func NewServer(addr, basePath string, sup *supervisor.Supervisor) (*http.Server, error) {
	r := NewRouter(sup, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

func sanitizeBase(basePath string) string {
	bp := strings.TrimSpace(basePath)
	if bp == "" {
		return ""
	}
	if !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	return strings.TrimRight(bp, "/")
}

type errorResp struct {
	Error string `json:"error"`
}

type stopResp struct {
	OK     bool `json:"ok"`
	Forced bool `json:"forced"`
}

func (r *Router) handleStatus(c *gin.Context) {
	info, err := r.sup.Status()
	if err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			c.JSON(http.StatusNotFound, errorResp{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (r *Router) handleLogs(c *gin.Context) {
	logs, err := r.sup.Logs()
	if err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			c.JSON(http.StatusNotFound, errorResp{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (r *Router) handleStop(c *gin.Context) {
	forced, err := r.sup.Stop()
	if err != nil {
		if errors.Is(err, supervisor.ErrNotRunning) {
			c.JSON(http.StatusNotFound, errorResp{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stopResp{OK: true, Forced: forced})
}

type restartResp struct {
	OK  bool `json:"ok"`
	PID int  `json:"pid"`
}

// handleRestart relaunches with the spec of the current entry; there is
// nothing to resolve server-side.
func (r *Router) handleRestart(c *gin.Context) {
	mp, ok := r.sup.Registry().Get(supervisor.RoleDevServer)
	if !ok {
		c.JSON(http.StatusNotFound, errorResp{Error: supervisor.ErrNotRunning.Error()})
		return
	}
	next, err := r.sup.Restart(mp.Spec, mp.Project, mp.Stack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, restartResp{OK: true, PID: next.Proc.PID()})
}
