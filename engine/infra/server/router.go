package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gastos-labs/gastos-gateway/engine/assistant"
	"github.com/gastos-labs/gastos-gateway/engine/core"
	"github.com/gastos-labs/gastos-gateway/pkg/version"
	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealthz)
	s.router.GET("/", s.handleRoot)
	s.router.POST("/test", s.handleEcho)
	s.router.POST("/query", s.handleQuery)
	s.router.POST("/reminder", s.handleReminder)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"version":   version.Get().Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(c *gin.Context) {
	targets := s.assistant.Targets()
	labels := make([]string, 0, len(targets))
	for _, target := range targets {
		labels = append(labels, target.Label)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":              "online",
		"service":             serviceName,
		"version":             version.Get().Version,
		"model":               s.cfg.Groq.Model,
		"environment":         s.cfg.Runtime.Environment,
		"webhooks_configured": s.cfg.Webhooks.Configured(),
		"webhook_targets":     labels,
	})
}

// handleEcho parses the body and selected headers back to the caller. Useful
// when debugging what a client platform actually sends.
func (s *Server) handleEcho(c *gin.Context) {
	headersEcho := map[string]string{}
	for _, name := range []string{"Content-Type", "Authorization", "User-Agent"} {
		if v := c.GetHeader(name); v != "" {
			headersEcho[name] = v
		}
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error(), "received_headers": headersEcho})
		return
	}
	var bodyJSON any
	if err := json.Unmarshal(body, &bodyJSON); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error(), "received_headers": headersEcho})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"received_body":    bodyJSON,
		"received_headers": headersEcho,
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var in assistant.QueryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondProblem(c, &core.Problem{Status: http.StatusUnprocessableEntity, Detail: err.Error()})
		return
	}
	result, err := s.assistant.HandleQuery(c.Request.Context(), bearerCredential(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleReminder(c *gin.Context) {
	var in assistant.ReminderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondProblem(c, &core.Problem{Status: http.StatusUnprocessableEntity, Detail: err.Error()})
		return
	}
	result, err := s.assistant.HandleReminder(c.Request.Context(), bearerCredential(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps the orchestrator error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var upstream *core.UpstreamError
	switch {
	case errors.Is(err, core.ErrMissingCredential):
		c.Header("WWW-Authenticate", "Bearer")
		respondProblem(c, &core.Problem{Status: http.StatusUnauthorized, Detail: err.Error()})
	case errors.Is(err, core.ErrBadCredential):
		c.Header("WWW-Authenticate", "Bearer")
		respondProblem(c, &core.Problem{Status: http.StatusForbidden, Detail: err.Error()})
	case errors.Is(err, core.ErrInvalidInput):
		respondProblem(c, &core.Problem{Status: http.StatusUnprocessableEntity, Detail: err.Error()})
	case errors.As(err, &upstream):
		respondProblem(c, &core.Problem{Status: http.StatusBadGateway, Detail: upstream.Error()})
	default:
		respondProblem(c, &core.Problem{Status: http.StatusInternalServerError, Detail: err.Error()})
	}
}

func respondProblem(c *gin.Context, problem *core.Problem) {
	problem = core.NormalizeProblem(problem)
	c.AbortWithStatusJSON(problem.Status, core.BuildProblemBody(problem))
}
