package server

import (
	"strings"

	"github.com/gastos-labs/gastos-gateway/engine/assistant"
	"github.com/gin-gonic/gin"
)

// bearerCredential extracts the bearer token from the Authorization header.
// A missing or malformed header yields an absent credential; the orchestrator
// decides between 401 and 403.
func bearerCredential(c *gin.Context) assistant.Credential {
	header := c.GetHeader("Authorization")
	if header == "" {
		return assistant.Credential{}
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return assistant.Credential{}
	}
	return assistant.Credential{Token: strings.TrimSpace(parts[1]), Present: true}
}
