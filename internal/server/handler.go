package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/engine"
)

type stepHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func newStepHandler(eng *engine.Engine, logger *zap.Logger) *stepHandler {
	return &stepHandler{engine: eng, logger: logger}
}

// Step handles one interview interaction. The body is the engine request of
// the interview contract; an absent state starts a fresh session.
func (h *stepHandler) Step(c *gin.Context) {
	var req engine.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("rejecting malformed step request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	resp, err := h.engine.Step(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("interview step failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "interview step failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
