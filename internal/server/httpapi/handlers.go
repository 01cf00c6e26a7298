package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gripgate/internal/common"
)

type checkStepAccessRequest struct {
	TechniqueStepID string `json:"techniqueStepId"`
}

type stepCompleteRequest struct {
	TechniqueStepID string `json:"technique_step_id"`
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) checkStepAccess(c *gin.Context) {
	var req checkStepAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TechniqueStepID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	userID := c.GetString(ctxUserIDKey)

	dec, err := s.gating.CheckAccess(c.Request.Context(), userID, req.TechniqueStepID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		s.logger.Error(c.Request.Context(), "check access failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": dec.Allowed, "reason": dec.Reason})
}

func (s *HTTPServer) stepComplete(c *gin.Context) {
	var req stepCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TechniqueStepID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	userID := c.GetString(ctxUserIDKey)

	res, err := s.gating.CompleteStep(c.Request.Context(), userID, req.TechniqueStepID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		case errors.Is(err, common.ErrPrerequisiteMissing):
			c.JSON(http.StatusConflict, gin.H{"error": "prerequisite_missing"})
		case errors.Is(err, common.ErrPaymentRequired):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment_required"})
		default:
			s.logger.Error(c.Request.Context(), "step complete failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}

	message := "step completed"
	if res.Idempotent {
		message = "step already completed"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"idempotent": res.Idempotent,
		"unlocked":   res.Unlocked,
		"message":    message,
	})
}
