package humanize

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/telemetry"
)

// ProjectSaver persists a successful humanization when the request carries a
// title. Returns the new project id.
type ProjectSaver interface {
	Save(ctx context.Context, userID, title, originalText, humanizedText string, creditsUsed int) (string, error)
}

// Handler exposes the humanize endpoint.
type Handler struct {
	Humanizer Humanizer
	Credits   *credits.Service
	Projects  ProjectSaver
}

// NewHandler constructs a Handler. Projects may be nil when project
// persistence is disabled.
func NewHandler(humanizer Humanizer, creditsSvc *credits.Service, projects ProjectSaver) *Handler {
	return &Handler{Humanizer: humanizer, Credits: creditsSvc, Projects: projects}
}

// RegisterRoutes attaches the humanize route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/humanize", h.humanize)
}

type humanizeRequest struct {
	Text        string `json:"text"`
	Tone        string `json:"tone"`
	Length      string `json:"length"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	Strength    string `json:"strength"`
	Title       string `json:"title"`
}

func (h *Handler) humanize(c *gin.Context) {
	var req humanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No text provided for humanization"})
		return
	}

	ctx := c.Request.Context()
	id := credits.IdentityFromUserID(middleware.UserIDFromContext(c))

	ok, err := h.Credits.HasSufficientCredit(ctx, id)
	if err != nil {
		if errors.Is(err, credits.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error checking credits"})
		return
	}
	if !ok {
		msg := "Insufficient credits. Please purchase more credits to continue."
		if id.Guest {
			msg = "Guest credits exhausted. Please sign in to continue."
		}
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": msg})
		return
	}

	resp := h.Humanizer.Humanize(ctx, Request{
		Text:        req.Text,
		Tone:        req.Tone,
		Length:      req.Length,
		Readability: req.Readability,
		Purpose:     req.Purpose,
		Strength:    req.Strength,
	}, id)
	if !resp.Success {
		c.JSON(statusForFailure(resp.Err), gin.H{"success": false, "error": resp.Error})
		return
	}

	c.Set("creditsUsed", resp.CreditsUsed)

	projectID := ""
	if req.Title != "" && h.Projects != nil && !id.Guest {
		pid, err := h.Projects.Save(ctx, id.UserID, req.Title, req.Text, resp.Output, resp.CreditsUsed)
		if err != nil {
			telemetry.Error("humanize.project_save_failed", map[string]any{
				"user_id": id.UserID,
				"error":   err.Error(),
			})
		} else {
			projectID = pid
			c.Set("projectId", projectID)
		}
	}

	if err := h.Credits.LogUsage(ctx, id, projectID, resp.CreditsUsed); err != nil {
		telemetry.Error("humanize.usage_log_failed", map[string]any{
			"user_id": id.UserID,
			"error":   err.Error(),
		})
	}

	body := gin.H{
		"success":     true,
		"output":      resp.Output,
		"creditsUsed": resp.CreditsUsed,
	}
	if balance, err := h.Credits.Balance(ctx, id); err == nil {
		body["creditsRemaining"] = balance
	}
	if projectID != "" {
		body["projectId"] = projectID
	}
	c.JSON(http.StatusOK, body)
}

// statusForFailure maps workflow errors to HTTP statuses. Validation
// problems are the caller's fault; provider credit exhaustion is forbidden;
// timeouts get a gateway timeout; everything else is internal.
func statusForFailure(err error) int {
	var tooShort *TooShortError
	var tooLong *TooLongError
	switch {
	case errors.Is(err, ErrEmptyInput), errors.As(err, &tooShort), errors.As(err, &tooLong):
		return http.StatusBadRequest
	case errors.Is(err, ErrInsufficientProviderCredits):
		return http.StatusForbidden
	case errors.Is(err, ErrProcessingTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
