package credits

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/shared/server/middleware"
	"humanizer-backend/internal/shared/server/respond"
)

// Handler exposes credit balance and purchase endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches credit routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/credits", h.get)
	rg.POST("/credits/purchase", h.purchase)
}

type purchaseRequest struct {
	Amount int `json:"amount"`
}

func (h *Handler) get(c *gin.Context) {
	id := IdentityFromUserID(middleware.UserIDFromContext(c))
	ctx := c.Request.Context()

	balance, err := h.Svc.Balance(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error fetching credits", nil)
		return
	}

	totalUsed, err := h.Svc.TotalUsed(ctx, id)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Error fetching usage", nil)
		return
	}

	tier := "free"
	if id.Guest {
		tier = "guest"
	}
	respond.OK(c, gin.H{
		"success": true,
		"credits": balance,
		"usageStats": gin.H{
			"totalCreditsUsed": totalUsed,
			"creditsRemaining": balance,
			"subscriptionTier": tier,
		},
	})
}

func (h *Handler) purchase(c *gin.Context) {
	id := IdentityFromUserID(middleware.UserIDFromContext(c))

	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid request body", nil)
		return
	}
	if req.Amount <= 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Invalid credit amount", nil)
		return
	}

	balance, err := h.Svc.Purchase(c.Request.Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, ErrGuestPurchase) {
			respond.Error(c, http.StatusForbidden, "forbidden", "You must be signed in to purchase credits", nil)
			return
		}
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "User not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to purchase credits", nil)
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"credits": balance,
	})
}
