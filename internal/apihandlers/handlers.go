package apihandlers

import (
	"fmt"
	"net/http"

	"colcat/internal/app"
	"colcat/pkg/categorizer"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

type categorizeRequest struct {
	Texts                []string `json:"texts" binding:"required"`
	MaxCategories        int      `json:"maxCategories"`
	PredefinedCategories []string `json:"predefinedCategories"`
}

type categorizeResponse struct {
	Items []categorizer.Item `json:"items"`
	Count int                `json:"count"`
}

// CategorizeHandler runs the batch pipeline over the posted texts.
func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items, err := h.App.Pipeline.Categorize(c.Request.Context(), req.Texts, categorizer.Options{
		MaxCategories:        req.MaxCategories,
		PredefinedCategories: req.PredefinedCategories,
	})
	if err != nil {
		Internal(c, fmt.Sprintf("CategorizeHandler: categorization run failed: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categorizeResponse{Items: items, Count: len(items)}})
}

// HealthzHandler reports liveness plus history-store reachability.
func (h *APIHandler) HealthzHandler(c *gin.Context) {
	if h.App.RunStore != nil {
		if err := h.App.RunStore.Ping(c.Request.Context()); err != nil {
			Internal(c, "history store unreachable: "+err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
