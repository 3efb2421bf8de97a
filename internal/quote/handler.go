package quote

import (
	"context"
	"net/http"

	"inkwell/internal/response"

	"github.com/gin-gonic/gin"
)

type Fetcher interface {
	Random(ctx context.Context) (Quote, error)
}

type Handler struct {
	quotes Fetcher
}

func NewHandler(f Fetcher) *Handler { return &Handler{quotes: f} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quote", h.Random)
}

// GET /quote
func (h *Handler) Random(c *gin.Context) {
	q, err := h.quotes.Random(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to fetch quote", err)
		return
	}
	c.JSON(http.StatusOK, q)
}
