package statistics

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/kasunkula/middys-assignment/internal/core/errors"
)

// RegisterRoutes registers the statistics route on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/statistics", s.HandleGetStatistics)
}

// HandleGetStatistics handles GET /v1/statistics
// Query parameters: period_ms (optional, defaults to the configured period)
func (s *Service) HandleGetStatistics(c *gin.Context) {
	var query struct {
		PeriodMs *int32 `form:"period_ms" binding:"omitempty,min=1"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	periodMs := s.PeriodMs()
	if query.PeriodMs != nil {
		periodMs = *query.PeriodMs
	}

	resp, err := s.GetStatistics(c.Request.Context(), periodMs)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid statistics query",
				Details:   err.Error(),
			})
			return
		}

		slog.Error("Failed to compute statistics", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute statistics",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
