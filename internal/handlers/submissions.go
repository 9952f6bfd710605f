package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/auth"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/models"
)

// RegisterSubmissionRoutes registers the ledger query endpoint.
//
// GET /submissions?from=...&to=...
// - Requires X-API-Key (detector source)
// - Returns succeeded/failed counts for the window [from,to)
func RegisterSubmissionRoutes(r gin.IRoutes, ledger Ledger) {
	r.GET("/submissions", func(c *gin.Context) {
		source := auth.Source(c)
		if source == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if ledger == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "submission ledger not configured"})
			return
		}

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from, to are required"})
			return
		}

		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}

		from = from.UTC()
		to = to.UTC()
		if !from.Before(to) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be < to"})
			return
		}

		sum, err := ledger.Summarize(c.Request.Context(), source, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
			return
		}

		c.JSON(http.StatusOK, models.SubmissionSummary{
			Source:    source,
			Succeeded: sum.Succeeded,
			Failed:    sum.Failed,
			Events:    sum.Events,
		})
	})
}
