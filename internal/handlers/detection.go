package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/auth"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/models"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/sentinel"
	"github.com/PratikDhanave/phish-sentinel-connector/internal/store"
)

// Forwarder delivers one batch of detections upstream.
type Forwarder interface {
	Send(ctx context.Context, records []models.Record) (sentinel.Result, error)
}

// Ledger records submission outcomes. A nil Ledger disables recording.
type Ledger interface {
	RecordSubmission(ctx context.Context, s store.Submission) error
	Summarize(ctx context.Context, source string, from, to time.Time) (store.Summary, error)
}

// submissionID honors a client-supplied X-Request-ID when it is a UUID.
func submissionID(c *gin.Context) uuid.UUID {
	if id, err := uuid.Parse(c.GetHeader("X-Request-ID")); err == nil {
		return id
	}
	return uuid.New()
}

// RegisterDetectionRoutes registers the forwarding endpoint.
//
// POST /detections
// - Requires X-API-Key (detector source)
// - Body is a JSON array of records or a single record object
// - Forwarded synchronously as one signed request; never retried
func RegisterDetectionRoutes(r gin.IRoutes, fwd Forwarder, ledger Ledger, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r.POST("/detections", func(c *gin.Context) {
		source := auth.Source(c)
		if source == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		records, err := models.DecodeRecords(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload: " + err.Error()})
			return
		}

		id := submissionID(c)
		log := logger.With(
			zap.String("submission_id", id.String()),
			zap.String("source", source),
		)

		result, sendErr := fwd.Send(c.Request.Context(), records)

		sub := store.Submission{
			ID:         id,
			Source:     source,
			Events:     len(records),
			StatusCode: result.StatusCode,
			OK:         sendErr == nil,
			CreatedAt:  time.Now(),
		}
		if sendErr != nil {
			sub.Error = sendErr.Error()
		}
		if ledger != nil {
			// The outcome stands even if it cannot be recorded.
			if err := ledger.RecordSubmission(c.Request.Context(), sub); err != nil {
				log.Warn("failed to record submission", zap.Error(err))
			}
		}

		if sendErr != nil {
			log.Error("detection forwarding failed",
				zap.Int("status", result.StatusCode),
				zap.Int("events", len(records)),
				zap.Error(sendErr),
			)
			c.JSON(http.StatusBadGateway, models.SubmissionResponse{
				SubmissionID: id.String(),
				Events:       len(records),
				StatusCode:   result.StatusCode,
				Error:        sendErr.Error(),
			})
			return
		}

		log.Info("detections forwarded", zap.Int("events", len(records)))
		c.JSON(http.StatusAccepted, models.SubmissionResponse{
			SubmissionID: id.String(),
			Events:       len(records),
			StatusCode:   result.StatusCode,
		})
	})
}
