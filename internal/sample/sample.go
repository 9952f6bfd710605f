package sample

import (
	"time"

	"github.com/PratikDhanave/phish-sentinel-connector/internal/models"
)

// PhishingDetection returns a representative credential-harvesting detection
// stamped with now, for smoke-testing a workspace.
func PhishingDetection(now time.Time) models.Record {
	return models.Record{
		"TimeGenerated":       models.String(now.UTC().Format(time.RFC3339Nano)),
		"SenderEmail":         models.String("phisher@malicious.com"),
		"RecipientEmail":      models.String("user@company.com"),
		"Subject":             models.String("Urgent: Verify your account"),
		"DetectionType":       models.String("credential_harvesting"),
		"DetectionConfidence": models.Float(0.92),
		"SPF_Result":          models.String("fail"),
		"DMARC_Result":        models.String("fail"),
		"MaliciousURLs":       models.String("http://bit.ly/fake-login"),
		"AttachmentHash":      models.Null(),
	}
}
