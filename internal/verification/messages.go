package verification

import (
	"fmt"
	"time"

	"sellerverify/internal/model"
)

func uploadedMessage(fileName string, delta model.TrustScore, first bool, d time.Duration) model.Notification {
	desc := fmt.Sprintf("%s has been uploaded and will be reviewed. Your trust score is unchanged.", fileName)
	if first {
		desc = fmt.Sprintf("%s has been uploaded and will be reviewed. Your trust score has increased by +%s.", fileName, delta)
	}
	return model.Notification{Title: "Document Uploaded", Description: desc, Duration: d}
}

func missingMessage(d time.Duration) model.Notification {
	return model.Notification{
		Title:       "Missing Required Documents",
		Description: "Please upload all required documents to complete verification.",
		Variant:     model.VariantDestructive,
		Duration:    d,
	}
}

func submittedMessage(d time.Duration) model.Notification {
	return model.Notification{
		Title:       "Verification Submitted",
		Description: "Your verification documents have been submitted for review. This process typically takes 1-2 business days.",
		Duration:    d,
	}
}

func reviewFailedMessage(retryable bool, d time.Duration) model.Notification {
	if !retryable {
		return model.Notification{
			Title:       "Verification Not Allowed",
			Description: "Your account is not permitted to submit verification documents.",
			Variant:     model.VariantDestructive,
			Duration:    d,
		}
	}
	return model.Notification{
		Title:       "Verification Failed",
		Description: "We could not submit your documents for review. Please try again.",
		Variant:     model.VariantDestructive,
		Duration:    d,
	}
}
