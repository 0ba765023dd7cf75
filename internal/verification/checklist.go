package verification

import (
	"path/filepath"
	"strings"

	"sellerverify/internal/model"
)

// AcceptedExtensions lists the file types the document picker offers.
var AcceptedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

// Accepts reports whether the file name carries one of AcceptedExtensions.
func Accepts(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// DefaultChecklist returns the seller verification checklist, nothing uploaded yet.
func DefaultChecklist() []model.Document {
	return []model.Document{
		{ID: "business-registration", Name: "Business Registration Certificate", Required: true, TrustScoreValue: model.Points(1.5)},
		{ID: "tax-certificate", Name: "Tax Registration Certificate", Required: true, TrustScoreValue: model.Points(1.2)},
		{ID: "identity-proof", Name: "Identity Proof (Aadhar/PAN)", Required: true, TrustScoreValue: model.Points(0.8)},
		{ID: "address-proof", Name: "Business Address Proof", Required: false, TrustScoreValue: model.Points(0.5)},
		{ID: "quality-certifications", Name: "Quality/Sustainability Certifications", Required: false, TrustScoreValue: model.Points(1.0)},
	}
}
