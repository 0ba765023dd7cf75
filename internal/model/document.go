package model

import (
	"math"
	"strconv"
)

// TrustScore is a trust-score amount stored in tenths of a point, so sums of
// per-document values stay exact (1.5 + 1.2 == 2.7).
type TrustScore int

// MaxTrustScore is the ceiling shown next to the score. It is a display label only.
const MaxTrustScore TrustScore = 50

// Points converts a decimal point value to a TrustScore, rounding to the nearest tenth.
func Points(v float64) TrustScore {
	return TrustScore(math.Round(v * 10))
}

// Float returns the score as decimal points.
func (s TrustScore) Float() float64 {
	return float64(s) / 10
}

// String formats the score with one decimal, e.g. "2.7".
func (s TrustScore) String() string {
	return strconv.FormatFloat(s.Float(), 'f', 1, 64)
}

// MarshalJSON renders the score as a JSON number in points.
func (s TrustScore) MarshalJSON() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalJSON accepts a JSON number in points.
func (s *TrustScore) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*s = Points(v)
	return nil
}

// Document is one entry of the seller verification checklist.
// Uploaded only ever moves from false to true; FileName tracks the latest upload.
type Document struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Required        bool       `json:"required"`
	TrustScoreValue TrustScore `json:"trust_score_value"`
	Uploaded        bool       `json:"uploaded"`
	FileName        string     `json:"file_name,omitempty"`
}
