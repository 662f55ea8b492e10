package models

// RiskLevel is the tier derived from a scan score
type RiskLevel string

const (
	RiskVerySafe  RiskLevel = "Very Safe"
	RiskCaution   RiskLevel = "Caution"
	RiskDangerous RiskLevel = "Dangerous"
)

// MaxScore is the highest score a scan can reach
const MaxScore = 5

// Icon returns the marker shown at the top of a report for this level
func (r RiskLevel) Icon() string {
	switch r {
	case RiskVerySafe:
		return "✅"
	case RiskCaution:
		return "⚠️"
	default:
		return "❌"
	}
}
