package entities

// NotAvailable is the placeholder written for fields the report does not carry.
const NotAvailable = "N/A"

// RiskLevel is the coarse severity bucket derived from a risk score
type RiskLevel string

// Risk levels. RiskLevelNone marks a score outside the 0-10 scale or no score at all;
// RiskLevelUnmatched marks a finding with no detail record to resolve it against.
const (
	RiskLevelNone      RiskLevel = ""
	RiskLevelLow       RiskLevel = "low"
	RiskLevelMedium    RiskLevel = "medium"
	RiskLevelHigh      RiskLevel = "high"
	RiskLevelUnmatched RiskLevel = "unmatched"
)

// Label returns the text written into the spreadsheet for the level
func (l RiskLevel) Label() string {
	switch l {
	case RiskLevelLow:
		return "低危"
	case RiskLevelMedium:
		return "中危"
	case RiskLevelHigh:
		return "高危"
	case RiskLevelUnmatched:
		return NotAvailable
	default:
		return ""
	}
}

// VulnerabilityDetail is the descriptive record of a vulnerability, keyed by ID within one document
type VulnerabilityDetail struct {
	ID          string
	Name        string
	Level       RiskLevel
	Description string
	Remediation string
}

// RiskRow is one reportable finding, in spreadsheet column order
type RiskRow struct {
	Sequence       int
	Name           string
	Level          RiskLevel
	Description    string
	Remediation    string
	Source         string
	Port           string
	ScanningDevice string
}

// RiskReport is the extracted content of one scan document
type RiskReport struct {
	TaskName      string
	VulnDBVersion string
	Rows          []RiskRow
	Suppressed    int // scanned findings dropped as low risk
}
