package entities

// ScanDocument is the raw content of one RSAS XML report.
// Pointer fields are nil when the element is absent from the document.
type ScanDocument struct {
	TaskName      *string
	VulnDBVersion *string
	Targets       []ScanTarget
}

// ScanTarget is one scanned host
type ScanTarget struct {
	IP      *string
	Details []DetailRecord
	Scanned []ScannedRecord
}

// DetailRecord is a vuln_detail entry
type DetailRecord struct {
	VulID       *string
	Name        *string
	RiskPoints  *string
	Solution    *string
	Description *string
}

// ScannedRecord is a vuln_scanned entry
type ScannedRecord struct {
	VulID *string
	Port  *string
}
