// Package services implements domain business logic and use cases.
package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
	"github.com/ochairo/rsasxlsx/internal/domain/interfaces/services"
)

// ScanningDeviceTemplate is filled with the vulnerability database version of the report
const ScanningDeviceTemplate = "绿盟RSAS (漏洞库版本%s)"

// reportService implements ReportService with pure business logic
type reportService struct{}

// NewReportService creates a new report service
func NewReportService() services.ReportService {
	return &reportService{}
}

// ClassifyRisk buckets a score into [0,4) low, [4,7) medium, [7,10] high.
// Anything else has no level.
func (s *reportService) ClassifyRisk(score float64) entities.RiskLevel {
	return ClassifyRisk(score)
}

// ClassifyRisk is the package-level form of ReportService.ClassifyRisk
func ClassifyRisk(score float64) entities.RiskLevel {
	switch {
	case score >= 0 && score < 4:
		return entities.RiskLevelLow
	case score >= 4 && score < 7:
		return entities.RiskLevelMedium
	case score >= 7 && score <= 10:
		return entities.RiskLevelHigh
	default:
		return entities.RiskLevelNone
	}
}

// ExtractRows walks targets in document order. Detail records are collected into a
// lookup scoped to this call; scanned findings are resolved against it as they appear.
func (s *reportService) ExtractRows(doc *entities.ScanDocument) (*entities.RiskReport, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", entities.ErrMalformedInput)
	}
	if doc.TaskName == nil {
		return nil, fmt.Errorf("%w: data/report/task/name", entities.ErrMissingRequiredField)
	}
	if doc.VulnDBVersion == nil {
		return nil, fmt.Errorf("%w: data/report/sysvul_version", entities.ErrMissingRequiredField)
	}

	report := &entities.RiskReport{
		TaskName:      *doc.TaskName,
		VulnDBVersion: *doc.VulnDBVersion,
		Rows:          make([]entities.RiskRow, 0),
	}
	device := fmt.Sprintf(ScanningDeviceTemplate, report.VulnDBVersion)
	lookup := make(map[string]entities.VulnerabilityDetail)

	for _, target := range doc.Targets {
		for _, rec := range target.Details {
			detail, err := newVulnerabilityDetail(rec)
			if err != nil {
				return nil, err
			}
			lookup[detail.ID] = detail
		}

		source := textOr(target.IP, entities.NotAvailable)
		for _, rec := range target.Scanned {
			row := resolveFinding(rec, lookup, source, device)
			if row.Level == entities.RiskLevelLow {
				report.Suppressed++
				continue
			}
			row.Sequence = len(report.Rows) + 1
			report.Rows = append(report.Rows, row)
		}
	}

	return report, nil
}

// ArtifactName returns <task>_<YYYY-MM-DD>.xlsx. Two reports for the same task on
// the same day share a name. The task name comes from the report, so path
// separators and ".." are replaced to keep the file inside the output directory.
func (s *reportService) ArtifactName(taskName string, day time.Time) string {
	return fileNameReplacer.Replace(taskName) + "_" + day.Format(time.DateOnly) + ".xlsx"
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

func newVulnerabilityDetail(rec entities.DetailRecord) (entities.VulnerabilityDetail, error) {
	detail := entities.VulnerabilityDetail{
		ID:          textOr(rec.VulID, entities.NotAvailable),
		Name:        textOr(rec.Name, entities.NotAvailable),
		Description: textOr(rec.Description, entities.NotAvailable),
		Remediation: textOr(rec.Solution, entities.NotAvailable),
		Level:       entities.RiskLevelNone,
	}

	if rec.RiskPoints != nil {
		score, err := parseRiskPoints(*rec.RiskPoints)
		if err != nil {
			return entities.VulnerabilityDetail{}, fmt.Errorf("%w: risk_points %q of vulnerability %s", entities.ErrValueConversion, *rec.RiskPoints, detail.ID)
		}
		detail.Level = ClassifyRisk(score)
	}

	return detail, nil
}

func parseRiskPoints(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// resolveFinding builds a row for a scanned finding; an unknown ID yields placeholder detail fields
func resolveFinding(rec entities.ScannedRecord, lookup map[string]entities.VulnerabilityDetail, source, device string) entities.RiskRow {
	row := entities.RiskRow{
		Name:           entities.NotAvailable,
		Level:          entities.RiskLevelUnmatched,
		Description:    entities.NotAvailable,
		Remediation:    entities.NotAvailable,
		Source:         source,
		Port:           normalizePort(rec.Port),
		ScanningDevice: device,
	}

	if detail, ok := lookup[textOr(rec.VulID, entities.NotAvailable)]; ok {
		row.Name = detail.Name
		row.Level = detail.Level
		row.Description = detail.Description
		row.Remediation = detail.Remediation
	}

	return row
}

// normalizePort maps an absent port and port 0 to an empty cell
func normalizePort(port *string) string {
	if port == nil || *port == "0" {
		return ""
	}
	return *port
}

func textOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
