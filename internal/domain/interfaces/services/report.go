// Package services defines interfaces for domain service contracts.
package services

import (
	"time"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
)

// ReportService holds the pure conversion rules
type ReportService interface {
	// ClassifyRisk maps a 0-10 risk score to a level
	ClassifyRisk(score float64) entities.RiskLevel

	// ExtractRows turns one scan document into ordered, non-low risk rows
	ExtractRows(doc *entities.ScanDocument) (*entities.RiskReport, error)

	// ArtifactName returns the spreadsheet file name for a task on a given day
	ArtifactName(taskName string, day time.Time) string
}
