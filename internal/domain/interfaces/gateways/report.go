// Package gateways defines the contracts the conversion workflow needs from the outside world.
package gateways

import (
	"context"
	"io"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
)

// ArchiveMember is one entry of an input archive. Open may be called once;
// the caller closes the returned stream.
type ArchiveMember struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// ArchiveReader enumerates archive members
type ArchiveReader interface {
	// ForEachMember calls fn for every member whose name ends in suffix, in archive order.
	// The archive stays open until ForEachMember returns. An error returned by fn stops the walk.
	ForEachMember(ctx context.Context, archivePath, suffix string, fn func(ArchiveMember) error) error
}

// ReportParser decodes one XML report
type ReportParser interface {
	Parse(r io.Reader) (*entities.ScanDocument, error)
}

// ReportWriter persists extracted rows as a spreadsheet
type ReportWriter interface {
	Write(ctx context.Context, path string, rows []entities.RiskRow) error
}

// SignatureVerifier checks an archive against a detached signature
type SignatureVerifier interface {
	VerifyArchive(ctx context.Context, archivePath, signaturePath string) error
}

// ArtifactPublisher uploads a produced artifact and returns where it can be fetched
type ArtifactPublisher interface {
	Publish(ctx context.Context, artifact *entities.Artifact) (string, error)
}

// MetricsRecorder accumulates run counters
type MetricsRecorder interface {
	RecordMember(outcome string)
	RecordRows(emitted, suppressed int)
	Flush() error
}

// Member outcomes reported to MetricsRecorder
const (
	OutcomeConverted = "converted"
	OutcomeFailed    = "failed"
)
