// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
	"github.com/ochairo/rsasxlsx/internal/domain/interfaces"
	"github.com/ochairo/rsasxlsx/internal/domain/interfaces/gateways"
	"github.com/ochairo/rsasxlsx/internal/domain/interfaces/services"
)

// MemberSuffix selects the archive members that are converted
const MemberSuffix = ".xml"

// Clock supplies the date used in artifact names
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// ConversionOrchestrator converts every XML report of an archive into a spreadsheet.
// Members are processed one at a time and a failing member never affects the others.
type ConversionOrchestrator struct {
	reportService services.ReportService
	archives      gateways.ArchiveReader
	parser        gateways.ReportParser
	writer        gateways.ReportWriter
	logger        interfaces.Logger
	verifier      gateways.SignatureVerifier
	publisher     gateways.ArtifactPublisher
	metrics       gateways.MetricsRecorder
	clock         Clock
	outputDir     string
	signaturePath string
}

// ConversionOrchestratorConfig holds configuration and optional collaborators
type ConversionOrchestratorConfig struct {
	OutputDir     string
	SignaturePath string // defaults to <archive>.asc

	// Optional; nil disables the feature
	Verifier  gateways.SignatureVerifier
	Publisher gateways.ArtifactPublisher
	Metrics   gateways.MetricsRecorder
	Clock     Clock
}

// NewConversionOrchestrator creates a new conversion orchestrator
func NewConversionOrchestrator(
	reportService services.ReportService,
	archives gateways.ArchiveReader,
	parser gateways.ReportParser,
	writer gateways.ReportWriter,
	logger interfaces.Logger,
	config ConversionOrchestratorConfig,
) *ConversionOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	clock := config.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	return &ConversionOrchestrator{
		reportService: reportService,
		archives:      archives,
		parser:        parser,
		writer:        writer,
		logger:        logger,
		verifier:      config.Verifier,
		publisher:     config.Publisher,
		metrics:       config.Metrics,
		clock:         clock,
		outputDir:     outputDir,
		signaturePath: config.SignaturePath,
	}
}

// MemberFailure records why one archive member produced no spreadsheet
type MemberFailure struct {
	Member string
	Err    error
}

// ConversionResult summarises one archive run
type ConversionResult struct {
	Archive   string
	Members   int
	Artifacts []*entities.Artifact
	Failures  []MemberFailure
	Duration  time.Duration
}

// ConvertArchive converts every XML member of archivePath. Per-member failures are
// logged and collected in the result; only archive-level problems return an error.
func (o *ConversionOrchestrator) ConvertArchive(ctx context.Context, archivePath string) (*ConversionResult, error) {
	startTime := time.Now()
	result := &ConversionResult{
		Archive:   archivePath,
		Artifacts: make([]*entities.Artifact, 0),
		Failures:  make([]MemberFailure, 0),
	}

	o.logger.Info("converting archive", interfaces.F("archive", archivePath))

	if o.verifier != nil {
		sigPath := o.signaturePath
		if sigPath == "" {
			sigPath = archivePath + ".asc"
		}
		if err := o.verifier.VerifyArchive(ctx, archivePath, sigPath); err != nil {
			return nil, err
		}
		o.logger.Info("archive signature verified", interfaces.F("signature", sigPath))
	}

	err := o.archives.ForEachMember(ctx, archivePath, MemberSuffix, func(member gateways.ArchiveMember) error {
		result.Members++

		artifact, err := o.convertMember(ctx, member)
		if err != nil {
			o.logger.Error("failed to convert member",
				interfaces.F("member", member.Name),
				interfaces.Err(err),
			)
			result.Failures = append(result.Failures, MemberFailure{Member: member.Name, Err: err})
			o.recordMember(gateways.OutcomeFailed)
			return nil
		}

		result.Artifacts = append(result.Artifacts, artifact)
		o.recordMember(gateways.OutcomeConverted)
		return nil
	})
	result.Duration = time.Since(startTime)

	if o.metrics != nil {
		if flushErr := o.metrics.Flush(); flushErr != nil {
			o.logger.Warn("failed to write metrics", interfaces.Err(flushErr))
		}
	}

	if err != nil {
		return result, fmt.Errorf("archive conversion failed: %w", err)
	}

	o.logger.Info("archive converted",
		interfaces.F("archive", archivePath),
		interfaces.F("members", result.Members),
		interfaces.F("artifacts", len(result.Artifacts)),
		interfaces.F("failures", len(result.Failures)),
		interfaces.F("duration", result.Duration),
	)
	return result, nil
}

// convertMember runs parse, extract and write for one member
func (o *ConversionOrchestrator) convertMember(ctx context.Context, member gateways.ArchiveMember) (*entities.Artifact, error) {
	o.logger.Debug("parsing member", interfaces.F("member", member.Name))

	doc, err := o.parseMember(member)
	if err != nil {
		return nil, err
	}

	report, err := o.reportService.ExtractRows(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract rows: %w", err)
	}
	o.logger.Debug("extracted rows",
		interfaces.F("member", member.Name),
		interfaces.F("task", report.TaskName),
		interfaces.F("rows", len(report.Rows)),
		interfaces.F("suppressed", report.Suppressed),
	)

	name := o.reportService.ArtifactName(report.TaskName, o.clock.Now())
	artifact := &entities.Artifact{
		Name:   name,
		Path:   filepath.Join(o.outputDir, name),
		Member: member.Name,
		Rows:   len(report.Rows),
	}

	if err := o.writer.Write(ctx, artifact.Path, report.Rows); err != nil {
		return nil, err
	}
	if o.metrics != nil {
		o.metrics.RecordRows(len(report.Rows), report.Suppressed)
	}
	o.logger.Info("spreadsheet written",
		interfaces.F("member", member.Name),
		interfaces.F("path", artifact.Path),
		interfaces.F("rows", artifact.Rows),
	)

	if o.publisher != nil {
		url, err := o.publisher.Publish(ctx, artifact)
		if err != nil {
			// Upload failures leave the local spreadsheet in place
			o.logger.Warn("failed to publish spreadsheet",
				interfaces.F("path", artifact.Path),
				interfaces.Err(err),
			)
		} else {
			artifact.URL = url
			o.logger.Info("spreadsheet published", interfaces.F("url", url))
		}
	}

	return artifact, nil
}

// parseMember opens, decodes and closes one member stream
func (o *ConversionOrchestrator) parseMember(member gateways.ArchiveMember) (*entities.ScanDocument, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrArchiveMemberParse, err)
	}
	//nolint:errcheck // Defer close on read-only member stream
	defer rc.Close()

	return o.parser.Parse(rc)
}

func (o *ConversionOrchestrator) recordMember(outcome string) {
	if o.metrics != nil {
		o.metrics.RecordMember(outcome)
	}
}
