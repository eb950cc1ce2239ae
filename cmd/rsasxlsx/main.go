package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/ochairo/rsasxlsx/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/rsasxlsx/internal/domain-orchestrators"
	"github.com/ochairo/rsasxlsx/internal/domain/entities"
	"github.com/ochairo/rsasxlsx/internal/domain/interfaces"
	"github.com/ochairo/rsasxlsx/internal/domain/services"
	"github.com/ochairo/rsasxlsx/internal/external-adapters/minio"
	slogadapter "github.com/ochairo/rsasxlsx/internal/external-adapters/slog"
	"github.com/ochairo/rsasxlsx/internal/external-adapters/yaml"
)

// Config file lookup
const (
	configEnv     = "RSASXLSX_CONFIG"
	defaultConfig = "rsasxlsx.yml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one conversion and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	archivePath, err := parseArgs(args)
	if err != nil {
		printUsage(stdout, args)
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	orchestrator, err := newOrchestrator(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise", interfaces.Err(err))
		return 1
	}

	logger.Info("starting conversion", interfaces.F("archive", archivePath))
	result, err := orchestrator.ConvertArchive(ctx, archivePath)
	if err != nil {
		logger.Error("conversion aborted", interfaces.F("archive", archivePath), interfaces.Err(err))
		return 1
	}

	for _, artifact := range result.Artifacts {
		fmt.Fprintln(stdout, artifact.Path)
	}
	logger.Info("conversion finished",
		interfaces.F("converted", len(result.Artifacts)),
		interfaces.F("failed", len(result.Failures)),
	)
	return 0
}

// parseArgs accepts exactly one argument ending in .zip
func parseArgs(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: expected one archive argument, got %d", entities.ErrUsage, len(args)-1)
	}
	if !strings.HasSuffix(args[1], ".zip") {
		return "", fmt.Errorf("%w: %s is not a .zip file", entities.ErrUsage, args[1])
	}
	return args[1], nil
}

func printUsage(w io.Writer, args []string) {
	name := "rsasxlsx"
	if len(args) > 0 {
		name = filepath.Base(args[0])
	}
	fmt.Fprintf(w, "Usage: %s <zip file>\n", name)
	fmt.Fprintln(w, "将RSAS导出的XML压缩包转换为xlsx格式.")
}

func loadConfig() (entities.Config, error) {
	path := os.Getenv(configEnv)
	if path == "" {
		path = defaultConfig
	}
	return yaml.NewConfigParser().LoadFile(path)
}

// newLogger builds the console and file sinks; every record carries the run id
func newLogger(cfg entities.LoggingConfig, console io.Writer) (*slogadapter.Logger, func(), error) {
	consoleLevel, err := slogadapter.ParseLevel(cfg.ConsoleLevel)
	if err != nil {
		return nil, nil, err
	}
	sinks := []slogadapter.Sink{{Writer: console, Level: consoleLevel}}
	closeLog := func() {}

	if cfg.File != "" {
		fileLevel, err := slogadapter.ParseLevel(cfg.FileLevel)
		if err != nil {
			return nil, nil, err
		}
		file, err := slogadapter.OpenFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, slogadapter.Sink{Writer: file, Level: fileLevel})
		closeLog = func() {
			//nolint:errcheck // Best-effort close of the log file at exit
			file.Close()
		}
	}

	logger := slogadapter.New(sinks...).With(interfaces.F("run_id", uuid.NewString()))
	return logger, closeLog, nil
}

func newOrchestrator(ctx context.Context, cfg entities.Config, logger interfaces.Logger) (*orchestrators.ConversionOrchestrator, error) {
	config := orchestrators.ConversionOrchestratorConfig{
		OutputDir: cfg.OutputDir,
	}

	if cfg.Verify.Enabled {
		config.Verifier = gateways.NewGPGSignatureVerifier(cfg.Verify.Keyring)
		config.SignaturePath = cfg.Verify.Signature
	}

	if cfg.Metrics.Textfile != "" {
		config.Metrics = gateways.NewPrometheusRecorder(cfg.Metrics.Textfile)
	}

	if cfg.Publish.Enabled {
		store, err := minio.New(ctx, minio.Options{
			Endpoint:  cfg.Publish.Endpoint,
			Region:    cfg.Publish.Region,
			Bucket:    cfg.Publish.Bucket,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			UseSSL:    cfg.Publish.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		config.Publisher = gateways.NewObjectStorePublisher(store, cfg.Publish.Prefix)
	}

	return orchestrators.NewConversionOrchestrator(
		services.NewReportService(),
		gateways.NewZipArchiveReader(),
		gateways.NewXMLReportParser(),
		gateways.NewXLSXReportWriter(),
		logger,
		config,
	), nil
}
