package yaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigParser_Parse_Valid(t *testing.T) {
	parser := NewConfigParser()
	yamlData := []byte(`output:
  dir: reports
logging:
  file: /var/log/rsasxlsx.log
  console_level: WARN
verify:
  enabled: true
  keyring: /etc/rsasxlsx/scanner.asc
metrics:
  textfile: /var/lib/node_exporter/rsasxlsx.prom
publish:
  enabled: true
  endpoint: minio.internal:9000
  bucket: scan-reports
  prefix: rsas/
  use_ssl: true
`)

	cfg, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.OutputDir != "reports" {
		t.Errorf("OutputDir = %v, want reports", cfg.OutputDir)
	}
	if cfg.Logging.ConsoleLevel != "warn" {
		t.Errorf("Logging.ConsoleLevel = %v, want warn", cfg.Logging.ConsoleLevel)
	}
	if cfg.Logging.FileLevel != "debug" {
		t.Errorf("Logging.FileLevel = %v, want default debug", cfg.Logging.FileLevel)
	}
	if !cfg.Verify.Enabled || cfg.Verify.Keyring != "/etc/rsasxlsx/scanner.asc" {
		t.Errorf("Verify = %+v", cfg.Verify)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/rsasxlsx.prom" {
		t.Errorf("Metrics.Textfile = %v", cfg.Metrics.Textfile)
	}
	if !cfg.Publish.Enabled || !cfg.Publish.UseSSL || cfg.Publish.Prefix != "rsas/" {
		t.Errorf("Publish = %+v", cfg.Publish)
	}
}

func TestConfigParser_Parse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := NewConfigParser().Parse([]byte(``))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %v, want .", cfg.OutputDir)
	}
	if cfg.Logging.File != "export_tools.log" {
		t.Errorf("Logging.File = %v, want export_tools.log", cfg.Logging.File)
	}
	if cfg.Logging.ConsoleLevel != "info" || cfg.Logging.FileLevel != "debug" {
		t.Errorf("levels = %v/%v, want info/debug", cfg.Logging.ConsoleLevel, cfg.Logging.FileLevel)
	}
	if cfg.Verify.Enabled || cfg.Publish.Enabled {
		t.Error("optional features should be disabled by default")
	}
}

func TestConfigParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "broken yaml",
			data:    "output:\n  dir: [broken\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "unknown level",
			data:    "logging:\n  console_level: verbose\n",
			wantErr: "invalid logging.console_level",
		},
		{
			name:    "verify without keyring",
			data:    "verify:\n  enabled: true\n",
			wantErr: "verify.keyring is required",
		},
		{
			name:    "publish without bucket",
			data:    "publish:\n  enabled: true\n  endpoint: localhost:9000\n",
			wantErr: "publish.endpoint and publish.bucket are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfigParser().Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigParser_LoadFile_Missing(t *testing.T) {
	cfg, err := NewConfigParser().LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %v, want default", cfg.OutputDir)
	}
}

func TestConfigParser_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsasxlsx.yml")
	if err := os.WriteFile(path, []byte("output:\n  dir: out\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigParser().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %v, want out", cfg.OutputDir)
	}
}
