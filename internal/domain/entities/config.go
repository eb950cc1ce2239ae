package entities

// Config holds the run configuration, read from an optional YAML file
type Config struct {
	OutputDir string
	Logging   LoggingConfig
	Verify    VerifyConfig
	Metrics   MetricsConfig
	Publish   PublishConfig
}

// LoggingConfig configures the console and file log sinks
type LoggingConfig struct {
	File         string
	ConsoleLevel string
	FileLevel    string
}

// VerifyConfig configures detached signature verification of the input archive
type VerifyConfig struct {
	Enabled   bool
	Keyring   string
	Signature string // defaults to <archive>.asc
}

// MetricsConfig configures the Prometheus textfile written at the end of a run
type MetricsConfig struct {
	Textfile string
}

// PublishConfig configures uploading produced spreadsheets to S3-compatible storage
type PublishConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Prefix    string
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Logging: LoggingConfig{
			File:         "export_tools.log",
			ConsoleLevel: "info",
			FileLevel:    "debug",
		},
	}
}
