package models

// Config holds the application configuration
type Config struct {
	Server        ServerConfig   `json:"server"`
	Database      DatabaseConfig `json:"database"`
	Analysis      AnalysisConfig `json:"analysis"`
	Tracing       TracingConfig  `json:"tracing"`
	Retry         RetryConfig    `json:"retry"`
	LogLevel      string         `json:"log_level"`
	RetentionDays int            `json:"retentionDays"`
}

// ServerConfig holds HTTP server related configurations
type ServerConfig struct {
	Port                 int   `json:"port"`
	ReadTimeoutSec       int   `json:"readTimeoutSec"`
	WriteTimeoutSec      int   `json:"writeTimeoutSec"`
	IdleTimeoutSec       int   `json:"idleTimeoutSec"`
	MaxUploadBytes       int64 `json:"maxUploadBytes"`
	CleanupIntervalHours int   `json:"cleanupIntervalHours"`
}

// DatabaseConfig holds database related configurations
type DatabaseConfig struct {
	Path string `json:"path"`
}

// AnalysisConfig tunes the parser and the statistics engine. Empty slices
// fall back to the built-in defaults.
type AnalysisConfig struct {
	ConversationGapHours int      `json:"conversationGapHours"`
	StopWords            []string `json:"stopWords"`
	PositiveWords        []string `json:"positiveWords"`
	NegativeWords        []string `json:"negativeWords"`
	EncryptionNotices    []string `json:"encryptionNotices"`
}

// TracingConfig holds OpenTelemetry related configurations
type TracingConfig struct {
	ServiceName    string  `json:"service_name"`
	ServiceVersion string  `json:"service_version"`
	Environment    string  `json:"environment"`
	OTLPEndpoint   string  `json:"otlp_endpoint"`
	SampleRate     float64 `json:"sample_rate"`
	Enabled        bool    `json:"enabled"`
	UseStdout      bool    `json:"use_stdout"`
}

// RetryConfig holds retry related configurations
type RetryConfig struct {
	InitialBackoffMs int `json:"initialBackoffMs"`
	MaxBackoffMs     int `json:"maxBackoffMs"`
	MaxAttempts      int `json:"maxAttempts"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
