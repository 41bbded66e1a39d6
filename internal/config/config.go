package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source selects where observations are read from.
const (
	SourceLogDir = "logdir" // raw instrument logs on the data archive mount
	SourceErddap = "erddap" // the ERDDAP tabledap service
)

// Transfer protocols for delivering bulletins to NDBC.
const (
	TransferNone = ""
	TransferFTP  = "ftp"
	TransferSFTP = "sftp"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataRoot  string
	OutputDir string

	Source        string
	ErddapURL     string
	ErddapTimeout time.Duration

	Lookback time.Duration
	BinWidth time.Duration
	MaxFiles int
	Stations []string

	RunInterval     time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	TransferProtocol    string
	TransferCredentials string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	erddapTimeout, err := parsePositiveDuration("ERDDAP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	lookback, err := parsePositiveDuration("LOOKBACK", "4h")
	if err != nil {
		return nil, err
	}
	binWidth, err := parsePositiveDuration("BIN_WIDTH", "10m")
	if err != nil {
		return nil, err
	}
	runInterval, err := parseRunInterval()
	if err != nil {
		return nil, err
	}
	maxFiles, err := parseMaxFiles()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataRoot:  envOrDefault("DATA_ROOT", "/mnt/cg-data/raw"),
		OutputDir: envOrDefault("OUTPUT_DIR", "/mnt/cg-data/ndbc"),

		Source:        envOrDefault("SOURCE", SourceLogDir),
		ErddapURL:     os.Getenv("ERDDAP_URL"),
		ErddapTimeout: erddapTimeout,

		Lookback: lookback,
		BinWidth: binWidth,
		MaxFiles: maxFiles,
		Stations: splitList(os.Getenv("STATIONS")),

		RunInterval:     runInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TransferProtocol:    envOrDefault("TRANSFER_PROTOCOL", TransferNone),
		TransferCredentials: os.Getenv("TRANSFER_CREDENTIALS"),
	}

	switch cfg.Source {
	case SourceLogDir, SourceErddap:
	default:
		return nil, fmt.Errorf("invalid SOURCE %q", cfg.Source)
	}
	if cfg.Source == SourceErddap && cfg.ErddapURL == "" {
		return nil, fmt.Errorf("SOURCE is erddap but ERDDAP_URL is not set")
	}
	switch cfg.TransferProtocol {
	case TransferNone, TransferFTP, TransferSFTP:
	default:
		return nil, fmt.Errorf("invalid TRANSFER_PROTOCOL %q", cfg.TransferProtocol)
	}
	if cfg.TransferProtocol != TransferNone && cfg.TransferCredentials == "" {
		return nil, fmt.Errorf("TRANSFER_PROTOCOL is set but TRANSFER_CREDENTIALS is not")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseRunInterval reads RUN_INTERVAL, where zero means run once and exit.
func parseRunInterval() (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault("RUN_INTERVAL", "0s"))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid RUN_INTERVAL")
	}
	return d, nil
}

func parseMaxFiles() (int, error) {
	n, err := strconv.Atoi(envOrDefault("MAX_FILES", "2"))
	if err != nil || n < 1 || n > 100 {
		return 0, fmt.Errorf("invalid MAX_FILES")
	}
	return n, nil
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
