package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/mnt/cg-data/raw", cfg.DataRoot)
	assert.Equal(t, "/mnt/cg-data/ndbc", cfg.OutputDir)
	assert.Equal(t, SourceLogDir, cfg.Source)
	assert.Empty(t, cfg.ErddapURL)
	assert.Equal(t, 30*time.Second, cfg.ErddapTimeout)
	assert.Equal(t, 4*time.Hour, cfg.Lookback)
	assert.Equal(t, 10*time.Minute, cfg.BinWidth)
	assert.Equal(t, 2, cfg.MaxFiles)
	assert.Empty(t, cfg.Stations)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, TransferNone, cfg.TransferProtocol)
	assert.Empty(t, cfg.TransferCredentials)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_ROOT", "/srv/raw")
	t.Setenv("OUTPUT_DIR", "/srv/ndbc")
	t.Setenv("SOURCE", "erddap")
	t.Setenv("ERDDAP_URL", "https://erddap.example.org/erddap")
	t.Setenv("ERDDAP_TIMEOUT", "45s")
	t.Setenv("LOOKBACK", "6h")
	t.Setenv("BIN_WIDTH", "15m")
	t.Setenv("MAX_FILES", "3")
	t.Setenv("STATIONS", "GI01SUMO, CP10CNSM")
	t.Setenv("RUN_INTERVAL", "1h")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("TRANSFER_PROTOCOL", "sftp")
	t.Setenv("TRANSFER_CREDENTIALS", "/etc/ndbc/credentials.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/raw", cfg.DataRoot)
	assert.Equal(t, "/srv/ndbc", cfg.OutputDir)
	assert.Equal(t, SourceErddap, cfg.Source)
	assert.Equal(t, "https://erddap.example.org/erddap", cfg.ErddapURL)
	assert.Equal(t, 45*time.Second, cfg.ErddapTimeout)
	assert.Equal(t, 6*time.Hour, cfg.Lookback)
	assert.Equal(t, 15*time.Minute, cfg.BinWidth)
	assert.Equal(t, 3, cfg.MaxFiles)
	assert.Equal(t, []string{"GI01SUMO", "CP10CNSM"}, cfg.Stations)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, TransferSFTP, cfg.TransferProtocol)
	assert.Equal(t, "/etc/ndbc/credentials.yaml", cfg.TransferCredentials)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeLookback(t *testing.T) {
	t.Setenv("LOOKBACK", "-4h")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOOKBACK")
}

func TestLoad_ZeroBinWidth(t *testing.T) {
	t.Setenv("BIN_WIDTH", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BIN_WIDTH")
}

func TestLoad_InvalidMaxFiles(t *testing.T) {
	for _, v := range []string{"0", "-1", "101", "two"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("MAX_FILES", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "MAX_FILES")
		})
	}
}

func TestLoad_NegativeRunInterval(t *testing.T) {
	t.Setenv("RUN_INTERVAL", "-1h")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RUN_INTERVAL")
}

func TestLoad_UnknownSource(t *testing.T) {
	t.Setenv("SOURCE", "carrier-pigeon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOURCE")
}

func TestLoad_ErddapRequiresURL(t *testing.T) {
	t.Setenv("SOURCE", "erddap")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERDDAP_URL")
}

func TestLoad_UnknownTransferProtocol(t *testing.T) {
	t.Setenv("TRANSFER_PROTOCOL", "scp")
	t.Setenv("TRANSFER_CREDENTIALS", "/etc/ndbc/credentials.yaml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSFER_PROTOCOL")
}

func TestLoad_TransferRequiresCredentials(t *testing.T) {
	t.Setenv("TRANSFER_PROTOCOL", "ftp")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSFER_CREDENTIALS")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
}
