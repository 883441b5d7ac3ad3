package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noEnvFile points Load at a file that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.QuizDuration)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CHRONOS_ADDR", "127.0.0.1:9000")
	t.Setenv("CHRONOS_ALLOWED_ORIGINS", "http://localhost:5173,https://kellen.example")
	t.Setenv("CHRONOS_QUIZ_DURATION", "90s")
	t.Setenv("CHRONOS_LOG_LEVEL", "debug")
	t.Setenv("CHRONOS_LLM_PROVIDER", "openai")
	t.Setenv("CHRONOS_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("CHRONOS_LLM_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:5173", "https://kellen.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.QuizDuration)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHRONOS_CERTIFICATE_DIR=/tmp/certs\nCHRONOS_ADDR=:7000\n"), 0o644))
	t.Setenv("CHRONOS_ADDR", ":6000")
	// godotenv sets variables in the process; restore afterwards.
	t.Cleanup(func() { os.Unsetenv("CHRONOS_CERTIFICATE_DIR") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/certs", cfg.CertificateDir)
	assert.Equal(t, ":6000", cfg.Addr, "process environment wins over .env")
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CHRONOS_QUIZ_DURATION", "soon")
	_, err := Load(noEnvFile(t))
	assert.Error(t, err)

	t.Setenv("CHRONOS_QUIZ_DURATION", "0s")
	_, err = Load(noEnvFile(t))
	assert.Error(t, err)
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	cfg := &Config{}
	p, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/state/chronos/chronos.log", p)

	cfg.LogFile = "/tmp/x.log"
	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", p)
}

func TestCertificateDirOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{}
	assert.Equal(t, ".", cfg.CertificateDirOrDefault())

	require.NoError(t, os.Mkdir(filepath.Join(home, "Downloads"), 0o755))
	assert.Equal(t, filepath.Join(home, "Downloads"), cfg.CertificateDirOrDefault())

	cfg.CertificateDir = "/srv/certs"
	assert.Equal(t, "/srv/certs", cfg.CertificateDirOrDefault())
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept", "era", "mali-empire")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"era":"mali-empire"`)
}

func TestOpenLogCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chronos.log")
	f, err := OpenLog(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
