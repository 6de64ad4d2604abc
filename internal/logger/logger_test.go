package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config.Level != "INFO" {
		t.Errorf("Default level = %q, want %q", config.Level, "INFO")
	}
	if !config.ConsoleEnabled {
		t.Error("Default ConsoleEnabled = false, want true")
	}
	if config.FileEnabled {
		t.Error("Default FileEnabled = true, want false")
	}
	if config.FilePath != "logs/samud.log" {
		t.Errorf("Default FilePath = %q, want %q", config.FilePath, "logs/samud.log")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	yamlContent := `logging:
  level: DEBUG
  console_enabled: true
  console_format: json
  file_enabled: true
  file_path: test.log
  file_max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "test.log" {
		t.Errorf("FilePath = %q, want %q", config.FilePath, "test.log")
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want %d", config.FileMaxSizeMB, 20)
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("SAMUD_LOG_LEVEL", "ERROR")
	t.Setenv("SAMUD_LOG_CONSOLE_FORMAT", "json")
	t.Setenv("SAMUD_LOG_FILE_ENABLED", "true")
	t.Setenv("SAMUD_LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestTextFormatOutput(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)

	Info("Test message", "key", "value")
	Debug("This should not appear")

	output := buf.String()

	if !strings.Contains(output, "Test message") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Output missing structured field: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
}

func TestAlwaysBypassesLogLevel(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelError,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lv := a.Value.Any().(slog.Level); lv == LevelAlways {
					a.Value = slog.StringValue("ALWAYS")
				}
			}
			return a
		},
	})
	logger = slog.New(handler)

	Debug("Debug message")
	Info("Info message")
	Warning("Warning message")
	Error("Error message")
	Always("Always message")

	output := buf.String()

	if strings.Contains(output, "Debug message") {
		t.Error("DEBUG appeared when level is ERROR")
	}
	if strings.Contains(output, "Info message") {
		t.Error("INFO appeared when level is ERROR")
	}
	if strings.Contains(output, "Warning message") {
		t.Error("WARNING appeared when level is ERROR")
	}
	if !strings.Contains(output, "Error message") {
		t.Error("ERROR message missing from output")
	}
	if !strings.Contains(output, "Always message") {
		t.Error("ALWAYS message missing from output (should bypass level filter)")
	}
	if !strings.Contains(output, "level=ALWAYS") {
		t.Error("ALWAYS level not formatted correctly")
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger = slog.New(newMultiHandler(handler1, handler2))

	Info("Multi-handler test", "field", "value")

	if !strings.Contains(buf1.String(), "Multi-handler test") {
		t.Error("First handler did not receive message")
	}
	if !strings.Contains(buf2.String(), "Multi-handler test") {
		t.Error("Second handler did not receive message")
	}
}

func TestNilLogger(t *testing.T) {
	logger = nil

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
}
