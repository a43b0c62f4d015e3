package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by the batch driver and the report service.
type Config struct {
	// HTTP Server
	Port string

	// Batch
	InputDir     string
	OutputDir    string
	InputExt     string
	ReportPrefix string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadEnv carrega variáveis de um arquivo .env, sem sobrescrever as já definidas.
// A ausência do arquivo não é erro.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads the configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8084"),

		InputDir:     getEnv("MANAD_INPUT_DIR", ""),
		OutputDir:    getEnv("MANAD_OUTPUT_DIR", "./retorno"),
		InputExt:     getEnv("MANAD_INPUT_EXT", ".TXT"),
		ReportPrefix: getEnv("MANAD_REPORT_PREFIX", "Rel_"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate validates the settings common to every entry point.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("porta inválida '%s': deve ser numérica", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("porta inválida %d: deve estar entre 1 e 65535", port))
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL inválido '%s'", c.LogLevel))
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT inválido '%s': use json ou console", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuração inválida:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// ValidateBatch also checks the settings only the batch driver needs.
func (c *Config) ValidateBatch() error {
	var errors []string

	if err := c.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if c.InputDir == "" {
		errors = append(errors, "diretório de entrada não informado (MANAD_INPUT_DIR ou -input)")
	} else if info, err := os.Stat(c.InputDir); err != nil {
		errors = append(errors, fmt.Sprintf("diretório de entrada '%s' inacessível: %v", c.InputDir, err))
	} else if !info.IsDir() {
		errors = append(errors, fmt.Sprintf("'%s' não é um diretório", c.InputDir))
	}

	if c.OutputDir == "" {
		errors = append(errors, "diretório de saída não informado (MANAD_OUTPUT_DIR ou -output)")
	}

	if !strings.HasPrefix(c.InputExt, ".") || len(c.InputExt) < 2 {
		errors = append(errors, fmt.Sprintf("extensão de entrada inválida '%s': deve começar com '.'", c.InputExt))
	}

	if strings.ContainsAny(c.ReportPrefix, `/\`) {
		errors = append(errors, fmt.Sprintf("prefixo de relatório inválido '%s'", c.ReportPrefix))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
