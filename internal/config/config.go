package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultRoster are the users tracked when ROSTER is not configured. The
// roster is plain configuration, not a type: it can change without a rebuild.
var DefaultRoster = []string{"Márcio", "Samuel", "Caio", "Robson"}

type Config struct {
	// HTTP server
	Port string

	// Roster
	Roster []string

	// Storage
	DataBackend  string
	JSONDBPath   string
	SQLiteDBPath string

	// AMQP (optional, enables the mirror pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror worker targets
	GoogleSpreadsheetID string
	GoogleSheetName     string
	MirrorArchivePath   string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		Roster: splitRoster(getEnv("ROSTER", strings.Join(DefaultRoster, ","))),

		DataBackend:  getEnv("DATA_BACKEND", "json"),
		JSONDBPath:   getEnv("JSON_DB_PATH", "./data/horas_estagio.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ponto.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "ponto"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "registro_espelho"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),
		MirrorArchivePath:   getEnv("MIRROR_ARCHIVE_PATH", "./data/espelho.jsonl"),
	}
}

// Validate checks the configuration and returns all problems in one error.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(c.Roster) == 0 {
		errors = append(errors, "roster cannot be empty")
	}
	seen := make(map[string]bool, len(c.Roster))
	for _, name := range c.Roster {
		if seen[name] {
			errors = append(errors, fmt.Sprintf("duplicate roster user '%s'", name))
		}
		seen[name] = true
	}

	validBackends := []string{"json", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "json" && c.JSONDBPath == "" {
		errors = append(errors, "JSON document path cannot be empty when using json backend")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// splitRoster parses a comma-separated roster, trimming whitespace and
// dropping empty names.
func splitRoster(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
