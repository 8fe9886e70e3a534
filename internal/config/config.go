package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	Upload UploadConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds upload limits and per-source CSV delimiters. The
// boarding system exports semicolon-separated CSV while the ticketing
// system uses commas.
type UploadConfig struct {
	MaxFileSizeMB        int64  `mapstructure:"max_file_size_mb"`
	ManifestCSVDelimiter string `mapstructure:"manifest_csv_delimiter"`
	TicketCSVDelimiter   string `mapstructure:"ticket_csv_delimiter"`
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// AuthConfig holds bearer-token settings. An empty secret disables
// authentication entirely.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// Enabled reports whether API authentication is configured.
func (a *AuthConfig) Enabled() bool {
	return a.Secret != ""
}

// Load reads configuration from environment variables with the SOBORDOS_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SOBORDOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:4321,http://127.0.0.1:4321")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("upload.manifest_csv_delimiter", ";")
	v.SetDefault("upload.ticket_csv_delimiter", ",")

	// Auth defaults (disabled unless a secret is provided)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "sobordos")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "SOBORDOS_SERVER_PORT",
		"server.read_timeout":           "SOBORDOS_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "SOBORDOS_SERVER_WRITE_TIMEOUT",
		"server.environment":            "SOBORDOS_SERVER_ENVIRONMENT",
		"log.level":                     "SOBORDOS_LOG_LEVEL",
		"log.format":                    "SOBORDOS_LOG_FORMAT",
		"cors.allowed_origins":          "SOBORDOS_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":       "SOBORDOS_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.manifest_csv_delimiter": "SOBORDOS_UPLOAD_MANIFEST_CSV_DELIMITER",
		"upload.ticket_csv_delimiter":   "SOBORDOS_UPLOAD_TICKET_CSV_DELIMITER",
		"auth.secret":                   "SOBORDOS_AUTH_SECRET",
		"auth.issuer":                   "SOBORDOS_AUTH_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SOBORDOS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SOBORDOS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB:        v.GetInt64("upload.max_file_size_mb"),
		ManifestCSVDelimiter: v.GetString("upload.manifest_csv_delimiter"),
		TicketCSVDelimiter:   v.GetString("upload.ticket_csv_delimiter"),
	}

	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}

	return cfg, nil
}

// CSVDelimiter returns the configured delimiter for a source as a rune,
// falling back to the source default when unset.
func (u *UploadConfig) CSVDelimiter(manifest bool) rune {
	s := u.TicketCSVDelimiter
	fallback := ','
	if manifest {
		s = u.ManifestCSVDelimiter
		fallback = ';'
	}
	if s == "" {
		return fallback
	}
	return []rune(s)[0]
}
