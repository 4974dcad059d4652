package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Seed
		UI
		Global
		Web
		Snapshot
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Seed struct {
		SampleData bool // Insert illustrative rows when tables are empty
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Web struct {
		SessionLifetime time.Duration
		SessionSecret   string // CSRF signing secret, auto-generated if empty
		SecureCookies   bool   // Set to false for local dev without HTTPS
	}
	Snapshot struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Dir      string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8199)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("seed_sample_data", true)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Web session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", false)

	// Snapshot scheduler defaults
	v.SetDefault("snapshot_enabled", false)
	v.SetDefault("snapshot_schedule", "0 3 * * *")
	v.SetDefault("snapshot_dir", "./snapshots")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Seed: Seed{
			SampleData: v.GetBool("SEED_SAMPLE_DATA"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Web: Web{
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
			SessionSecret:   v.GetString("SESSION_SECRET"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
		},
		Snapshot: Snapshot{
			Enabled:  v.GetBool("SNAPSHOT_ENABLED"),
			Schedule: v.GetString("SNAPSHOT_SCHEDULE"),
			Dir:      v.GetString("SNAPSHOT_DIR"),
		},
	}
}
