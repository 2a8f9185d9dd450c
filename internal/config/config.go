package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Session struct {
		TTLMinutes int    `yaml:"ttl_minutes"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"session"`

	Storage struct {
		Type     string `yaml:"type"`      // only "local" today
		BasePath string `yaml:"base_path"` // managed upload directory
		BaseURL  string `yaml:"base_url"`  // public URL base
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // max request body in bytes
	} `yaml:"upload"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	FirstAdmin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

var AppConfig *Config

// LoadConfig populates AppConfig. A .env file is loaded first if present.
// When DATABASE_URL is set (tests, containers) the environment drives the
// config; otherwise config/config.yaml is read.
func LoadConfig() {
	var cfg Config

	// Best effort: absence of .env is fine.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Storage.BasePath = os.Getenv("UPLOAD_DIR")
	cfg.FirstAdmin.Email = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdmin.Password = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 60 * 24 * 7 // one week
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session_token"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/files"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 16 * 1024 * 1024 // 16MB
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
