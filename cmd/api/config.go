package main

import (
	"io"
	"log"
	"os"

	"omnicasa-gateway/pkg/config"
	"omnicasa-gateway/pkg/logger"

	"github.com/joho/godotenv"
)

// load environment variables and configuration
func LoadConfiguration() (*config.Config, error) {
	loadEnvironment()
	return loadConfigFile()
}

// load environment variables from .env file
func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
}

// load the application configuration from a YAML file
func loadConfigFile() (*config.Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	return config.LoadConfig(configPath)
}

// initialize the global logger, writing to a rotating file when one is configured
func initLogger(cfg config.LoggingConfig) io.Closer {
	if cfg.File == "" {
		logger.InitLogger(os.Stdout, cfg.Level)
		return io.NopCloser(nil)
	}
	w := logger.NewRotatingFile(cfg.File, rotation(cfg))
	logger.InitLogger(w, cfg.Level)
	return w
}

func rotation(cfg config.LoggingConfig) logger.RotationConfig {
	return logger.RotationConfig{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}
}
