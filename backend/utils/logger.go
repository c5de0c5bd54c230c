package utils

import (
	"strings"

	"go.uber.org/zap"
)

// InitLogger builds the application logger. Production mode emits JSON,
// anything else a human-readable console format.
func InitLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
