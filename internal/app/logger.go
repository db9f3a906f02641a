package app

import (
	"os"

	"service-partner/internal/config"
	"service-partner/internal/logx"
)

// NewLogger builds the JSON stdout logger at the configured level.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logx.NewJSON(os.Stdout, level).With(logx.String("service", "service-partner")), nil
}
