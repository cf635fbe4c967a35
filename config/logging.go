package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

func (l LoggingConfig) validate() error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if l.Format != "text" && l.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", l.Format)
	}
	return nil
}

// Apply configures the global logrus logger.
func (l LoggingConfig) Apply() error {
	if err := l.validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(l.Level)
	log.SetLevel(level)

	if l.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
