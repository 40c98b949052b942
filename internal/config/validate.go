// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration; defaults belong in Normalize().
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		return errors.New("config: serial.port is required")
	}
	if cfg.Serial.BaudRate < 0 {
		return fmt.Errorf("config: serial.baud_rate must be >= 0, got %d", cfg.Serial.BaudRate)
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("config: serial.read_timeout_ms must be >= 0, got %d", cfg.Serial.ReadTimeoutMs)
	}

	// ------------------------------------------------------------
	// MQTT
	// ------------------------------------------------------------

	if cfg.MQTT.Host == "" {
		return errors.New("config: mqtt.host is required")
	}
	if cfg.MQTT.Port < 0 || cfg.MQTT.Port > 65535 {
		return fmt.Errorf("config: mqtt.port out of range: %d", cfg.MQTT.Port)
	}
	if cfg.MQTT.QoS > 2 {
		return fmt.Errorf("config: mqtt.qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
	}
	if cfg.MQTT.Topics.Value == "" {
		return errors.New("config: mqtt.topics.value is required")
	}
	if cfg.MQTT.PushIntervalS < 0 {
		return fmt.Errorf("config: mqtt.push_interval_s must be >= 0, got %d", cfg.MQTT.PushIntervalS)
	}
	if cfg.MQTT.LogLevel != "" {
		if _, err := ParseLevel(cfg.MQTT.LogLevel); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// FILTER
	// ------------------------------------------------------------

	if cfg.Filter.MinMm != 0 && cfg.Filter.MaxMm != 0 &&
		cfg.Filter.MinMm > cfg.Filter.MaxMm {
		return fmt.Errorf("config: filter.min_mm (%d) exceeds filter.max_mm (%d)",
			cfg.Filter.MinMm, cfg.Filter.MaxMm)
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}

	return nil
}
