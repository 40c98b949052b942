// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the yaml file and layers environment overrides on top.
// The result is validated and normalized by the caller, then never mutated
// again for the process lifetime.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv overlays the environment surface onto the file config.
func applyEnv(cfg *Config) error {
	setString("SERIAL_PORT", &cfg.Serial.Port)
	setString("MQTT_HOST", &cfg.MQTT.Host)
	setString("MQTT_USER", &cfg.MQTT.Username)
	setString("MQTT_PASS", &cfg.MQTT.Password)
	setString("MQTT_VALUE_TOPIC", &cfg.MQTT.Topics.Value)
	setString("MQTT_LOG_TOPIC", &cfg.MQTT.Topics.Log)
	setString("MQTT_LOG_LEVEL", &cfg.MQTT.LogLevel)
	setString("MQTT_READ_TRIGGER_TOPIC", &cfg.MQTT.Topics.Trigger)
	setString("LOG_FILE", &cfg.Log.File)
	setString("LOG_LEVEL", &cfg.Log.Level)

	if err := setInt("MQTT_PORT", &cfg.MQTT.Port); err != nil {
		return err
	}
	if err := setInt("MQTT_PUSH_INTERVAL_SECONDS", &cfg.MQTT.PushIntervalS); err != nil {
		return err
	}
	return nil
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s=%q is not an integer", key, v)
	}
	*dst = n
	return nil
}
