// internal/config/normalize.go
package config

import "github.com/google/uuid"

// Sensor and protocol defaults, matching the A02YYUW datasheet and the
// original deployment surface.
const (
	DefaultBaudRate      = 9600
	DefaultReadTimeoutMs = 1000
	DefaultMQTTPort      = 1883
	DefaultPushIntervalS = 60
	DefaultMinMm         = 30
	DefaultMaxMm         = 4500
	DefaultLogFile       = "stdout"
	DefaultLogLevel      = "INFO"
	DefaultMQTTLogLevel  = "ERROR"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = DefaultBaudRate
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = DefaultReadTimeoutMs
	}

	if cfg.MQTT.Port == 0 {
		cfg.MQTT.Port = DefaultMQTTPort
	}
	if cfg.MQTT.PushIntervalS == 0 {
		cfg.MQTT.PushIntervalS = DefaultPushIntervalS
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "a02yyuw-" + uuid.NewString()[:8]
	}
	if cfg.MQTT.LogLevel == "" {
		cfg.MQTT.LogLevel = DefaultMQTTLogLevel
	}

	if cfg.Filter.MinMm == 0 {
		cfg.Filter.MinMm = DefaultMinMm
	}
	if cfg.Filter.MaxMm == 0 {
		cfg.Filter.MaxMm = DefaultMaxMm
	}

	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
