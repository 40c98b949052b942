// internal/config/config.go
package config

type Config struct {
	Serial SerialConfig `yaml:"serial"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Filter FilterConfig `yaml:"filter"`
	Log    LogConfig    `yaml:"log"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port          string `yaml:"port"`
	BaudRate      int    `yaml:"baud_rate"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// ---- MQTT ----

type MQTTConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"client_id"`
	QoS      byte   `yaml:"qos"`

	Topics TopicsConfig `yaml:"topics"`

	PushIntervalS int `yaml:"push_interval_s"`

	// LogLevel is the threshold for forwarding log records to the log
	// topic. Independent of the local log level.
	LogLevel string `yaml:"log_level"`
}

type TopicsConfig struct {
	Value   string `yaml:"value"`
	Log     string `yaml:"log"`     // optional; empty disables MQTT logging
	Trigger string `yaml:"trigger"` // optional; empty disables the read trigger
}

// ---- FILTER ----

type FilterConfig struct {
	MinMm uint16 `yaml:"min_mm"`
	MaxMm uint16 `yaml:"max_mm"`
}

// ---- LOG ----

type LogConfig struct {
	// File is a path, or "stdout" to log to the console.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}
