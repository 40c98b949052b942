// internal/config/validate_test.go
package config

import "testing"

// helper to build a minimal valid config
func valid() *Config {
	return &Config{
		Serial: SerialConfig{Port: "/dev/ttyUSB0"},
		MQTT: MQTTConfig{
			Host:   "broker.local",
			Topics: TopicsConfig{Value: "sensors/tank/distance_mm"},
		},
	}
}

// ---- tests ----

func TestValidate_MinimalConfig(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingSerialPort(t *testing.T) {
	cfg := valid()
	cfg.Serial.Port = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_MissingHost(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Host = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_MissingValueTopic(t *testing.T) {
	cfg := valid()
	cfg.MQTT.Topics.Value = ""

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_BadQoS(t *testing.T) {
	cfg := valid()
	cfg.MQTT.QoS = 3

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_InvertedRange(t *testing.T) {
	cfg := valid()
	cfg.Filter.MinMm = 500
	cfg.Filter.MaxMm = 100

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := valid()
	cfg.Log.Level = "CHATTY"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_BadMQTTLogLevel(t *testing.T) {
	cfg := valid()
	cfg.MQTT.LogLevel = "SOMETIMES"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
