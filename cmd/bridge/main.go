// cmd/bridge/main.go
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rwindey/a02yyuw-mqtt/internal/bridge"
	"github.com/rwindey/a02yyuw-mqtt/internal/broker"
	"github.com/rwindey/a02yyuw-mqtt/internal/config"
	"github.com/rwindey/a02yyuw-mqtt/internal/measure"
	"github.com/rwindey/a02yyuw-mqtt/internal/scheduler"
	"github.com/rwindey/a02yyuw-mqtt/internal/sensor"
)

const (
	reconnectInitial = 1 * time.Second
	reconnectMax     = 60 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Force debug logging")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Logging (file or stdout)
	// --------------------

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("config log level: %v", err)
	}
	if *debug {
		level = slog.LevelDebug
	}

	var sink io.Writer = os.Stdout
	if cfg.Log.File != config.DefaultLogFile {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("log file open failed: %v", err)
		}
		defer f.Close()
		sink = f
	}

	localHandler := slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(localHandler))

	// --------------------
	// Serial link (fatal on failure: no sensor, no bridge)
	// --------------------

	link, err := sensor.Open(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err != nil {
		slog.Error("serial open failed", "port", cfg.Serial.Port, "error", err)
		os.Exit(1)
	}

	// --------------------
	// Scheduler + broker (broker failures are non-fatal)
	// --------------------

	sched, err := scheduler.New(time.Duration(cfg.MQTT.PushIntervalS) * time.Second)
	if err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}

	client := broker.New(broker.Options{
		Host:             cfg.MQTT.Host,
		Port:             cfg.MQTT.Port,
		Username:         cfg.MQTT.Username,
		Password:         cfg.MQTT.Password,
		ClientID:         cfg.MQTT.ClientID,
		ValueTopic:       cfg.MQTT.Topics.Value,
		LogTopic:         cfg.MQTT.Topics.Log,
		TriggerTopic:     cfg.MQTT.Topics.Trigger,
		QoS:              cfg.MQTT.QoS,
		ReconnectInitial: reconnectInitial,
		ReconnectMax:     reconnectMax,
	}, func() {
		// Broker goroutine: only sets the pending-read slot.
		sched.Trigger()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Connect(ctx)

	if cfg.MQTT.Topics.Log != "" {
		mqttLevel, err := config.ParseLevel(cfg.MQTT.LogLevel)
		if err != nil {
			slog.Error("mqtt log level invalid", "error", err)
			os.Exit(1)
		}
		slog.SetDefault(slog.New(broker.NewLogHandler(localHandler, client, mqttLevel)))
	}

	// --------------------
	// Bridge loop
	// --------------------

	b := bridge.New(bridge.Config{
		ReadTimeout: time.Duration(cfg.Serial.ReadTimeoutMs) * time.Millisecond,
		Filter:      measure.Filter{MinMm: cfg.Filter.MinMm, MaxMm: cfg.Filter.MaxMm},
	}, link, client, sched)

	slog.Info("starting bridge",
		"serial_port", cfg.Serial.Port,
		"broker", cfg.MQTT.Host,
		"value_topic", cfg.MQTT.Topics.Value,
		"push_interval_s", cfg.MQTT.PushIntervalS)

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig.String())

	// Shutdown order: stop new cycles, let the in-flight one finish,
	// close the sensor, then leave the broker.
	cancel()
	<-done
	if err := link.Close(); err != nil {
		slog.Warn("serial close failed", "error", err)
	}
	client.Disconnect()

	slog.Info("bridge stopped")
}
