// internal/broker/client.go
//
// Package broker owns the MQTT connection: measurement publishing, the read
// trigger subscription, log forwarding, and reconnection.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rwindey/a02yyuw-mqtt/internal/measure"
	"github.com/rwindey/a02yyuw-mqtt/internal/status"
)

const (
	connectTimeout = 5 * time.Second
	publishWait    = 2 * time.Second

	// triggerPayload requests one out-of-cycle read; triggerAckPayload is
	// written back once the triggered cycle has run.
	triggerPayload    = "1"
	triggerAckPayload = "0"
)

// ErrNotConnected is returned by publish calls while the broker is down.
// Publishes fail fast; they never wait on reconnection.
var ErrNotConnected = errors.New("broker: not connected")

// Options is the immutable broker configuration.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	ClientID string

	ValueTopic   string
	LogTopic     string
	TriggerTopic string
	QoS          byte

	ReconnectInitial time.Duration
	ReconnectMax     time.Duration
}

// Client wraps the paho client. All of its callbacks run on the broker's own
// network goroutines, independent of the measurement loop.
type Client struct {
	opts      Options
	cli       mqtt.Client
	state     atomic.Int32
	onTrigger func()
}

// New builds a client. onTrigger is invoked on the broker's goroutine for
// every trigger message; it must only set the pending-read signal.
func New(opts Options, onTrigger func()) *Client {
	c := &Client{opts: opts, onTrigger: onTrigger}

	co := mqtt.NewClientOptions()
	co.AddBroker(fmt.Sprintf("tcp://%s:%d", opts.Host, opts.Port))
	co.SetClientID(opts.ClientID)
	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}
	co.SetConnectTimeout(connectTimeout)
	co.SetAutoReconnect(true)
	co.SetMaxReconnectInterval(opts.ReconnectMax)
	co.SetOnConnectHandler(c.handleConnect)
	co.SetConnectionLostHandler(c.handleConnectionLost)

	c.cli = mqtt.NewClient(co)
	return c
}

// State reports the broker connection state.
func (c *Client) State() status.Broker {
	return status.Broker(c.state.Load())
}

// Connect dials in the background, retrying with capped exponential backoff
// until connected or ctx is cancelled. Never blocks the caller: a broker
// outage at startup must not stop the measurement loop.
func (c *Client) Connect(ctx context.Context) {
	go func() {
		bo := Backoff{Initial: c.opts.ReconnectInitial, Max: c.opts.ReconnectMax}
		for {
			c.state.Store(int32(status.BrokerConnecting))

			token := c.cli.Connect()
			token.Wait()
			err := token.Error()
			if err == nil {
				return // handleConnect takes it from here
			}

			delay := bo.Next()
			slog.Warn("mqtt connect failed",
				"broker", c.opts.Host,
				"error", err,
				"attempt", bo.Attempts(),
				"retry_in", delay)

			c.state.Store(int32(status.BrokerDisconnected))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
}

// handleConnect runs on every (re)connect. Subscriptions are re-established
// here so they survive reconnects.
func (c *Client) handleConnect(cli mqtt.Client) {
	c.state.Store(int32(status.BrokerConnected))
	slog.Info("mqtt connected", "broker", c.opts.Host, "client_id", c.opts.ClientID)

	if c.opts.TriggerTopic == "" {
		return
	}
	token := cli.Subscribe(c.opts.TriggerTopic, c.opts.QoS, c.handleTrigger)
	go func() {
		if !token.WaitTimeout(connectTimeout) {
			slog.Error("trigger subscribe timeout", "topic", c.opts.TriggerTopic)
			return
		}
		if err := token.Error(); err != nil {
			slog.Error("trigger subscribe failed", "topic", c.opts.TriggerTopic, "error", err)
		}
	}()
}

func (c *Client) handleConnectionLost(_ mqtt.Client, err error) {
	// paho reconnects on its own; publishes fail fast meanwhile.
	c.state.Store(int32(status.BrokerConnecting))
	slog.Warn("mqtt connection lost, reconnecting", "error", err)
}

// handleTrigger runs on the broker's goroutine. Its only effect is setting
// the pending-read signal; the read itself happens on the measurement loop.
func (c *Client) handleTrigger(_ mqtt.Client, msg mqtt.Message) {
	payload := string(msg.Payload())
	if payload != triggerPayload {
		return
	}
	slog.Debug("read trigger received", "topic", msg.Topic())
	if c.onTrigger != nil {
		c.onTrigger()
	}
}

// PublishDistance publishes one measurement as a numeric payload.
// Fire-and-forget: the call never blocks the measurement cycle. A dropped
// measurement is never queued for retry.
func (c *Client) PublishDistance(m measure.Measurement) error {
	payload := strconv.FormatUint(uint64(m.DistanceMm), 10)
	return c.publish(c.opts.ValueTopic, payload, "distance")
}

// PublishTriggerAck resets the trigger topic after a triggered cycle ran.
func (c *Client) PublishTriggerAck() error {
	return c.publish(c.opts.TriggerTopic, triggerAckPayload, "trigger ack")
}

func (c *Client) publish(topic, payload, what string) error {
	if c.State() != status.BrokerConnected {
		return ErrNotConnected
	}
	token := c.cli.Publish(topic, c.opts.QoS, false, payload)
	go func() {
		if !token.WaitTimeout(publishWait) {
			slog.Warn("mqtt publish still pending", "what", what, "topic", topic)
			return
		}
		if err := token.Error(); err != nil {
			slog.Error("mqtt publish failed", "what", what, "topic", topic, "error", err)
		}
	}()
	return nil
}

// PublishLog forwards one formatted log record to the log topic. Failures are
// reported through onErr only, never to the log pipeline itself, so a broken
// log publish cannot feed back into another log publish.
func (c *Client) PublishLog(line string, onErr func(error)) {
	if c.State() != status.BrokerConnected {
		onErr(ErrNotConnected)
		return
	}
	token := c.cli.Publish(c.opts.LogTopic, c.opts.QoS, false, line)
	go func() {
		if !token.WaitTimeout(publishWait) {
			onErr(errors.New("broker: log publish timeout"))
			return
		}
		if err := token.Error(); err != nil {
			onErr(err)
		}
	}()
}

// Disconnect unsubscribes and closes cleanly. Called during shutdown after
// the measurement loop has stopped.
func (c *Client) Disconnect() {
	if c.cli.IsConnected() {
		if c.opts.TriggerTopic != "" {
			c.cli.Unsubscribe(c.opts.TriggerTopic).WaitTimeout(time.Second)
		}
		c.cli.Disconnect(250)
		slog.Info("mqtt disconnected")
	}
	c.state.Store(int32(status.BrokerDisconnected))
}
