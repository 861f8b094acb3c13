// Package alerts publishes GPWS callouts and automation events to an MQTT
// broker so that external panels and stream overlays can react to them.
package alerts

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/steamgauges/extension/internal/config"
	"github.com/steamgauges/extension/pkg/core"
)

// ErrNotConnected is returned by Publish before Connect succeeds.
var ErrNotConnected = errors.New("mqtt not connected")

const publishTimeout = 2 * time.Second

// Alert is the JSON payload of one published event.
type Alert struct {
	Vessel  string    `json:"vessel"`
	Kind    string    `json:"kind"`
	Warning string    `json:"warning,omitempty"`
	UT      float64   `json:"ut"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// NewAlert builds the payload for an event.
func NewAlert(vessel string, e core.Event) Alert {
	a := Alert{
		Vessel:  vessel,
		Kind:    string(e.Kind),
		UT:      e.UT,
		Message: e.Message,
		Time:    e.Time,
	}
	if e.Warning.Active() {
		a.Warning = e.Warning.String()
	}
	return a
}

// publisher is the part of mqtt.Client the publisher needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher sends alerts to "<topic>/<kind>".
type Publisher struct {
	cfg    config.MQTTConfig
	log    zerolog.Logger
	client mqtt.Client
	pub    publisher
}

// New creates a publisher. Nothing is sent until Connect.
func New(cfg config.MQTTConfig, log zerolog.Logger) *Publisher {
	return &Publisher{cfg: cfg, log: log}
}

// Connect dials the broker. Reconnects after a lost connection are handled
// by the client.
func (p *Publisher) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.cfg.Broker)
	opts.SetClientID(fmt.Sprintf("%s-%d", p.cfg.ClientID, time.Now().Unix()))
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		p.log.Info().Str("broker", p.cfg.Broker).Msg("MQTT connected")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.log.Warn().Err(err).Msg("MQTT connection lost, reconnecting")
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to %s: %w", p.cfg.Broker, token.Error())
	}
	p.client = client
	p.pub = client
	return nil
}

// Topic is where alerts of a kind are published.
func (p *Publisher) Topic(kind core.EventKind) string {
	return p.cfg.Topic + "/" + string(kind)
}

// Publish sends one event.
func (p *Publisher) Publish(vessel string, e core.Event) error {
	if p.pub == nil {
		return ErrNotConnected
	}
	payload, err := json.Marshal(NewAlert(vessel, e))
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	token := p.pub.Publish(p.Topic(e.Kind), p.cfg.QoS, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", p.Topic(e.Kind))
	}
	return token.Error()
}

// Close disconnects, waiting briefly for in-flight messages.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
	p.client = nil
	p.pub = nil
}
