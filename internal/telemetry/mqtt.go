package telemetry

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher sends a raw payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type MQTTOptions struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
	Timeout  time.Duration
}

// MQTTPublisher is a Publisher backed by a paho client.
type MQTTPublisher struct {
	opts   MQTTOptions
	client mqtt.Client
	logger *zap.Logger
}

func NewMQTTPublisher(opts MQTTOptions, logger *zap.Logger) *MQTTPublisher {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MQTTPublisher{opts: opts, logger: logger.Named("mqtt")}
}

// Connect dials the broker and disconnects when ctx is done.
func (p *MQTTPublisher) Connect(ctx context.Context) error {
	co := mqtt.NewClientOptions().
		AddBroker(p.opts.Broker).
		SetClientID(p.opts.ClientID).
		SetUsername(p.opts.Username).
		SetPassword(p.opts.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(p.opts.Timeout)

	co.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.logger.Warn("connection lost", zap.Error(err))
	})
	co.SetOnConnectHandler(func(mqtt.Client) {
		p.logger.Info("connected", zap.String("broker", p.opts.Broker))
	})

	p.client = mqtt.NewClient(co)
	token := p.client.Connect()
	if !token.WaitTimeout(p.opts.Timeout) {
		return errors.Errorf("connect to %s: timed out", p.opts.Broker)
	}
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "connect to %s", p.opts.Broker)
	}

	go func() {
		<-ctx.Done()
		p.Close()
	}()
	return nil
}

func (p *MQTTPublisher) Publish(topic string, payload []byte) error {
	if p.client == nil || !p.client.IsConnected() {
		return errors.New("mqtt client is not connected")
	}
	token := p.client.Publish(topic, p.opts.QoS, false, payload)
	if !token.WaitTimeout(p.opts.Timeout) {
		return errors.Errorf("publish %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "publish %s", topic)
	}
	p.logger.Debug("published", zap.String("topic", topic), zap.Int("bytes", len(payload)))
	return nil
}

func (p *MQTTPublisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
