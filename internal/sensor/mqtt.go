package sensor

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"lazytimer/internal/core/shake"

	"github.com/eclipse/paho.golang/paho"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MQTTOptions configures the MQTT accelerometer source.
type MQTTOptions struct {
	// Broker is a host:port TCP address.
	Broker    string
	Topic     string
	ClientID  string
	KeepAlive time.Duration
	// Buffer bounds queued samples; extra samples are dropped.
	Buffer int
}

// MQTT receives accelerometer samples published by a companion device.
type MQTT struct {
	options MQTTOptions
	logger  *zap.Logger
}

// NewMQTT creates an MQTT source.
func NewMQTT(options MQTTOptions, logger *zap.Logger) *MQTT {
	if options.ClientID == "" {
		options.ClientID = "lazytimer-" + uuid.NewString()
	}
	if options.KeepAlive <= 0 {
		options.KeepAlive = 30 * time.Second
	}
	if options.Buffer <= 0 {
		options.Buffer = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MQTT{options: options, logger: logger}
}

// Samples implements shake.Source. The channel closes when ctx ends.
func (source *MQTT) Samples(ctx context.Context) (<-chan shake.Sample, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", source.options.Broker)
	if err != nil {
		return nil, fmt.Errorf("dial mqtt broker %s: %w", source.options.Broker, err)
	}

	out := make(chan shake.Sample, source.options.Buffer)
	var mu sync.Mutex
	closed := false
	deliver := func(sample shake.Sample) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- sample:
		default:
			source.logger.Debug("sample dropped, consumer behind")
		}
	}

	client := paho.NewClient(paho.ClientConfig{
		ClientID: source.options.ClientID,
		Conn:     conn,
		OnPublishReceived: []func(paho.PublishReceived) (bool, error){
			func(received paho.PublishReceived) (bool, error) {
				sample, err := DecodeSample(received.Packet.Payload)
				if err != nil {
					source.logger.Warn("skipping sample",
						zap.String("topic", received.Packet.Topic),
						zap.Error(err),
					)
					return true, nil
				}
				deliver(sample)
				return true, nil
			},
		},
		OnClientError: func(err error) {
			source.logger.Error("mqtt client error", zap.Error(err))
		},
	})

	if _, err := client.Connect(ctx, &paho.Connect{
		ClientID:   source.options.ClientID,
		KeepAlive:  uint16(source.options.KeepAlive.Seconds()),
		CleanStart: true,
	}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect mqtt broker: %w", err)
	}

	if _, err := client.Subscribe(ctx, &paho.Subscribe{
		Subscriptions: []paho.SubscribeOptions{{
			Topic: source.options.Topic,
			QoS:   0,
		}},
	}); err != nil {
		_ = client.Disconnect(&paho.Disconnect{ReasonCode: 0})
		return nil, fmt.Errorf("subscribe %s: %w", source.options.Topic, err)
	}

	source.logger.Info("mqtt sensor subscribed",
		zap.String("broker", source.options.Broker),
		zap.String("topic", source.options.Topic),
	)

	go func() {
		<-ctx.Done()
		_ = client.Disconnect(&paho.Disconnect{ReasonCode: 0})
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out, nil
}
