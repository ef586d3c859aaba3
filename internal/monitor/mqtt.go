package monitor

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/config"
	"github.com/vitalsync/vitalsync-api/internal/models"
)

// mqttReading is the wire shape published by the hardware gateway.
type mqttReading struct {
	HeartRate    float64   `json:"heart_rate"`
	SpO2         float64   `json:"spo2"`
	Temperature  float64   `json:"temperature"`
	MotionStatus string    `json:"motion_status"`
	ECG          []float64 `json:"ecg"`
	CapturedAt   time.Time `json:"captured_at"`
}

// MQTTSource is the hardware ingestion path: sensor gateways publish JSON
// readings to a broker topic and this source exposes them through the same
// contract as the simulator. Malformed payloads are logged and dropped.
type MQTTSource struct {
	client mqtt.Client
	topic  string
	logger zerolog.Logger

	mu   sync.RWMutex
	last *models.VitalReading
}

func NewMQTTSource(cfg config.MQTTConfig, logger zerolog.Logger) (*MQTTSource, error) {
	if cfg.BrokerURL == "" {
		return nil, errors.New("mqtt broker_url is required")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrap(token.Error(), "connect to mqtt broker")
	}

	return &MQTTSource{
		client: client,
		topic:  cfg.Topic,
		logger: logger.With().Str("component", "mqtt_source").Logger(),
	}, nil
}

// ProduceReading returns the most recent reading seen on the topic.
func (s *MQTTSource) ProduceReading(_ context.Context) (models.VitalReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return models.VitalReading{}, errors.New("no reading received yet")
	}
	return *s.last, nil
}

func (s *MQTTSource) Subscribe(fn func(models.VitalReading)) (func(), error) {
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		reading, err := s.decode(msg.Payload())
		if err != nil {
			s.logger.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping malformed vitals payload")
			return
		}
		s.mu.Lock()
		s.last = &reading
		s.mu.Unlock()
		fn(reading)
	}

	if token := s.client.Subscribe(s.topic, 1, handler); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "subscribe to %s", s.topic)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.client.Unsubscribe(s.topic)
		})
	}
	return cancel, nil
}

func (s *MQTTSource) decode(payload []byte) (models.VitalReading, error) {
	var raw mqttReading
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.VitalReading{}, err
	}

	motion := models.MotionStatus(raw.MotionStatus)
	if !models.IsValidMotionStatus(motion) {
		return models.VitalReading{}, errors.Errorf("unknown motion status %q", raw.MotionStatus)
	}
	capturedAt := raw.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	return models.VitalReading{
		HeartRate:   raw.HeartRate,
		SpO2:        raw.SpO2,
		Temperature: raw.Temperature,
		Motion:      motion,
		ECG:         raw.ECG,
		Timestamp:   capturedAt,
	}, nil
}

// Close disconnects from the broker.
func (s *MQTTSource) Close() {
	s.client.Disconnect(250)
}
