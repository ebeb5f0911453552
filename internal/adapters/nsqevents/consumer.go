package nsqevents

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
)

// Event types carried on the telephony topic.
const (
	EventSubscriptions = "subscriptions"
	EventSimState      = "sim_state"
	EventServiceState  = "service_state"
	EventFiveG         = "five_g"
	EventConnectivity  = "connectivity"
	EventAirplaneMode  = "airplane_mode"
	EventDeviceState   = "device_state"
	EventNetworkName   = "network_name"
)

var ErrUnknownEventType = errors.New("unknown event type")

// Event is the envelope published by telephony state feeds.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type subscriptionsPayload struct {
	Subscriptions []models.Subscription `json:"subscriptions"`
}

type simStatePayload struct {
	SubscriptionID int    `json:"subscription_id"`
	State          string `json:"state"`
}

type serviceStatePayload struct {
	SubscriptionID   int    `json:"subscription_id"`
	DataInService    bool   `json:"data_in_service"`
	VoiceInService   bool   `json:"voice_in_service"`
	DataRadioTech    string `json:"data_radio_tech"`
	VoiceRadioTech   string `json:"voice_radio_tech"`
	DataNetworkType  string `json:"data_network_type"`
	VoiceNetworkType string `json:"voice_network_type"`
}

type fiveGPayload struct {
	SlotIndex    int  `json:"slot_index"`
	NsaConnected bool `json:"nsa_connected"`
}

type connectivityPayload struct {
	WifiEnabled   bool `json:"wifi_enabled"`
	WifiConnected bool `json:"wifi_connected"`
}

type airplaneModePayload struct {
	On bool `json:"on"`
}

type deviceStatePayload struct {
	Provisioned      *bool `json:"provisioned"`
	TelephonyCapable *bool `json:"telephony_capable"`
}

type networkNamePayload struct {
	ShowPLMN bool   `json:"show_plmn"`
	PLMN     string `json:"plmn"`
	ShowSPN  bool   `json:"show_spn"`
	SPN      string `json:"spn"`
}

// Config holds NSQ consumer configuration
type Config struct {
	Topic            string
	Channel          string
	NsqdAddresses    []string
	LookupdAddresses []string
	MaxInFlight      int
	Concurrency      int
}

// Consumer subscribes to the telephony event topic and feeds updates into
// the state sink, requesting a recompute after every applied event.
type Consumer struct {
	config   Config
	consumer *nsq.Consumer
	sink     ports.TelephonyStateSink
	service  ports.CarrierTextService
	logger   logger.Logger
}

// NewConsumer creates an NSQ consumer for telephony events
func NewConsumer(config Config, sink ports.TelephonyStateSink, service ports.CarrierTextService) (*Consumer, error) {
	if config.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if config.Channel == "" {
		return nil, errors.New("channel is required")
	}
	if len(config.NsqdAddresses) == 0 && len(config.LookupdAddresses) == 0 {
		return nil, errors.New("no nsqd address or lookupd configured")
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	nsqConfig := nsq.NewConfig()
	nsqConfig.UserAgent = "carrierd"
	if config.MaxInFlight > 0 {
		nsqConfig.MaxInFlight = config.MaxInFlight
	}

	consumer, err := nsq.NewConsumer(config.Topic, config.Channel, nsqConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	return &Consumer{
		config:   config,
		consumer: consumer,
		sink:     sink,
		service:  service,
		logger:   logger.New("nsq-events", "info"),
	}, nil
}

// Start registers the handler and connects to the configured nsqd or
// lookupd addresses.
func (c *Consumer) Start() error {
	c.consumer.AddConcurrentHandlers(nsq.HandlerFunc(c.handleMessage), c.config.Concurrency)

	for _, address := range c.config.NsqdAddresses {
		if err := c.consumer.ConnectToNSQD(address); err != nil {
			return fmt.Errorf("failed to connect to nsqd %s: %w", address, err)
		}
		c.logger.Infow("Connected to nsqd", "address", address)
	}

	for _, address := range c.config.LookupdAddresses {
		if err := c.consumer.ConnectToNSQLookupd(address); err != nil {
			return fmt.Errorf("failed to connect to lookupd %s: %w", address, err)
		}
		c.logger.Infow("Connected to lookupd", "address", address)
	}

	return nil
}

// Stop disconnects and waits for in-flight messages to finish
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
	c.logger.Infow("NSQ consumer stopped", "topic", c.config.Topic)
}

// IsConnected checks if the consumer has live connections
func (c *Consumer) IsConnected() bool {
	return c.consumer.Stats().Connections > 0
}

func (c *Consumer) handleMessage(message *nsq.Message) error {
	var event Event
	if err := json.Unmarshal(message.Body, &event); err != nil {
		// Malformed envelopes never become parseable; drop instead of requeue.
		logger.EventsConsumedTotal.WithLabelValues("unknown", "malformed").Inc()
		c.logger.Warnw("Dropping malformed event", "error", err)
		return nil
	}

	if err := applyEvent(c.sink, event); err != nil {
		if errors.Is(err, ErrUnknownEventType) {
			logger.EventsConsumedTotal.WithLabelValues(event.Type, "unknown").Inc()
			c.logger.Warnw("Dropping event of unknown type", "type", event.Type)
			return nil
		}
		logger.EventsConsumedTotal.WithLabelValues(event.Type, "error").Inc()
		c.logger.Warnw("Failed to apply event", "type", event.Type, "error", err)
		return err
	}

	logger.EventsConsumedTotal.WithLabelValues(event.Type, "ok").Inc()
	c.service.RequestRefresh("nsq:" + event.Type)
	return nil
}

// applyEvent decodes one event payload and applies it to the sink
func applyEvent(sink ports.TelephonyStateSink, event Event) error {
	switch event.Type {
	case EventSubscriptions:
		var p subscriptionsPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode subscriptions payload: %w", err)
		}
		sink.SetSubscriptions(p.Subscriptions)

	case EventSimState:
		var p simStatePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode sim state payload: %w", err)
		}
		state, err := models.ParseSimState(p.State)
		if err != nil {
			return err
		}
		sink.SetSimState(p.SubscriptionID, state)

	case EventServiceState:
		var p serviceStatePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode service state payload: %w", err)
		}
		sink.SetServiceState(p.SubscriptionID, models.ServiceState{
			DataInService:    p.DataInService,
			VoiceInService:   p.VoiceInService,
			DataRadioTech:    models.ParseRadioTech(p.DataRadioTech),
			VoiceRadioTech:   models.ParseRadioTech(p.VoiceRadioTech),
			DataNetworkType:  models.ParseNetworkType(p.DataNetworkType),
			VoiceNetworkType: models.ParseNetworkType(p.VoiceNetworkType),
		})

	case EventFiveG:
		var p fiveGPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode five g payload: %w", err)
		}
		sink.SetFiveGState(p.SlotIndex, models.FiveGState{NsaConnected: p.NsaConnected})

	case EventConnectivity:
		var p connectivityPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode connectivity payload: %w", err)
		}
		sink.SetWifiState(models.WifiState{Enabled: p.WifiEnabled, Connected: p.WifiConnected})

	case EventAirplaneMode:
		var p airplaneModePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode airplane mode payload: %w", err)
		}
		sink.SetAirplaneMode(p.On)

	case EventDeviceState:
		var p deviceStatePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode device state payload: %w", err)
		}
		if p.Provisioned != nil {
			sink.SetDeviceProvisioned(*p.Provisioned)
		}
		if p.TelephonyCapable != nil {
			sink.SetTelephonyCapable(*p.TelephonyCapable)
		}

	case EventNetworkName:
		var p networkNamePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return fmt.Errorf("failed to decode network name payload: %w", err)
		}
		sink.SetNetworkNameBroadcast(&models.NetworkNameBroadcast{
			ShowPLMN: p.ShowPLMN,
			PLMN:     p.PLMN,
			ShowSPN:  p.ShowSPN,
			SPN:      p.SPN,
		})

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	return nil
}
