package nsqevents

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/memory"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

func mustEvent(t *testing.T, eventType string, payload interface{}) Event {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return Event{Type: eventType, Payload: data}
}

func TestApplyEvent_Subscriptions(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventSubscriptions, subscriptionsPayload{
		Subscriptions: []models.Subscription{
			{SubscriptionID: 1, SlotIndex: 0, CarrierName: "Acme Mobile"},
			{SubscriptionID: 2, SlotIndex: 1, CarrierName: "Beta Wireless"},
		},
	})

	require.NoError(t, applyEvent(hub, event))

	subs, err := hub.ActiveSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Acme Mobile", subs[0].CarrierName)
}

func TestApplyEvent_SimState(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventSimState, simStatePayload{SubscriptionID: 1, State: "READY"})
	require.NoError(t, applyEvent(hub, event))

	states, err := hub.SimStates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SimStateReady, states[1])
}

func TestApplyEvent_SimState_UnknownName(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventSimState, simStatePayload{SubscriptionID: 1, State: "BROKEN"})
	err := applyEvent(hub, event)

	assert.True(t, errors.Is(err, models.ErrUnknownSimState))
}

func TestApplyEvent_ServiceState(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventServiceState, serviceStatePayload{
		SubscriptionID:  1,
		DataInService:   true,
		DataRadioTech:   "LTE",
		DataNetworkType: "LTE_CA",
	})
	require.NoError(t, applyEvent(hub, event))

	states, err := hub.ServiceStates(context.Background())
	require.NoError(t, err)
	state := states[1]
	assert.True(t, state.DataInService)
	assert.Equal(t, models.RadioTechLTE, state.DataRadioTech)
	assert.Equal(t, models.NetworkTypeLTECA, state.DataNetworkType)
}

func TestApplyEvent_FiveG(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventFiveG, fiveGPayload{SlotIndex: 0, NsaConnected: true})
	require.NoError(t, applyEvent(hub, event))

	states, err := hub.FiveGStates(context.Background())
	require.NoError(t, err)
	assert.True(t, states[0].NsaConnected)
}

func TestApplyEvent_Connectivity(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventConnectivity, connectivityPayload{WifiEnabled: true, WifiConnected: true})
	require.NoError(t, applyEvent(hub, event))

	wifi, err := hub.WifiState(context.Background())
	require.NoError(t, err)
	assert.True(t, wifi.Enabled)
	assert.True(t, wifi.Connected)
}

func TestApplyEvent_AirplaneMode(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventAirplaneMode, airplaneModePayload{On: true})
	require.NoError(t, applyEvent(hub, event))

	on, err := hub.AirplaneModeOn(context.Background())
	require.NoError(t, err)
	assert.True(t, on)
}

func TestApplyEvent_DeviceState_PartialUpdate(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	provisioned := false
	event := mustEvent(t, EventDeviceState, deviceStatePayload{Provisioned: &provisioned})
	require.NoError(t, applyEvent(hub, event))

	got, err := hub.DeviceProvisioned(context.Background())
	require.NoError(t, err)
	assert.False(t, got)

	// Telephony capability was not in the payload and keeps its default.
	capable, err := hub.TelephonyCapable(context.Background())
	require.NoError(t, err)
	assert.True(t, capable)
}

func TestApplyEvent_NetworkName(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	event := mustEvent(t, EventNetworkName, networkNamePayload{ShowPLMN: true, PLMN: "Acme"})
	require.NoError(t, applyEvent(hub, event))

	broadcast, err := hub.NetworkNameBroadcast(context.Background())
	require.NoError(t, err)
	require.NotNil(t, broadcast)
	assert.True(t, broadcast.ShowPLMN)
	assert.Equal(t, "Acme", broadcast.PLMN)
}

func TestApplyEvent_UnknownType(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	err := applyEvent(hub, Event{Type: "reboot", Payload: json.RawMessage(`{}`)})

	assert.True(t, errors.Is(err, ErrUnknownEventType))
}

func TestNewConsumer_Validation(t *testing.T) {
	hub := memory.NewTelephonyStateHub()

	_, err := NewConsumer(Config{Channel: "carrierd", NsqdAddresses: []string{"127.0.0.1:4150"}}, hub, nil)
	assert.Error(t, err)

	_, err = NewConsumer(Config{Topic: "telephony-events", NsqdAddresses: []string{"127.0.0.1:4150"}}, hub, nil)
	assert.Error(t, err)

	_, err = NewConsumer(Config{Topic: "telephony-events", Channel: "carrierd"}, hub, nil)
	assert.Error(t, err)

	consumer, err := NewConsumer(Config{
		Topic:         "telephony-events",
		Channel:       "carrierd",
		NsqdAddresses: []string{"127.0.0.1:4150"},
	}, hub, nil)
	require.NoError(t, err)
	assert.NotNil(t, consumer)
	assert.False(t, consumer.IsConnected())
}
