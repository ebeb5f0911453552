package ports

import (
	"context"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

// SubscriptionProvider returns the ordered list of active subscriptions.
type SubscriptionProvider interface {
	ActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)
}

// SimStateProvider returns the current SIM state per subscription id.
type SimStateProvider interface {
	SimStates(ctx context.Context) (map[int]models.SimState, error)
}

// ServiceStateProvider returns the radio/service state per subscription id.
type ServiceStateProvider interface {
	ServiceStates(ctx context.Context) (map[int]models.ServiceState, error)
}

// FiveGStateProvider returns the NSA 5G connection state per slot index.
type FiveGStateProvider interface {
	FiveGStates(ctx context.Context) (map[int]models.FiveGState, error)
}

// ConnectivityProvider returns Wi-Fi and airplane-mode state.
type ConnectivityProvider interface {
	WifiState(ctx context.Context) (models.WifiState, error)
	AirplaneModeOn(ctx context.Context) (bool, error)
}

// DeviceStateProvider returns device-level flags and the sticky network-name
// broadcast used when no subscriptions are active.
type DeviceStateProvider interface {
	DeviceProvisioned(ctx context.Context) (bool, error)
	TelephonyCapable(ctx context.Context) (bool, error)
	NetworkNameBroadcast(ctx context.Context) (*models.NetworkNameBroadcast, error)
}

// TelephonyProviders bundles every provider a snapshot is pulled from.
type TelephonyProviders struct {
	Subscriptions SubscriptionProvider
	SimStates     SimStateProvider
	ServiceStates ServiceStateProvider
	FiveG         FiveGStateProvider
	Connectivity  ConnectivityProvider
	Device        DeviceStateProvider
}

// TelephonyStateSink is the write side of the telephony state: ingress
// adapters (HTTP admin surface, event consumers) push reported changes here
// and then request a recompute.
type TelephonyStateSink interface {
	SetSubscriptions(subs []models.Subscription)
	SetSimState(subscriptionID int, state models.SimState)
	SetServiceState(subscriptionID int, state models.ServiceState)
	SetFiveGState(slotIndex int, state models.FiveGState)
	SetWifiState(state models.WifiState)
	SetAirplaneMode(on bool)
	SetDeviceProvisioned(provisioned bool)
	SetTelephonyCapable(capable bool)
	SetNetworkNameBroadcast(b *models.NetworkNameBroadcast)
}
