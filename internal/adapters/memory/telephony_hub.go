package memory

import (
	"context"
	"sync"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// TelephonyStateHub is the in-process source of truth for reported telephony
// state. It implements every provider port on the read side and the state
// sink on the write side; ingress adapters mutate it and the service pulls
// snapshots from it.
type TelephonyStateHub struct {
	mu            sync.RWMutex
	subscriptions []models.Subscription
	simStates     map[int]models.SimState
	serviceStates map[int]models.ServiceState
	fiveGStates   map[int]models.FiveGState
	wifi          models.WifiState
	airplaneMode  bool
	provisioned   bool
	capable       bool
	broadcast     *models.NetworkNameBroadcast
}

// NewTelephonyStateHub creates a hub for a provisioned, telephony-capable
// device with no subscriptions reported yet.
func NewTelephonyStateHub() *TelephonyStateHub {
	return &TelephonyStateHub{
		simStates:     make(map[int]models.SimState),
		serviceStates: make(map[int]models.ServiceState),
		fiveGStates:   make(map[int]models.FiveGState),
		provisioned:   true,
		capable:       true,
	}
}

var (
	_ ports.SubscriptionProvider = (*TelephonyStateHub)(nil)
	_ ports.SimStateProvider     = (*TelephonyStateHub)(nil)
	_ ports.ServiceStateProvider = (*TelephonyStateHub)(nil)
	_ ports.FiveGStateProvider   = (*TelephonyStateHub)(nil)
	_ ports.ConnectivityProvider = (*TelephonyStateHub)(nil)
	_ ports.DeviceStateProvider  = (*TelephonyStateHub)(nil)
	_ ports.TelephonyStateSink   = (*TelephonyStateHub)(nil)
)

// Providers bundles the hub into the provider set consumed by the service.
func (h *TelephonyStateHub) Providers() ports.TelephonyProviders {
	return ports.TelephonyProviders{
		Subscriptions: h,
		SimStates:     h,
		ServiceStates: h,
		FiveG:         h,
		Connectivity:  h,
		Device:        h,
	}
}

func (h *TelephonyStateHub) ActiveSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs := make([]models.Subscription, len(h.subscriptions))
	copy(subs, h.subscriptions)
	return subs, nil
}

func (h *TelephonyStateHub) SimStates(ctx context.Context) (map[int]models.SimState, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyMap(h.simStates), nil
}

func (h *TelephonyStateHub) ServiceStates(ctx context.Context) (map[int]models.ServiceState, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyMap(h.serviceStates), nil
}

func (h *TelephonyStateHub) FiveGStates(ctx context.Context) (map[int]models.FiveGState, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyMap(h.fiveGStates), nil
}

func (h *TelephonyStateHub) WifiState(ctx context.Context) (models.WifiState, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.wifi, nil
}

func (h *TelephonyStateHub) AirplaneModeOn(ctx context.Context) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.airplaneMode, nil
}

func (h *TelephonyStateHub) DeviceProvisioned(ctx context.Context) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.provisioned, nil
}

func (h *TelephonyStateHub) TelephonyCapable(ctx context.Context) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.capable, nil
}

func (h *TelephonyStateHub) NetworkNameBroadcast(ctx context.Context) (*models.NetworkNameBroadcast, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.broadcast == nil {
		return nil, nil
	}
	b := *h.broadcast
	return &b, nil
}

func (h *TelephonyStateHub) SetSubscriptions(subs []models.Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscriptions = make([]models.Subscription, len(subs))
	copy(h.subscriptions, subs)
}

func (h *TelephonyStateHub) SetSimState(subscriptionID int, state models.SimState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.simStates[subscriptionID] = state
}

func (h *TelephonyStateHub) SetServiceState(subscriptionID int, state models.ServiceState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.serviceStates[subscriptionID] = state
}

func (h *TelephonyStateHub) SetFiveGState(slotIndex int, state models.FiveGState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fiveGStates[slotIndex] = state
}

func (h *TelephonyStateHub) SetWifiState(state models.WifiState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wifi = state
}

func (h *TelephonyStateHub) SetAirplaneMode(on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.airplaneMode = on
}

func (h *TelephonyStateHub) SetDeviceProvisioned(provisioned bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.provisioned = provisioned
}

func (h *TelephonyStateHub) SetTelephonyCapable(capable bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.capable = capable
}

func (h *TelephonyStateHub) SetNetworkNameBroadcast(b *models.NetworkNameBroadcast) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if b == nil {
		h.broadcast = nil
		return
	}
	copied := *b
	h.broadcast = &copied
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
