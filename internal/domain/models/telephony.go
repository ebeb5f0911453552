package models

import (
	"errors"
	"fmt"
	"strings"
)

// SimState is the card state reported for a subscription. The zero value
// SimStateNone means no state has been reported yet; reading the SIM can take
// a while, so the card is assumed present and usable until told otherwise.
type SimState int

const (
	SimStateNone SimState = iota
	SimStateUnknown
	SimStateAbsent
	SimStateNotReady
	SimStatePinRequired
	SimStatePukRequired
	SimStateNetworkLocked
	SimStateReady
	SimStatePermDisabled
	SimStateCardIOError
)

var simStateNames = map[SimState]string{
	SimStateNone:          "NONE",
	SimStateUnknown:       "UNKNOWN",
	SimStateAbsent:        "ABSENT",
	SimStateNotReady:      "NOT_READY",
	SimStatePinRequired:   "PIN_REQUIRED",
	SimStatePukRequired:   "PUK_REQUIRED",
	SimStateNetworkLocked: "NETWORK_LOCKED",
	SimStateReady:         "READY",
	SimStatePermDisabled:  "PERM_DISABLED",
	SimStateCardIOError:   "CARD_IO_ERROR",
}

func (s SimState) String() string {
	if name, ok := simStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SimState(%d)", int(s))
}

var ErrUnknownSimState = errors.New("unknown SIM state")

// ParseSimState maps a wire-format state name to a SimState. Unrecognized
// names are reported as SimStateUnknown together with ErrUnknownSimState so
// callers can decide whether to reject the input or degrade gracefully.
func ParseSimState(name string) (SimState, error) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	for state, n := range simStateNames {
		if n == needle {
			return state, nil
		}
	}
	return SimStateUnknown, fmt.Errorf("%w: %q", ErrUnknownSimState, name)
}

// StatusMode is the display status derived from a SimState plus the device
// provisioning flag. It decides which message template contributes to the
// carrier text.
type StatusMode int

const (
	StatusNormal StatusMode = iota
	StatusNetworkLocked
	StatusSimMissing
	StatusSimMissingLocked
	StatusSimPukLocked
	StatusSimLocked
	StatusSimPermDisabled
	StatusSimNotReady
	StatusSimIOError
	StatusSimUnknown
)

var statusModeNames = map[StatusMode]string{
	StatusNormal:           "Normal",
	StatusNetworkLocked:    "NetworkLocked",
	StatusSimMissing:       "SimMissing",
	StatusSimMissingLocked: "SimMissingLocked",
	StatusSimPukLocked:     "SimPukLocked",
	StatusSimLocked:        "SimLocked",
	StatusSimPermDisabled:  "SimPermDisabled",
	StatusSimNotReady:      "SimNotReady",
	StatusSimIOError:       "SimIoError",
	StatusSimUnknown:       "SimUnknown",
}

func (m StatusMode) String() string {
	if name, ok := statusModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("StatusMode(%d)", int(m))
}

// RadioTech is the radio access technology a registration is riding on.
// Only the distinctions the resolver cares about are modelled; IWLAN marks
// data service routed over Wi-Fi calling.
type RadioTech int

const (
	RadioTechUnknown RadioTech = iota
	RadioTechGSM
	RadioTechUMTS
	RadioTechLTE
	RadioTechIWLAN
	RadioTechNR
)

var radioTechNames = map[RadioTech]string{
	RadioTechUnknown: "UNKNOWN",
	RadioTechGSM:     "GSM",
	RadioTechUMTS:    "UMTS",
	RadioTechLTE:     "LTE",
	RadioTechIWLAN:   "IWLAN",
	RadioTechNR:      "NR",
}

func (t RadioTech) String() string {
	if name, ok := radioTechNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RadioTech(%d)", int(t))
}

// ParseRadioTech maps a reported technology name to its RadioTech value.
// Unrecognized names come back as RadioTechUnknown without an error; new
// technologies a feed reports should degrade, not fail the update.
func ParseRadioTech(name string) RadioTech {
	for tech, n := range radioTechNames {
		if strings.EqualFold(n, name) {
			return tech
		}
	}
	return RadioTechUnknown
}

// NetworkType is the concrete network technology reported by the modem.
type NetworkType int

const (
	NetworkTypeUnknown NetworkType = iota
	NetworkTypeGPRS
	NetworkTypeEDGE
	NetworkTypeCDMA
	NetworkTypeUMTS
	NetworkTypeHSDPA
	NetworkTypeHSUPA
	NetworkTypeHSPA
	NetworkTypeLTE
	NetworkTypeLTECA
	NetworkTypeNR
)

var networkTypeNames = map[NetworkType]string{
	NetworkTypeUnknown: "UNKNOWN",
	NetworkTypeGPRS:    "GPRS",
	NetworkTypeEDGE:    "EDGE",
	NetworkTypeCDMA:    "CDMA",
	NetworkTypeUMTS:    "UMTS",
	NetworkTypeHSDPA:   "HSDPA",
	NetworkTypeHSUPA:   "HSUPA",
	NetworkTypeHSPA:    "HSPA",
	NetworkTypeLTE:     "LTE",
	NetworkTypeLTECA:   "LTE_CA",
	NetworkTypeNR:      "NR",
}

func (t NetworkType) String() string {
	if name, ok := networkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NetworkType(%d)", int(t))
}

// ParseNetworkType maps a reported network type name to its NetworkType
// value. Unrecognized names come back as NetworkTypeUnknown.
func ParseNetworkType(name string) NetworkType {
	for typ, n := range networkTypeNames {
		if strings.EqualFold(n, name) {
			return typ
		}
	}
	return NetworkTypeUnknown
}

// NetworkClass buckets network types into the marketing generation shown
// next to the carrier name.
type NetworkClass int

const (
	NetworkClassUnknown NetworkClass = iota
	NetworkClass2G
	NetworkClass3G
	NetworkClass4G
)

// Class maps a network type to its display generation. The mapping is total;
// unrecognized types fall back to NetworkClassUnknown.
func (t NetworkType) Class() NetworkClass {
	switch t {
	case NetworkTypeGPRS, NetworkTypeEDGE, NetworkTypeCDMA:
		return NetworkClass2G
	case NetworkTypeUMTS, NetworkTypeHSDPA, NetworkTypeHSUPA, NetworkTypeHSPA:
		return NetworkClass3G
	case NetworkTypeLTE, NetworkTypeLTECA, NetworkTypeNR:
		return NetworkClass4G
	default:
		return NetworkClassUnknown
	}
}

// Subscription identifies one active SIM slot. The list order is significant:
// slot 0 gets the faulty-card prefix treatment and the first entry donates its
// carrier name to the synthesized no-SIM message.
type Subscription struct {
	SubscriptionID int    `json:"subscription_id"`
	SlotIndex      int    `json:"slot_index"`
	CarrierName    string `json:"carrier_name"`
}

// ServiceState is the registration snapshot for one subscription, refreshed
// on every recompute.
type ServiceState struct {
	DataInService    bool        `json:"data_in_service"`
	VoiceInService   bool        `json:"voice_in_service"`
	DataRadioTech    RadioTech   `json:"data_radio_tech"`
	VoiceRadioTech   RadioTech   `json:"voice_radio_tech"`
	DataNetworkType  NetworkType `json:"data_network_type"`
	VoiceNetworkType NetworkType `json:"voice_network_type"`
}

// InService reports whether either domain is registered.
func (s ServiceState) InService() bool {
	return s.DataInService || s.VoiceInService
}

// NetworkType picks the type to display: the data side when its radio
// technology is known, else the voice side, else unknown.
func (s ServiceState) NetworkType() NetworkType {
	if s.DataRadioTech != RadioTechUnknown {
		return s.DataNetworkType
	}
	if s.VoiceRadioTech != RadioTechUnknown {
		return s.VoiceNetworkType
	}
	return NetworkTypeUnknown
}

// DataOnLTE reports whether data is registered on LTE or LTE-CA, the anchor
// requirement for showing the NSA 5G label.
func (s ServiceState) DataOnLTE() bool {
	return s.DataNetworkType == NetworkTypeLTE || s.DataNetworkType == NetworkTypeLTECA
}

// FiveGState is the non-standalone 5G connection state for a physical slot.
type FiveGState struct {
	NsaConnected bool `json:"nsa_connected"`
}

// WifiState is the Wi-Fi radio state used for the IWLAN carve-out: a stale
// IWLAN registration only counts as in-service while Wi-Fi is enabled and
// associated with an access point.
type WifiState struct {
	Enabled   bool `json:"enabled"`
	Connected bool `json:"connected"`
}

// NetworkNameBroadcast carries the sticky PLMN/SPN names the radio last
// announced. It is consulted only when no subscriptions are active.
type NetworkNameBroadcast struct {
	ShowPLMN bool   `json:"show_plmn"`
	PLMN     string `json:"plmn"`
	ShowSPN  bool   `json:"show_spn"`
	SPN      string `json:"spn"`
}

// StateSnapshot aggregates every provider output at one instant. Resolution
// reads only this value; it never reaches back into the providers.
type StateSnapshot struct {
	Subscriptions     []Subscription
	SimStates         map[int]SimState     // keyed by subscription id
	ServiceStates     map[int]ServiceState // keyed by subscription id
	FiveGStates       map[int]FiveGState   // keyed by slot index
	Wifi              WifiState
	AirplaneMode      bool
	DeviceProvisioned bool
	TelephonyCapable  bool
	Broadcast         *NetworkNameBroadcast
}

// SimStateFor returns the reported state for a subscription, or SimStateNone
// when nothing has been reported yet.
func (s StateSnapshot) SimStateFor(subscriptionID int) SimState {
	return s.SimStates[subscriptionID]
}

// ServiceStateFor returns the service state for a subscription if one was
// captured.
func (s StateSnapshot) ServiceStateFor(subscriptionID int) (ServiceState, bool) {
	ss, ok := s.ServiceStates[subscriptionID]
	return ss, ok
}

// FiveGStateFor returns the NSA 5G state for a slot; missing slots read as
// not connected.
func (s StateSnapshot) FiveGStateFor(slotIndex int) FiveGState {
	return s.FiveGStates[slotIndex]
}
