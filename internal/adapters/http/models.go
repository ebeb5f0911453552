package http

// ProblemDetails represents an error response following RFC 7807
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// StatusResponse represents the resolved carrier display status
type StatusResponse struct {
	Text           string `json:"text"`
	RawText        string `json:"raw_text"`
	AllSimsMissing bool   `json:"all_sims_missing"`
	InService      bool   `json:"in_service"`
	AirplaneMode   bool   `json:"airplane_mode"`
	ResolvedAt     string `json:"resolved_at"`
}

// SubscriptionRequest represents one active SIM slot in a subscriptions update
type SubscriptionRequest struct {
	SubscriptionID int    `json:"subscription_id"`
	SlotIndex      int    `json:"slot_index"`
	CarrierName    string `json:"carrier_name"`
}

// SubscriptionsRequest replaces the active subscription list
type SubscriptionsRequest struct {
	Subscriptions []SubscriptionRequest `json:"subscriptions"`
}

// SimStateRequest reports the card state for one subscription
type SimStateRequest struct {
	SubscriptionID int    `json:"subscription_id"`
	State          string `json:"state" binding:"required"`
}

// ServiceStateRequest reports the registration state for one subscription
type ServiceStateRequest struct {
	SubscriptionID   int    `json:"subscription_id"`
	DataInService    bool   `json:"data_in_service"`
	VoiceInService   bool   `json:"voice_in_service"`
	DataRadioTech    string `json:"data_radio_tech,omitempty"`
	VoiceRadioTech   string `json:"voice_radio_tech,omitempty"`
	DataNetworkType  string `json:"data_network_type,omitempty"`
	VoiceNetworkType string `json:"voice_network_type,omitempty"`
}

// FiveGStateRequest reports the NR connection state for one slot
type FiveGStateRequest struct {
	SlotIndex    int  `json:"slot_index"`
	NsaConnected bool `json:"nsa_connected"`
}

// ConnectivityRequest reports the Wi-Fi state
type ConnectivityRequest struct {
	WifiEnabled   bool `json:"wifi_enabled"`
	WifiConnected bool `json:"wifi_connected"`
}

// AirplaneModeRequest toggles airplane mode
type AirplaneModeRequest struct {
	On bool `json:"on"`
}

// DeviceStateRequest reports device provisioning and telephony capability
type DeviceStateRequest struct {
	Provisioned      *bool `json:"provisioned,omitempty"`
	TelephonyCapable *bool `json:"telephony_capable,omitempty"`
}

// NetworkNameRequest reports the broadcast operator name used when no SIM
// carrier name is available
type NetworkNameRequest struct {
	ShowPLMN bool   `json:"show_plmn"`
	PLMN     string `json:"plmn"`
	ShowSPN  bool   `json:"show_spn"`
	SPN      string `json:"spn"`
}

// CarrierNameRequest represents a carrier name substitution entry
type CarrierNameRequest struct {
	OriginalName string `json:"original_name" binding:"required"`
	LocalName    string `json:"local_name" binding:"required"`
}

// CarrierNameResponse represents a carrier name substitution entry
type CarrierNameResponse struct {
	ID           int64  `json:"id"`
	OriginalName string `json:"original_name"`
	LocalName    string `json:"local_name"`
	UpdatedAt    string `json:"updated_at"`
}

// TransitionResponse represents one display-text transition
type TransitionResponse struct {
	ID             int64  `json:"id"`
	Text           string `json:"text"`
	PreviousText   string `json:"previous_text"`
	AllSimsMissing bool   `json:"all_sims_missing"`
	InService      bool   `json:"in_service"`
	AirplaneMode   bool   `json:"airplane_mode"`
	Trigger        string `json:"trigger"`
	ResolvedAt     string `json:"resolved_at"`
}
