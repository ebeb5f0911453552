package models

import (
	"errors"
	"strings"
	"time"
)

// MessageKind identifies a localized message template in the string catalog.
type MessageKind int

const (
	MsgMissingSim MessageKind = iota
	MsgEmergencyCallsOnly
	MsgNetworkLocked
	MsgSimLocked
	MsgSimPukLocked
	MsgSimPermDisabled
	MsgSimError
	MsgAirplaneMode
	MsgNetworkClassUnknown
	MsgNetworkClass2G
	MsgNetworkClass3G
	MsgNetworkClass4G
	MsgNetworkClass5G
)

// CarrierNameMapping is one entry of the original-to-local carrier name
// substitution table. Matching against OriginalName is case-insensitive.
type CarrierNameMapping struct {
	ID           int64     `json:"id" db:"id"`
	OriginalName string    `json:"original_name" db:"original_name"`
	LocalName    string    `json:"local_name" db:"local_name"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrEmptyOriginalName = errors.New("original carrier name must not be empty")
	ErrEmptyLocalName    = errors.New("local carrier name must not be empty")
	ErrMappingNotFound   = errors.New("carrier name mapping not found")
)

// ValidateCarrierNameMapping checks a mapping before it is persisted.
func ValidateCarrierNameMapping(m *CarrierNameMapping) error {
	if m == nil || strings.TrimSpace(m.OriginalName) == "" {
		return ErrEmptyOriginalName
	}
	if strings.TrimSpace(m.LocalName) == "" {
		return ErrEmptyLocalName
	}
	return nil
}

// StatusTransition records one change of the displayed carrier text.
type StatusTransition struct {
	ID             int64     `json:"id" db:"id"`
	Text           string    `json:"text" db:"text"`
	PreviousText   string    `json:"previous_text" db:"previous_text"`
	AllSimsMissing bool      `json:"all_sims_missing" db:"all_sims_missing"`
	InService      bool      `json:"in_service" db:"in_service"`
	AirplaneMode   bool      `json:"airplane_mode" db:"airplane_mode"`
	Trigger        string    `json:"trigger" db:"trigger"`
	ResolvedAt     time.Time `json:"resolved_at" db:"resolved_at"`
}

// DisplayStatus is the externally visible output of a recompute.
type DisplayStatus struct {
	Text                    string    `json:"text"`
	RawText                 string    `json:"raw_text"`
	AllSimsMissing          bool      `json:"all_sims_missing"`
	AnySimReadyAndInService bool      `json:"any_sim_ready_and_in_service"`
	AirplaneMode            bool      `json:"airplane_mode"`
	ResolvedAt              time.Time `json:"resolved_at"`
}
