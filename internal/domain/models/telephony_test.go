package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSimState(t *testing.T) {
	tests := []struct {
		input   string
		want    SimState
		wantErr bool
	}{
		{"READY", SimStateReady, false},
		{"ready", SimStateReady, false},
		{" Absent ", SimStateAbsent, false},
		{"PIN_REQUIRED", SimStatePinRequired, false},
		{"CARD_IO_ERROR", SimStateCardIOError, false},
		{"NONE", SimStateNone, false},
		{"bogus", SimStateUnknown, true},
		{"", SimStateUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSimState(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSimState)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimStateString(t *testing.T) {
	assert.Equal(t, "READY", SimStateReady.String())
	assert.Equal(t, "SimState(42)", SimState(42).String())
}

func TestParseRadioTech(t *testing.T) {
	assert.Equal(t, RadioTechLTE, ParseRadioTech("LTE"))
	assert.Equal(t, RadioTechIWLAN, ParseRadioTech("iwlan"))
	assert.Equal(t, RadioTechUnknown, ParseRadioTech("5G-FOO"))
}

func TestParseNetworkType(t *testing.T) {
	assert.Equal(t, NetworkTypeLTECA, ParseNetworkType("lte_ca"))
	assert.Equal(t, NetworkTypeHSPA, ParseNetworkType("HSPA"))
	assert.Equal(t, NetworkTypeUnknown, ParseNetworkType("wimax"))
}

func TestNetworkTypeClass(t *testing.T) {
	tests := []struct {
		typ  NetworkType
		want NetworkClass
	}{
		{NetworkTypeGPRS, NetworkClass2G},
		{NetworkTypeEDGE, NetworkClass2G},
		{NetworkTypeCDMA, NetworkClass2G},
		{NetworkTypeUMTS, NetworkClass3G},
		{NetworkTypeHSDPA, NetworkClass3G},
		{NetworkTypeHSUPA, NetworkClass3G},
		{NetworkTypeHSPA, NetworkClass3G},
		{NetworkTypeLTE, NetworkClass4G},
		{NetworkTypeLTECA, NetworkClass4G},
		{NetworkTypeNR, NetworkClass4G},
		{NetworkTypeUnknown, NetworkClassUnknown},
		{NetworkType(99), NetworkClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Class())
		})
	}
}

func TestServiceStateInService(t *testing.T) {
	assert.False(t, ServiceState{}.InService())
	assert.True(t, ServiceState{DataInService: true}.InService())
	assert.True(t, ServiceState{VoiceInService: true}.InService())
}

func TestServiceStateNetworkType(t *testing.T) {
	// Data side wins while its radio tech is known.
	ss := ServiceState{
		DataRadioTech:    RadioTechLTE,
		DataNetworkType:  NetworkTypeLTE,
		VoiceRadioTech:   RadioTechUMTS,
		VoiceNetworkType: NetworkTypeUMTS,
	}
	assert.Equal(t, NetworkTypeLTE, ss.NetworkType())

	ss.DataRadioTech = RadioTechUnknown
	assert.Equal(t, NetworkTypeUMTS, ss.NetworkType())

	ss.VoiceRadioTech = RadioTechUnknown
	assert.Equal(t, NetworkTypeUnknown, ss.NetworkType())
}

func TestServiceStateDataOnLTE(t *testing.T) {
	assert.True(t, ServiceState{DataNetworkType: NetworkTypeLTE}.DataOnLTE())
	assert.True(t, ServiceState{DataNetworkType: NetworkTypeLTECA}.DataOnLTE())
	assert.False(t, ServiceState{DataNetworkType: NetworkTypeNR}.DataOnLTE())
}

func TestStateSnapshotAccessors(t *testing.T) {
	snap := StateSnapshot{
		SimStates:     map[int]SimState{1: SimStateReady},
		ServiceStates: map[int]ServiceState{1: {DataInService: true}},
		FiveGStates:   map[int]FiveGState{0: {NsaConnected: true}},
	}

	assert.Equal(t, SimStateReady, snap.SimStateFor(1))
	assert.Equal(t, SimStateNone, snap.SimStateFor(2))

	ss, ok := snap.ServiceStateFor(1)
	assert.True(t, ok)
	assert.True(t, ss.DataInService)
	_, ok = snap.ServiceStateFor(2)
	assert.False(t, ok)

	assert.True(t, snap.FiveGStateFor(0).NsaConnected)
	assert.False(t, snap.FiveGStateFor(1).NsaConnected)
}
