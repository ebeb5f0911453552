package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, " | ", c.Separator())
	assert.Equal(t, "No SIM card", c.Message(models.MsgMissingSim))
	assert.Equal(t, "Emergency calls only", c.Message(models.MsgEmergencyCallsOnly))
	assert.Equal(t, "Airplane mode", c.Message(models.MsgAirplaneMode))
	assert.Equal(t, "5G", c.Message(models.MsgNetworkClass5G))
}

func TestNew_Overrides(t *testing.T) {
	c := New(" - ", map[models.MessageKind]string{
		models.MsgMissingSim: "Keine SIM-Karte",
	})

	assert.Equal(t, " - ", c.Separator())
	assert.Equal(t, "Keine SIM-Karte", c.Message(models.MsgMissingSim))
	// Unoverridden kinds keep their defaults.
	assert.Equal(t, "Airplane mode", c.Message(models.MsgAirplaneMode))
}

func TestNew_EmptyOverrideSilencesMessage(t *testing.T) {
	c := New("", map[models.MessageKind]string{
		models.MsgAirplaneMode: "",
	})

	assert.Equal(t, DefaultSeparator, c.Separator())
	assert.Equal(t, "", c.Message(models.MsgAirplaneMode))
}

func TestMessage_UnknownKindIsEmpty(t *testing.T) {
	assert.Equal(t, "", Default().Message(models.MessageKind(999)))
}
