package catalog

import "github.com/xlxfoxxlx/carrierd/internal/domain/models"

// DefaultSeparator joins message fragments when no override is configured.
const DefaultSeparator = " | "

var defaultMessages = map[models.MessageKind]string{
	models.MsgMissingSim:          "No SIM card",
	models.MsgEmergencyCallsOnly:  "Emergency calls only",
	models.MsgNetworkLocked:       "Network locked",
	models.MsgSimLocked:           "SIM card is locked.",
	models.MsgSimPukLocked:        "SIM card is PUK-locked.",
	models.MsgSimPermDisabled:     "SIM card is disabled.",
	models.MsgSimError:            "Invalid card",
	models.MsgAirplaneMode:        "Airplane mode",
	models.MsgNetworkClassUnknown: "",
	models.MsgNetworkClass2G:      "2G",
	models.MsgNetworkClass3G:      "3G",
	models.MsgNetworkClass4G:      "4G",
	models.MsgNetworkClass5G:      "5G",
}

// Catalog is a static string catalog: a separator plus a message template per
// kind. Lookups are total; kinds without an entry resolve to "".
type Catalog struct {
	separator string
	messages  map[models.MessageKind]string
}

// New builds a catalog from the default English templates, a separator and
// per-kind overrides. Empty override values are honored: overriding a kind
// with "" silences that message.
func New(separator string, overrides map[models.MessageKind]string) *Catalog {
	if separator == "" {
		separator = DefaultSeparator
	}
	messages := make(map[models.MessageKind]string, len(defaultMessages))
	for kind, msg := range defaultMessages {
		messages[kind] = msg
	}
	for kind, msg := range overrides {
		messages[kind] = msg
	}
	return &Catalog{separator: separator, messages: messages}
}

// Default returns the English catalog with the standard separator.
func Default() *Catalog {
	return New(DefaultSeparator, nil)
}

func (c *Catalog) Separator() string {
	return c.separator
}

func (c *Catalog) Message(kind models.MessageKind) string {
	return c.messages[kind]
}
