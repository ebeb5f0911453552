package resolver

import (
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// Config enumerates the feature toggles of the resolution engine. Each flag
// independently enables one branch of the recompute.
type Config struct {
	ShowMissingSim       bool
	ShowAirplaneMode     bool
	ShowLocale           bool
	ShowNetworkClass     bool
	EmergencyCallCapable bool

	// SlotCount is the number of physical SIM slots, fixed at construction.
	// It sizes the sticky I/O-error flag table.
	SlotCount int
}

// Result is the outcome of one recompute.
type Result struct {
	Text                    string
	AllSimsMissing          bool
	AnySimReadyAndInService bool
}

// Resolver maps a telephony state snapshot to a display string. The sticky
// per-slot I/O-error flags are its only mutable state; everything else is
// pure per invocation. Callers must serialize Resolve.
type Resolver struct {
	cfg        Config
	catalog    ports.StringCatalog
	localizer  ports.Localizer
	errorFlags []bool
}

// New creates a resolver. A nil localizer disables name substitution even
// when ShowLocale is set.
func New(cfg Config, catalog ports.StringCatalog, localizer ports.Localizer) *Resolver {
	if cfg.SlotCount <= 0 {
		cfg.SlotCount = 1
	}
	return &Resolver{
		cfg:        cfg,
		catalog:    catalog,
		localizer:  localizer,
		errorFlags: make([]bool, cfg.SlotCount),
	}
}

// StatusForSimState derives the display status for a SIM state. The mapping
// is total: any unrecognized state resolves to StatusSimUnknown. An unset
// state resolves to Normal because the card is assumed present while it is
// still being read. When the device is not provisioned, Absent and
// PermDisabled are treated as NetworkLocked before mapping.
func StatusForSimState(state models.SimState, deviceProvisioned bool) models.StatusMode {
	if state == models.SimStateNone {
		return models.StatusNormal
	}

	missingAndNotProvisioned := !deviceProvisioned &&
		(state == models.SimStateAbsent || state == models.SimStatePermDisabled)
	if missingAndNotProvisioned {
		state = models.SimStateNetworkLocked
	}

	switch state {
	case models.SimStateAbsent:
		return models.StatusSimMissing
	case models.SimStateNetworkLocked:
		return models.StatusSimMissingLocked
	case models.SimStateNotReady:
		return models.StatusSimNotReady
	case models.SimStatePinRequired:
		return models.StatusSimLocked
	case models.SimStatePukRequired:
		return models.StatusSimPukLocked
	case models.SimStateReady:
		return models.StatusNormal
	case models.SimStatePermDisabled:
		return models.StatusSimPermDisabled
	case models.SimStateUnknown:
		return models.StatusSimUnknown
	case models.SimStateCardIOError:
		return models.StatusSimIOError
	}
	return models.StatusSimUnknown
}

// Resolve computes the display string for one state snapshot and updates the
// sticky error flags as a side effect.
func (r *Resolver) Resolve(snap models.StateSnapshot) Result {
	allSimsMissing := true
	anySimReadyAndInService := false
	displayText := ""

	for _, sub := range snap.Subscriptions {
		simState := snap.SimStateFor(sub.SubscriptionID)
		status := StatusForSimState(simState, snap.DeviceProvisioned)
		r.trackErrorFlag(sub.SlotIndex, status)

		networkClass := ""
		if r.cfg.ShowNetworkClass {
			networkClass = r.networkClassLabel(snap, sub)
		}
		carrierName := r.substituteCarrierName(sub.CarrierName, networkClass)

		if msg, ok := r.messageForStatus(status, carrierName); ok {
			allSimsMissing = false
			displayText = r.concatenate(displayText, msg)
		}

		if simState == models.SimStateReady && r.readyAndInService(snap, sub.SubscriptionID) {
			anySimReadyAndInService = true
		}
	}

	if allSimsMissing {
		displayText = r.missingSimText(snap)
	}

	displayText = r.applyIOErrorOverlay(displayText, allSimsMissing)

	// Airplane mode is not the same as having no carrier: services like
	// Wi-Fi calling may keep a SIM in service while the radios are off. Only
	// once nothing is truly in service does airplane mode win over any
	// accumulated carrier text.
	if !anySimReadyAndInService && snap.AirplaneMode {
		displayText = r.airplaneModeText()
	}

	return Result{
		Text:                    displayText,
		AllSimsMissing:          allSimsMissing,
		AnySimReadyAndInService: anySimReadyAndInService,
	}
}

// ErrorFlag reports the sticky I/O-error flag for a slot. Out-of-range slots
// read as false.
func (r *Resolver) ErrorFlag(slotIndex int) bool {
	if slotIndex < 0 || slotIndex >= len(r.errorFlags) {
		return false
	}
	return r.errorFlags[slotIndex]
}

// SlotCount returns the number of tracked physical slots.
func (r *Resolver) SlotCount() int {
	return len(r.errorFlags)
}

// trackErrorFlag applies the flag transition rule: a slot's flag becomes true
// when its resolved status is SimIoError and false when the status moves
// away. Slots not covered by any subscription keep their previous value.
func (r *Resolver) trackErrorFlag(slotIndex int, status models.StatusMode) {
	if slotIndex < 0 || slotIndex >= len(r.errorFlags) {
		return
	}
	r.errorFlags[slotIndex] = status == models.StatusSimIOError
}

// messageForStatus builds the text contribution of one subscription. ok is
// false for the missing/unknown states: no contribution, and the SIM counts
// as truly absent. SimNotReady contributes an empty string instead, which
// shows nothing yet without counting as missing.
func (r *Resolver) messageForStatus(status models.StatusMode, carrierText string) (string, bool) {
	switch status {
	case models.StatusNormal:
		return carrierText, true
	case models.StatusSimNotReady:
		return "", true
	case models.StatusNetworkLocked:
		return r.emergencyExtend(r.catalog.Message(models.MsgNetworkLocked), carrierText), true
	case models.StatusSimPermDisabled:
		return r.emergencyExtend(r.catalog.Message(models.MsgSimPermDisabled), carrierText), true
	case models.StatusSimLocked:
		return r.emergencyExtend(r.catalog.Message(models.MsgSimLocked), carrierText), true
	case models.StatusSimPukLocked:
		return r.emergencyExtend(r.catalog.Message(models.MsgSimPukLocked), carrierText), true
	case models.StatusSimIOError:
		return r.emergencyExtend(r.catalog.Message(models.MsgSimError), carrierText), true
	}
	// SimMissing, SimMissingLocked, SimUnknown
	return "", false
}

// emergencyExtend appends the emergency-call message to a status message on
// devices that can place emergency calls; otherwise the message is returned
// unchanged.
func (r *Resolver) emergencyExtend(primary, emergencyText string) string {
	if r.cfg.EmergencyCallCapable {
		return r.concatenate(primary, emergencyText)
	}
	return primary
}

// concatenate joins two fragments with the catalog separator, dropping empty
// ones. The empty string is the identity, which makes the fold over an
// arbitrary number of fragments associative.
func (r *Resolver) concatenate(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + r.catalog.Separator() + b
	case a != "":
		return a
	case b != "":
		return b
	default:
		return ""
	}
}

// missingSimText synthesizes the no-SIM message. With subscriptions present
// the first one donates its carrier name; with none, the sticky network-name
// broadcast supplies PLMN/SPN, collapsed to one value when they match.
func (r *Resolver) missingSimText(snap models.StateSnapshot) string {
	missing := ""
	if r.cfg.ShowMissingSim && snap.TelephonyCapable {
		missing = r.catalog.Message(models.MsgMissingSim)
	}

	if len(snap.Subscriptions) != 0 {
		return r.emergencyExtend(missing, snap.Subscriptions[0].CarrierName)
	}

	text := r.catalog.Message(models.MsgEmergencyCallsOnly)
	if b := snap.Broadcast; b != nil {
		spn := ""
		plmn := ""
		if b.ShowSPN {
			spn = b.SPN
		}
		if b.ShowPLMN {
			plmn = b.PLMN
		}
		if plmn == spn {
			text = plmn
		} else {
			text = r.concatenate(plmn, spn)
		}
	}
	return r.emergencyExtend(missing, text)
}

// applyIOErrorOverlay decorates the text for slots whose sticky error flag is
// set. When no valid SIM produced a message the first faulty slot wins
// globally and the overlay short-circuits to just the invalid-card message.
// Otherwise slot 0 prepends and any other slot appends, giving at most a
// double-sided overlay.
func (r *Resolver) applyIOErrorOverlay(text string, allSimsMissing bool) string {
	errText, _ := r.messageForStatus(models.StatusSimIOError, "")
	for slot := 0; slot < len(r.errorFlags); slot++ {
		if !r.errorFlags[slot] {
			continue
		}
		if allSimsMissing {
			return r.concatenate(errText, r.catalog.Message(models.MsgEmergencyCallsOnly))
		}
		if slot == 0 {
			text = r.concatenate(errText, text)
		} else {
			text = r.concatenate(text, errText)
		}
	}
	return text
}

func (r *Resolver) airplaneModeText() string {
	if r.cfg.ShowAirplaneMode {
		return r.catalog.Message(models.MsgAirplaneMode)
	}
	return ""
}

// readyAndInService reports whether a subscription has data service worth
// counting. IWLAN registrations do not turn off immediately once Wi-Fi is
// disassociated or disabled, so they only count while Wi-Fi is enabled and
// associated with an access point.
func (r *Resolver) readyAndInService(snap models.StateSnapshot, subscriptionID int) bool {
	ss, ok := snap.ServiceStateFor(subscriptionID)
	if !ok || !ss.DataInService {
		return false
	}
	if ss.DataRadioTech == models.RadioTechIWLAN {
		return snap.Wifi.Enabled && snap.Wifi.Connected
	}
	return true
}
