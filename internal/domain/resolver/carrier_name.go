package resolver

import (
	"strings"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
)

// substituteCarrierName applies locale substitution and the network-class
// suffix to a carrier name. The name may be a compound of two segments joined
// by the separator (PLMN and SPN); each segment is substituted independently
// and adjacent duplicates are collapsed after substitution.
func (r *Resolver) substituteCarrierName(name, networkClass string) string {
	if (!r.cfg.ShowLocale && !r.cfg.ShowNetworkClass) || name == "" {
		return name
	}

	sep := r.catalog.Separator()
	segments := strings.SplitN(name, sep, 2)
	for i := range segments {
		if r.cfg.ShowLocale && r.localizer != nil {
			if local, ok := r.localizer.LocalName(segments[i]); ok {
				segments[i] = local
			}
		}
		if segments[i] != "" && networkClass != "" && r.cfg.ShowNetworkClass {
			segments[i] = segments[i] + " " + networkClass
		}
	}

	var b strings.Builder
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if i > 0 && seg == segments[i-1] {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(seg)
	}
	return b.String()
}

// networkClassLabel derives the 2G/3G/4G label for an in-service
// subscription, with the 5G label overriding when the slot is connected in
// NSA mode and data is anchored on LTE. Out-of-service subscriptions get no
// label.
func (r *Resolver) networkClassLabel(snap models.StateSnapshot, sub models.Subscription) string {
	ss, ok := snap.ServiceStateFor(sub.SubscriptionID)
	if !ok || !ss.InService() {
		return ""
	}

	if snap.FiveGStateFor(sub.SlotIndex).NsaConnected && ss.DataOnLTE() {
		return r.catalog.Message(models.MsgNetworkClass5G)
	}

	switch ss.NetworkType().Class() {
	case models.NetworkClass2G:
		return r.catalog.Message(models.MsgNetworkClass2G)
	case models.NetworkClass3G:
		return r.catalog.Message(models.MsgNetworkClass3G)
	case models.NetworkClass4G:
		return r.catalog.Message(models.MsgNetworkClass4G)
	default:
		return r.catalog.Message(models.MsgNetworkClassUnknown)
	}
}
