package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/domain/resolver"
	"github.com/xlxfoxxlx/carrierd/internal/logger"
	"github.com/xlxfoxxlx/carrierd/internal/presentation"
)

const defaultListLimit = 50

// Transformer applies a presentation transform to the resolved text.
// *presentation.Transformer satisfies it.
type Transformer interface {
	Apply(s string) string
}

var _ Transformer = (*presentation.Transformer)(nil)

// carrierTextService implements the CarrierTextService interface. It owns the
// resolver (and with it the sticky error flags) and serializes every
// recompute behind one mutex.
type carrierTextService struct {
	resolver    *resolver.Resolver
	providers   ports.TelephonyProviders
	nameRepo    ports.CarrierNameRepository
	historyRepo ports.StatusHistoryRepository // Optional
	cache       ports.CacheRepository         // Optional
	transform   Transformer                   // Optional
	logger      logger.Logger

	mu      sync.Mutex
	current models.DisplayStatus

	refreshCh chan string
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopOnce  sync.Once
}

// NewCarrierTextService creates a new carrier text service instance.
// historyRepo, cache and transform may be nil.
func NewCarrierTextService(
	cfg resolver.Config,
	catalog ports.StringCatalog,
	providers ports.TelephonyProviders,
	nameRepo ports.CarrierNameRepository,
	historyRepo ports.StatusHistoryRepository,
	cache ports.CacheRepository,
	cacheTTLSeconds int,
	transform Transformer,
) ports.CarrierTextService {
	log := logger.New("carrier-text-service", "")
	localizer := newCarrierNameLocalizer(nameRepo, cache, cacheTTLSeconds, log)

	return &carrierTextService{
		resolver:    resolver.New(cfg, catalog, localizer),
		providers:   providers,
		nameRepo:    nameRepo,
		historyRepo: historyRepo,
		cache:       cache,
		transform:   transform,
		logger:      log,
		refreshCh:   make(chan string, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// CurrentStatus returns the most recently resolved display status.
func (s *carrierTextService) CurrentStatus() models.DisplayStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Refresh pulls a snapshot, resolves it and replaces the current status.
func (s *carrierTextService) Refresh(ctx context.Context, trigger string) (models.DisplayStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.collectSnapshot(ctx)

	start := time.Now()
	result := s.resolver.Resolve(snap)
	logger.ResolveDuration.Observe(time.Since(start).Seconds())
	logger.ResolveTotal.WithLabelValues(trigger).Inc()
	s.publishErrorFlags()

	text := result.Text
	if s.transform != nil {
		text = s.transform.Apply(text)
	}

	status := models.DisplayStatus{
		Text:                    text,
		RawText:                 result.Text,
		AllSimsMissing:          result.AllSimsMissing,
		AnySimReadyAndInService: result.AnySimReadyAndInService,
		AirplaneMode:            snap.AirplaneMode,
		ResolvedAt:              time.Now().UTC(),
	}

	if status.Text != s.current.Text {
		logger.DisplayTextChanges.Inc()
		s.logger.Infow("Display text changed",
			"trigger", trigger,
			"text", status.Text,
			"previous", s.current.Text,
			"all_sims_missing", status.AllSimsMissing,
			"in_service", status.AnySimReadyAndInService,
		)
		s.recordTransition(ctx, status, s.current.Text, trigger)
	}

	s.current = status
	return status, nil
}

// RequestRefresh schedules an asynchronous recompute; pending requests
// coalesce through the 1-slot channel.
func (s *carrierTextService) RequestRefresh(trigger string) {
	select {
	case s.refreshCh <- trigger:
	default:
	}
}

// Start launches the background refresh loop and schedules the initial
// recompute.
func (s *carrierTextService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.refreshLoop(ctx)
	s.RequestRefresh("startup")
	s.logger.Info("✓ Carrier text service started")
}

// Stop terminates the refresh loop and waits for it to drain.
func (s *carrierTextService) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
	s.logger.Info("Carrier text service stopped")
}

func (s *carrierTextService) refreshLoop(ctx context.Context) {
	defer close(s.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case trigger := <-s.refreshCh:
			if _, err := s.Refresh(ctx, trigger); err != nil {
				s.logger.Errorw("Refresh failed", "trigger", trigger, "error", err)
			}
		}
	}
}

// collectSnapshot reads every provider synchronously. Provider failures and
// absent providers substitute zero values instead of aborting: a blank
// contribution is a valid display state, a failed recompute is not.
func (s *carrierTextService) collectSnapshot(ctx context.Context) models.StateSnapshot {
	snap := models.StateSnapshot{}

	if p := s.providers.Subscriptions; p != nil {
		subs, err := p.ActiveSubscriptions(ctx)
		if err != nil {
			s.logger.Warnw("Subscription provider failed, assuming none", "error", err)
		} else {
			snap.Subscriptions = subs
		}
	}
	if p := s.providers.SimStates; p != nil {
		states, err := p.SimStates(ctx)
		if err != nil {
			s.logger.Warnw("SIM state provider failed, assuming unreported", "error", err)
		} else {
			snap.SimStates = states
		}
	}
	if p := s.providers.ServiceStates; p != nil {
		states, err := p.ServiceStates(ctx)
		if err != nil {
			s.logger.Warnw("Service state provider failed, assuming out of service", "error", err)
		} else {
			snap.ServiceStates = states
		}
	}
	if p := s.providers.FiveG; p != nil {
		states, err := p.FiveGStates(ctx)
		if err != nil {
			s.logger.Warnw("5G state provider failed, assuming not connected", "error", err)
		} else {
			snap.FiveGStates = states
		}
	}
	if p := s.providers.Connectivity; p != nil {
		wifi, err := p.WifiState(ctx)
		if err != nil {
			s.logger.Warnw("Wi-Fi state unavailable, assuming disabled", "error", err)
		} else {
			snap.Wifi = wifi
		}
		airplane, err := p.AirplaneModeOn(ctx)
		if err != nil {
			s.logger.Warnw("Airplane mode state unavailable, assuming off", "error", err)
		} else {
			snap.AirplaneMode = airplane
		}
	}
	if p := s.providers.Device; p != nil {
		provisioned, err := p.DeviceProvisioned(ctx)
		if err != nil {
			s.logger.Warnw("Provisioning state unavailable, assuming provisioned", "error", err)
			provisioned = true
		}
		snap.DeviceProvisioned = provisioned

		capable, err := p.TelephonyCapable(ctx)
		if err != nil {
			s.logger.Warnw("Telephony capability unavailable, assuming incapable", "error", err)
		} else {
			snap.TelephonyCapable = capable
		}

		broadcast, err := p.NetworkNameBroadcast(ctx)
		if err != nil {
			s.logger.Debugw("Network name broadcast unavailable", "error", err)
		} else {
			snap.Broadcast = broadcast
		}
	} else {
		// No device provider at all: assume a provisioned, telephony-capable
		// device rather than flipping every absent SIM into the locked path.
		snap.DeviceProvisioned = true
		snap.TelephonyCapable = true
	}

	return snap
}

func (s *carrierTextService) publishErrorFlags() {
	for slot := 0; slot < s.resolver.SlotCount(); slot++ {
		val := 0.0
		if s.resolver.ErrorFlag(slot) {
			val = 1.0
		}
		logger.SimErrorFlag.WithLabelValues(strconv.Itoa(slot)).Set(val)
	}
}

func (s *carrierTextService) recordTransition(ctx context.Context, status models.DisplayStatus, previous, trigger string) {
	if s.historyRepo == nil {
		return
	}
	transition := &models.StatusTransition{
		Text:           status.Text,
		PreviousText:   previous,
		AllSimsMissing: status.AllSimsMissing,
		InService:      status.AnySimReadyAndInService,
		AirplaneMode:   status.AirplaneMode,
		Trigger:        trigger,
		ResolvedAt:     status.ResolvedAt,
	}
	if err := s.historyRepo.Record(ctx, transition); err != nil {
		s.logger.Warnw("Failed to record status transition", "error", err)
	}
}

// ListCarrierNames retrieves the substitution table with pagination.
func (s *carrierTextService) ListCarrierNames(ctx context.Context, offset, limit int) ([]*models.CarrierNameMapping, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	mappings, err := s.nameRepo.List(ctx, offset, limit)
	if err != nil {
		s.logger.Errorw("ListCarrierNames failed", "offset", offset, "limit", limit, "error", err)
		return nil, err
	}
	return mappings, nil
}

// UpsertCarrierName validates and stores a mapping, invalidates the cache
// entry and schedules a recompute since the displayed text may change.
func (s *carrierTextService) UpsertCarrierName(ctx context.Context, mapping *models.CarrierNameMapping) error {
	if err := models.ValidateCarrierNameMapping(mapping); err != nil {
		return err
	}
	if err := s.nameRepo.Upsert(ctx, mapping); err != nil {
		s.logger.Errorw("UpsertCarrierName failed", "original_name", mapping.OriginalName, "error", err)
		return fmt.Errorf("failed to upsert carrier name: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, mapping.OriginalName)
	}
	s.logger.Infow("Carrier name mapping stored", "original_name", mapping.OriginalName, "local_name", mapping.LocalName)
	s.RequestRefresh("carrier-names")
	return nil
}

// DeleteCarrierName removes a mapping and schedules a recompute.
func (s *carrierTextService) DeleteCarrierName(ctx context.Context, originalName string) error {
	if err := s.nameRepo.Delete(ctx, originalName); err != nil {
		s.logger.Errorw("DeleteCarrierName failed", "original_name", originalName, "error", err)
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, originalName)
	}
	s.logger.Infow("Carrier name mapping removed", "original_name", originalName)
	s.RequestRefresh("carrier-names")
	return nil
}

// History retrieves recent display-text transitions.
func (s *carrierTextService) History(ctx context.Context, limit int) ([]*models.StatusTransition, error) {
	if s.historyRepo == nil {
		return []*models.StatusTransition{}, nil
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.historyRepo.ListRecent(ctx, limit)
}
