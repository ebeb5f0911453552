package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xlxfoxxlx/carrierd/internal/domain/models"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
)

// Handler handles HTTP requests for the carrier text service
type Handler struct {
	service ports.CarrierTextService
	sink    ports.TelephonyStateSink
}

// NewHandler creates a new HTTP handler
func NewHandler(service ports.CarrierTextService, sink ports.TelephonyStateSink) *Handler {
	return &Handler{
		service: service,
		sink:    sink,
	}
}

// GetStatus handles GET /carrier-text/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	status := h.service.CurrentStatus()
	c.JSON(http.StatusOK, statusResponse(status))
}

// PostRefresh handles POST /carrier-text/v1/refresh. The recompute runs
// synchronously so the caller sees the text its update produced.
func (h *Handler) PostRefresh(c *gin.Context) {
	status, err := h.service.Refresh(c.Request.Context(), "api")
	if err != nil {
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "Failed to refresh carrier status",
		})
		return
	}

	c.JSON(http.StatusOK, statusResponse(status))
}

// PutSubscriptions handles PUT /api/v1/telephony/subscriptions
func (h *Handler) PutSubscriptions(c *gin.Context) {
	var req SubscriptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	subs := make([]models.Subscription, 0, len(req.Subscriptions))
	for _, s := range req.Subscriptions {
		subs = append(subs, models.Subscription{
			SubscriptionID: s.SubscriptionID,
			SlotIndex:      s.SlotIndex,
			CarrierName:    s.CarrierName,
		})
	}

	h.sink.SetSubscriptions(subs)
	h.service.RequestRefresh("subscriptions")
	c.JSON(http.StatusAccepted, gin.H{"message": "Subscriptions updated"})
}

// PutSimState handles PUT /api/v1/telephony/sim-states
func (h *Handler) PutSimState(c *gin.Context) {
	var req SimStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	state, err := models.ParseSimState(req.State)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetSimState(req.SubscriptionID, state)
	h.service.RequestRefresh("sim-state")
	c.JSON(http.StatusAccepted, gin.H{"message": "SIM state updated"})
}

// PutServiceState handles PUT /api/v1/telephony/service-states
func (h *Handler) PutServiceState(c *gin.Context) {
	var req ServiceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetServiceState(req.SubscriptionID, models.ServiceState{
		DataInService:    req.DataInService,
		VoiceInService:   req.VoiceInService,
		DataRadioTech:    models.ParseRadioTech(req.DataRadioTech),
		VoiceRadioTech:   models.ParseRadioTech(req.VoiceRadioTech),
		DataNetworkType:  models.ParseNetworkType(req.DataNetworkType),
		VoiceNetworkType: models.ParseNetworkType(req.VoiceNetworkType),
	})
	h.service.RequestRefresh("service-state")
	c.JSON(http.StatusAccepted, gin.H{"message": "Service state updated"})
}

// PutFiveGState handles PUT /api/v1/telephony/five-g
func (h *Handler) PutFiveGState(c *gin.Context) {
	var req FiveGStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetFiveGState(req.SlotIndex, models.FiveGState{NsaConnected: req.NsaConnected})
	h.service.RequestRefresh("five-g")
	c.JSON(http.StatusAccepted, gin.H{"message": "5G state updated"})
}

// PutConnectivity handles PUT /api/v1/telephony/connectivity
func (h *Handler) PutConnectivity(c *gin.Context) {
	var req ConnectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetWifiState(models.WifiState{
		Enabled:   req.WifiEnabled,
		Connected: req.WifiConnected,
	})
	h.service.RequestRefresh("connectivity")
	c.JSON(http.StatusAccepted, gin.H{"message": "Connectivity updated"})
}

// PutAirplaneMode handles PUT /api/v1/telephony/airplane-mode
func (h *Handler) PutAirplaneMode(c *gin.Context) {
	var req AirplaneModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetAirplaneMode(req.On)
	h.service.RequestRefresh("airplane-mode")
	c.JSON(http.StatusAccepted, gin.H{"message": "Airplane mode updated"})
}

// PutDeviceState handles PUT /api/v1/telephony/device-state
func (h *Handler) PutDeviceState(c *gin.Context) {
	var req DeviceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if req.Provisioned != nil {
		h.sink.SetDeviceProvisioned(*req.Provisioned)
	}
	if req.TelephonyCapable != nil {
		h.sink.SetTelephonyCapable(*req.TelephonyCapable)
	}
	h.service.RequestRefresh("device-state")
	c.JSON(http.StatusAccepted, gin.H{"message": "Device state updated"})
}

// PutNetworkName handles PUT /api/v1/telephony/network-name
func (h *Handler) PutNetworkName(c *gin.Context) {
	var req NetworkNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	h.sink.SetNetworkNameBroadcast(&models.NetworkNameBroadcast{
		ShowPLMN: req.ShowPLMN,
		PLMN:     req.PLMN,
		ShowSPN:  req.ShowSPN,
		SPN:      req.SPN,
	})
	h.service.RequestRefresh("network-name")
	c.JSON(http.StatusAccepted, gin.H{"message": "Network name updated"})
}

// ListCarrierNames handles GET /api/v1/carrier-names
func (h *Handler) ListCarrierNames(c *gin.Context) {
	offset := intQuery(c, "offset", 0)
	limit := intQuery(c, "limit", 50)

	mappings, err := h.service.ListCarrierNames(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "Failed to list carrier names",
		})
		return
	}

	responses := make([]CarrierNameResponse, 0, len(mappings))
	for _, m := range mappings {
		responses = append(responses, CarrierNameResponse{
			ID:           m.ID,
			OriginalName: m.OriginalName,
			LocalName:    m.LocalName,
			UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// PutCarrierName handles PUT /api/v1/carrier-names
func (h *Handler) PutCarrierName(c *gin.Context) {
	var req CarrierNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	mapping := &models.CarrierNameMapping{
		OriginalName: req.OriginalName,
		LocalName:    req.LocalName,
	}

	if err := h.service.UpsertCarrierName(c.Request.Context(), mapping); err != nil {
		if errors.Is(err, models.ErrEmptyOriginalName) || errors.Is(err, models.ErrEmptyLocalName) {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "Failed to store carrier name",
		})
		return
	}

	c.JSON(http.StatusOK, CarrierNameResponse{
		ID:           mapping.ID,
		OriginalName: mapping.OriginalName,
		LocalName:    mapping.LocalName,
		UpdatedAt:    mapping.UpdatedAt.Format(time.RFC3339),
	})
}

// DeleteCarrierName handles DELETE /api/v1/carrier-names/:name
func (h *Handler) DeleteCarrierName(c *gin.Context) {
	name := c.Param("name")

	if err := h.service.DeleteCarrierName(c.Request.Context(), name); err != nil {
		if errors.Is(err, models.ErrMappingNotFound) {
			c.JSON(http.StatusNotFound, ProblemDetails{
				Type:   "about:blank",
				Title:  "Not Found",
				Status: http.StatusNotFound,
				Detail: "Carrier name mapping not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "Failed to delete carrier name",
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// GetHistory handles GET /api/v1/history
func (h *Handler) GetHistory(c *gin.Context) {
	limit := intQuery(c, "limit", 20)

	transitions, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ProblemDetails{
			Type:   "about:blank",
			Title:  "Internal Server Error",
			Status: http.StatusInternalServerError,
			Detail: "Failed to retrieve history",
		})
		return
	}

	responses := make([]TransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		responses = append(responses, TransitionResponse{
			ID:             t.ID,
			Text:           t.Text,
			PreviousText:   t.PreviousText,
			AllSimsMissing: t.AllSimsMissing,
			InService:      t.InService,
			AirplaneMode:   t.AirplaneMode,
			Trigger:        t.Trigger,
			ResolvedAt:     t.ResolvedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "carrierd",
	})
}

func statusResponse(status models.DisplayStatus) StatusResponse {
	return StatusResponse{
		Text:           status.Text,
		RawText:        status.RawText,
		AllSimsMissing: status.AllSimsMissing,
		InService:      status.AnySimReadyAndInService,
		AirplaneMode:   status.AirplaneMode,
		ResolvedAt:     status.ResolvedAt.Format(time.RFC3339),
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:   "about:blank",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
