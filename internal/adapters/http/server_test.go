package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xlxfoxxlx/carrierd/internal/adapters/memory"
	"github.com/xlxfoxxlx/carrierd/internal/catalog"
	"github.com/xlxfoxxlx/carrierd/internal/domain/ports"
	"github.com/xlxfoxxlx/carrierd/internal/domain/resolver"
	"github.com/xlxfoxxlx/carrierd/internal/domain/service"
)

func newTestService(hub *memory.TelephonyStateHub, cfg resolver.Config) ports.CarrierTextService {
	return service.NewCarrierTextService(
		cfg,
		catalog.Default(),
		hub.Providers(),
		memory.NewInMemoryCarrierNameRepository(),
		memory.NewInMemoryStatusHistoryRepository(),
		nil,
		0,
		nil,
	)
}

// newTestServer wires the full in-memory stack behind a test HTTP server
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := memory.NewTelephonyStateHub()
	svc := newTestService(hub, resolver.Config{
		ShowMissingSim:       true,
		ShowAirplaneMode:     true,
		ShowLocale:           true,
		EmergencyCallCapable: true,
		SlotCount:            2,
	})

	router := SetupRouter(svc, hub, "")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, payload
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "healthy")
}

func TestGetStatus_MissingSim(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/carrier-text/v1/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "No SIM card | Emergency calls only", status.Text)
	assert.True(t, status.AllSimsMissing)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/carrier-text/v1/status", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "No SIM card | Emergency calls only", status.Text)
}

func TestTelephonyUpdates_DriveStatus(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/subscriptions", SubscriptionsRequest{
		Subscriptions: []SubscriptionRequest{
			{SubscriptionID: 1, SlotIndex: 0, CarrierName: "Acme Mobile"},
		},
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/sim-states", SimStateRequest{
		SubscriptionID: 1,
		State:          "READY",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/service-states", ServiceStateRequest{
		SubscriptionID:  1,
		DataInService:   true,
		DataRadioTech:   "LTE",
		DataNetworkType: "LTE",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/carrier-text/v1/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "Acme Mobile", status.Text)
	assert.True(t, status.InService)
	assert.False(t, status.AllSimsMissing)
}

func TestPutSimState_InvalidState(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/sim-states", SimStateRequest{
		SubscriptionID: 1,
		State:          "BROKEN",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "unknown SIM state")
}

func TestAirplaneMode_OverridesText(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/airplane-mode", AirplaneModeRequest{On: true})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/carrier-text/v1/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "Airplane mode", status.Text)
	assert.True(t, status.AirplaneMode)
}

func TestCarrierNames_CRUD(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/v1/carrier-names", CarrierNameRequest{
		OriginalName: "Acme Mobile",
		LocalName:    "Acme Mobil",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created CarrierNameResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Acme Mobile", created.OriginalName)
	assert.Equal(t, "Acme Mobil", created.LocalName)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/carrier-names", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []CarrierNameResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Mobil", list[0].LocalName)

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/carrier-names/Acme%20Mobile", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/carrier-names/Acme%20Mobile", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPutCarrierName_Invalid(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPut, ts.URL+"/api/v1/carrier-names", map[string]string{
		"original_name": "Acme Mobile",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory_RecordsTransitions(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/carrier-text/v1/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/v1/telephony/airplane-mode", AirplaneModeRequest{On: true})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/carrier-text/v1/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/v1/history?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var transitions []TransitionResponse
	require.NoError(t, json.Unmarshal(body, &transitions))
	require.NotEmpty(t, transitions)
	assert.Equal(t, "Airplane mode", transitions[0].Text)
}

func TestServer_H2C(t *testing.T) {
	hub := memory.NewTelephonyStateHub()
	svc := newTestService(hub, resolver.Config{
		ShowMissingSim:       true,
		EmergencyCallCapable: true,
		SlotCount:            1,
	})

	server := NewServer(ServerConfig{
		ListenAddr: "127.0.0.1:0",
		EnableH2C:  true,
	}, svc, hub)

	require.NoError(t, server.Start())
	defer server.Stop()

	// Plain HTTP/1.1 requests are still served over the h2c handler.
	resp, err := http.Get(fmt.Sprintf("http://%s/health", server.GetAddr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, server.IsRunning())
}

func TestServer_Stop(t *testing.T) {
	hub := memory.NewTelephonyStateHub()
	svc := newTestService(hub, resolver.Config{SlotCount: 1})

	server := NewServer(ServerConfig{ListenAddr: "127.0.0.1:0"}, svc, hub)
	require.NoError(t, server.Start())

	assert.NoError(t, server.Stop())
	assert.NoError(t, server.Stop())
}
