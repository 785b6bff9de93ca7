package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateActivationRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/activations/v1", bytes.NewReader([]byte(`{"title":"x"}`)))
	req.Header.Set("X-Request-Id", "req-act-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateActivationRequiresIdempotencyKeyHeader(t *testing.T) {
	server := newTestServer()
	payload := []byte(`{"title":"Spring launch","brief":"creator push","total_budget":100,"visibility":"private"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/activations/v1", bytes.NewReader(payload))
	req.Header.Set("X-Request-Id", "req-act-2")
	req.Header.Set("X-User-Id", "brand-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateActivationRejectsMalformedJSON(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/activations/v1", bytes.NewReader([]byte(`{"title":`)))
	req.Header.Set("X-Request-Id", "req-act-3")
	req.Header.Set("X-User-Id", "brand-1")
	req.Header.Set("Idempotency-Key", "idem-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListMyNotificationsRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/v1/mine", nil)
	req.Header.Set("X-Request-Id", "req-act-7")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListMyNotificationsReturnsEmptyFeed(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/v1/mine", nil)
	req.Header.Set("X-Request-Id", "req-act-8")
	req.Header.Set("X-User-Id", "creator-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Items []struct{} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty feed, got %d items", len(resp.Items))
	}
}

func TestAcceptInvitationRequiresUser(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/invitations/v1/inv-1/accept", nil)
	req.Header.Set("X-Request-Id", "req-act-4")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAcceptUnknownInvitationReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/invitations/v1/inv-missing/accept", nil)
	req.Header.Set("X-Request-Id", "req-act-5")
	req.Header.Set("X-User-Id", "creator-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestActivationFlowOverHTTP(t *testing.T) {
	server := newTestServer()
	server.activation.Store.SetBalance("brand-1", 500)

	payload := []byte(`{
		"title":"Spring launch",
		"brief":"creator push",
		"total_budget":120,
		"visibility":"private",
		"invitations":[{"creator_id":"creator-1","quoted_rate":120,"currency":"USD"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/activations/v1", bytes.NewReader(payload))
	req.Header.Set("X-Request-Id", "req-act-6")
	req.Header.Set("X-User-Id", "brand-1")
	req.Header.Set("Idempotency-Key", "idem-flow-1")
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var created struct {
		Invitations []struct {
			InvitationID string `json:"invitation_id"`
		} `json:"invitations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(created.Invitations) != 1 {
		t.Fatalf("expected one invitation, got %d", len(created.Invitations))
	}

	accept := httptest.NewRequest(http.MethodPost, "/api/invitations/v1/"+created.Invitations[0].InvitationID+"/accept", nil)
	accept.Header.Set("X-Request-Id", "req-act-7")
	accept.Header.Set("X-User-Id", "creator-1")

	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, accept)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on accept, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := server.activation.Store.LockedBalance("brand-1"); got != 120 {
		t.Fatalf("expected 120 locked after accept, got %v", got)
	}
}
