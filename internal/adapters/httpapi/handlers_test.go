package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/adapters/store"
	"github.com/riskdash/riskdash/internal/core"
	"github.com/riskdash/riskdash/internal/utils"
)

func newTestServer() *Server {
	logger := zap.NewNop()
	service := core.NewAnalysisService(
		core.NewEvaluator(nil, nil),
		store.NewMemoryStore(nil),
		logger,
		nil,
	)
	return NewServer(service, utils.NewTextProcessor(nil), logger, "127.0.0.1:0", "test", 65536)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestAnalyze_MissingContent(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/analyze", map[string]any{"content": "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyze_SpamContent(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/analyze", map[string]any{
		"content":      "URGENT: Claim your $1000 prize NOW!",
		"message_type": "sms",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool            `json:"success"`
		Data    core.ScanRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Data.Result != core.ResultSpam {
		t.Errorf("result = %s, want spam", resp.Data.Result)
	}
	if resp.Data.ID == "" {
		t.Error("record id missing")
	}
	if resp.Data.Channel != core.ChannelSMS {
		t.Errorf("message_type = %s, want sms", resp.Data.Channel)
	}
}

func TestSocialMediaAnalyze_RequiresPlatforms(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/social-media/analyze", map[string]any{
		"content": "crypto giveaway",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSocialMediaAnalyze_OneVerdictPerPlatform(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/social-media/analyze", map[string]any{
		"content":   "free crypto giveaway, dm me now",
		"platforms": []string{"twitter", "instagram", "linkedin"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    []core.Verdict `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Errorf("verdicts = %d, want 3", len(resp.Data))
	}
}

func TestScans_ListAndGet(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodPost, "/api/analyze", map[string]any{
		"content": "Hi John, meeting tomorrow at 2 PM in Conference Room A.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d", w.Code)
	}

	list := doJSON(t, s, http.MethodGet, "/api/scans?limit=10", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d", list.Code)
	}

	var resp struct {
		Data []core.ScanRecord `json:"data"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("records = %d, want 1", len(resp.Data))
	}

	get := doJSON(t, s, http.MethodGet, "/api/scans/"+resp.Data[0].ID, nil)
	if get.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", get.Code)
	}
}

func TestScans_BadCursor(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodGet, "/api/scans?cursor=%25bad%25", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestScans_NotFound(t *testing.T) {
	s := newTestServer()

	if w := doJSON(t, s, http.MethodGet, "/api/scans/unknown-id", nil); w.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want 404", w.Code)
	}
	if w := doJSON(t, s, http.MethodDelete, "/api/scans/unknown-id", nil); w.Code != http.StatusNotFound {
		t.Errorf("delete status = %d, want 404", w.Code)
	}
}

func TestAnalytics(t *testing.T) {
	s := newTestServer()

	doJSON(t, s, http.MethodPost, "/api/analyze", map[string]any{
		"content": "URGENT: Claim your $1000 prize NOW!",
	})
	doJSON(t, s, http.MethodPost, "/api/analyze", map[string]any{
		"content": "Hi John, meeting tomorrow at 2 PM in Conference Room A.",
	})

	w := doJSON(t, s, http.MethodGet, "/api/analytics?days=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Data core.AnalyticsSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode analytics: %v", err)
	}
	if resp.Data.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Data.Total)
	}
	if resp.Data.SpamCount != 1 || resp.Data.CleanCount != 1 {
		t.Errorf("counts = %d spam / %d clean, want 1/1", resp.Data.SpamCount, resp.Data.CleanCount)
	}
	if resp.Data.WindowDays != 7 {
		t.Errorf("window_days = %d, want 7", resp.Data.WindowDays)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer()

	w := doJSON(t, s, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
