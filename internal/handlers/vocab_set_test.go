package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mikra-backend/internal/repository"
)

// stubVocabRepo keeps set flags in memory and mirrors the repository's
// exclusivity and not-found semantics.
type stubVocabRepo struct {
	sets    map[string]bool
	toggles int
}

func (s *stubVocabRepo) Activate(ctx context.Context, setID string) error {
	if _, ok := s.sets[setID]; !ok {
		return repository.ErrSetNotFound
	}
	for id := range s.sets {
		s.sets[id] = false
	}
	s.sets[setID] = true
	return nil
}

func (s *stubVocabRepo) Toggle(ctx context.Context, setID string) (bool, error) {
	if _, ok := s.sets[setID]; !ok {
		return false, repository.ErrSetNotFound
	}
	s.toggles++
	s.sets[setID] = !s.sets[setID]
	return s.sets[setID], nil
}

func activateRequest(setID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("setId", setID)

	req := httptest.NewRequest(http.MethodPost, "/vocab/sets/"+setID+"/activate", nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestVocabSetHandler_Activate_ExclusiveSingleActive(t *testing.T) {
	repo := &stubVocabRepo{sets: map[string]bool{"A": false, "B": true}}
	h := NewVocabSetHandler(repo, nil, zap.NewNop())

	rr := httptest.NewRecorder()
	h.Activate(rr, activateRequest("A"))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !repo.sets["A"] {
		t.Error("expected A to be active after activation")
	}
	if repo.sets["B"] {
		t.Error("expected B to be deactivated by activating A")
	}

	var payload struct {
		Success     bool   `json:"success"`
		ActiveSetID string `json:"activeSetId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success || payload.ActiveSetID != "A" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestVocabSetHandler_Activate_NotFound(t *testing.T) {
	repo := &stubVocabRepo{sets: map[string]bool{"A": false, "B": true}}
	h := NewVocabSetHandler(repo, nil, zap.NewNop())

	rr := httptest.NewRecorder()
	h.Activate(rr, activateRequest("missing"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if repo.sets["A"] || !repo.sets["B"] {
		t.Error("a failed activation must not mutate any set")
	}
}

func TestVocabSetHandler_Toggle_Involution(t *testing.T) {
	repo := &stubVocabRepo{sets: map[string]bool{"C": false}}
	h := NewVocabSetHandler(repo, nil, zap.NewNop())

	toggle := func() (bool, int) {
		body := []byte(`{"setId":"C"}`)
		req := httptest.NewRequest(http.MethodPost, "/vocab/sets/toggle-active", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		h.ToggleActive(rr, req)

		var payload struct {
			Success  bool   `json:"success"`
			SetID    string `json:"setId"`
			IsActive bool   `json:"isActive"`
		}
		if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !payload.Success || payload.SetID != "C" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		return payload.IsActive, rr.Code
	}

	isActive, code := toggle()
	if code != http.StatusOK || !isActive {
		t.Fatalf("first toggle: expected active true with 200, got %v/%d", isActive, code)
	}

	isActive, code = toggle()
	if code != http.StatusOK || isActive {
		t.Fatalf("second toggle: expected active false with 200, got %v/%d", isActive, code)
	}

	if repo.sets["C"] {
		t.Error("two toggles must return the set to its original state")
	}
	if repo.toggles != 2 {
		t.Errorf("expected 2 toggle calls, got %d", repo.toggles)
	}
}

func TestVocabSetHandler_Toggle_MissingSetID(t *testing.T) {
	repo := &stubVocabRepo{sets: map[string]bool{"C": false}}
	h := NewVocabSetHandler(repo, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/vocab/sets/toggle-active", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	h.ToggleActive(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if repo.toggles != 0 {
		t.Error("datastore must not be touched when setId is missing")
	}
}

func TestVocabSetHandler_Toggle_NotFound(t *testing.T) {
	repo := &stubVocabRepo{sets: map[string]bool{}}
	h := NewVocabSetHandler(repo, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/vocab/sets/toggle-active", bytes.NewReader([]byte(`{"setId":"ghost"}`)))
	rr := httptest.NewRecorder()
	h.ToggleActive(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["error"] == "" {
		t.Error("expected an error envelope")
	}
}
