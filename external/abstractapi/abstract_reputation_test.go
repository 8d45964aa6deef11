package abstractapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestValidator(t *testing.T, resp reputationResponse) *ReputationValidator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			t.Error("api_key missing from request")
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	v, err := NewReputationValidator("test-key")
	if err != nil {
		t.Fatal(err)
	}
	v.baseURL = srv.URL
	return v
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name    string
		resp    reputationResponse
		wantErr bool
	}{
		{"clean address", reputationResponse{EmailReputation: "HIGH"}, false},
		{"medium reputation passes", reputationResponse{EmailReputation: "MEDIUM"}, false},
		{"disposable refused", reputationResponse{EmailReputation: "HIGH", IsDisposable: true}, true},
		{"role address refused", reputationResponse{EmailReputation: "HIGH", IsRoleEmail: true}, true},
		{"low reputation refused", reputationResponse{EmailReputation: "LOW"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, tt.resp)
			err := v.Validate(context.Background(), "someone@example.com")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v, err := NewReputationValidator("test-key")
	if err != nil {
		t.Fatal(err)
	}
	v.baseURL = srv.URL
	if err := v.Validate(context.Background(), "someone@example.com"); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestNewReputationValidatorRequiresKey(t *testing.T) {
	if _, err := NewReputationValidator(""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
