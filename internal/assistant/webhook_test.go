package assistant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
)

// ─── WebhookClient.Send ──────────────────────────────────────────────────────

func TestWebhookClient_Send(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-App-Auth")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"answer":    "live answer",
			"providers": []string{"PRV-1001"},
			"plans":     []string{"CP-HIGH-05"},
		})
	}))
	defer srv.Close()

	c := assistant.NewWebhookClient(srv.URL, "secret-key", 5*time.Second)
	reply, err := c.Send(context.Background(), "sess-42", "hello")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotAuth != "secret-key" {
		t.Errorf("X-App-Auth = %q, want secret-key", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody["sessionId"] != "sess-42" || gotBody["message"] != "hello" {
		t.Errorf("request body = %v, want sessionId/message fields", gotBody)
	}
	if reply.Answer != "live answer" {
		t.Errorf("Answer = %q, want live answer", reply.Answer)
	}
	if len(reply.Providers) != 1 || reply.Providers[0] != "PRV-1001" {
		t.Errorf("Providers = %v, want [PRV-1001]", reply.Providers)
	}
	if len(reply.Plans) != 1 || reply.Plans[0] != "CP-HIGH-05" {
		t.Errorf("Plans = %v, want [CP-HIGH-05]", reply.Plans)
	}
}

func TestWebhookClient_AnswerFieldWinsOverResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"answer":"from answer","response":"from response"}`))
	}))
	defer srv.Close()

	c := assistant.NewWebhookClient(srv.URL, "k", time.Second)
	reply, err := c.Send(context.Background(), "s", "m")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Answer != "from answer" {
		t.Errorf("Answer = %q, want the answer field to win", reply.Answer)
	}
}

func TestWebhookClient_ResponseFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response":"from response"}`))
	}))
	defer srv.Close()

	c := assistant.NewWebhookClient(srv.URL, "k", time.Second)
	reply, err := c.Send(context.Background(), "s", "m")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Answer != "from response" {
		t.Errorf("Answer = %q, want the response field fallback", reply.Answer)
	}
}

func TestWebhookClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream exploded", http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("not json at all"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := assistant.NewWebhookClient(srv.URL, "k", time.Second)
			if _, err := c.Send(context.Background(), "s", "m"); err == nil {
				t.Error("Send() error = nil, want non-nil")
			}
		})
	}
}

func TestWebhookClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // deliberately dead endpoint

	c := assistant.NewWebhookClient(srv.URL, "k", time.Second)
	if _, err := c.Send(context.Background(), "s", "m"); err == nil {
		t.Error("Send() error = nil, want transport error")
	}
}
