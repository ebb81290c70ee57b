package support

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"

	"github.com/clarahq/support-backend/internal/config"
	"github.com/clarahq/support-backend/internal/model/chat"
	"github.com/clarahq/support-backend/internal/service/ai"
	"github.com/clarahq/support-backend/internal/store"
)

type stubChatModel struct {
	reply string
	err   error
}

func (m *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *stubChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *stubChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

func newTestHandler(t *testing.T, stub *stubChatModel) (http.Handler, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	aiSvc, err := ai.NewService(context.Background(), stub, config.AIConfig{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new ai service: %v", err)
	}

	r := chi.NewRouter()
	New(st, aiSvc).RegisterRoutes(r)
	return r, st
}

func seedConversation(t *testing.T, st *store.Store) string {
	t.Helper()
	ctx := context.Background()

	session, err := st.CreateSession(ctx, "guest")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	turns := []struct {
		sender string
		text   string
	}{
		{chat.SenderUser, "my invoice is wrong"},
		{chat.SenderClara, "let me look into that"},
	}
	base := time.Now().UTC()
	for i, turn := range turns {
		_, err := st.AppendMessage(ctx, chat.Message{
			SessionID: session.ID,
			Sender:    turn.sender,
			Text:      turn.text,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("append message: %v", err)
		}
	}
	return session.ID
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSummarizeRequiresSessionID(t *testing.T) {
	router, _ := newTestHandler(t, &stubChatModel{reply: "unused"})

	if rec := postJSON(t, router, "/summarize", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestSummarizeUnknownSession(t *testing.T) {
	router, _ := newTestHandler(t, &stubChatModel{reply: "unused"})

	if rec := postJSON(t, router, "/summarize", `{"session_id": "ghost"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestSummarizeSession(t *testing.T) {
	stub := &stubChatModel{reply: "SUMMARY: Billing dispute over last invoice.\nNEXT_ACTIONS:\n- Check the invoice\n- Call the visitor back"}
	router, st := newTestHandler(t, stub)
	sessionID := seedConversation(t, st)

	rec := postJSON(t, router, "/summarize", `{"session_id": "`+sessionID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body ai.SessionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Summary != "Billing dispute over last invoice." {
		t.Fatalf("summary %q", body.Summary)
	}
	if len(body.NextActions) != 2 {
		t.Fatalf("actions %q, want 2", body.NextActions)
	}
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	router, st := newTestHandler(t, &stubChatModel{err: errors.New("upstream down")})
	sessionID := seedConversation(t, st)

	rec := postJSON(t, router, "/summarize", `{"session_id": "`+sessionID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body ai.SessionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Summary != "Unable to summarize at this time." {
		t.Fatalf("summary %q, want the fixed unavailable text", body.Summary)
	}
}

func TestEscalateUnknownSession(t *testing.T) {
	router, _ := newTestHandler(t, &stubChatModel{reply: "unused"})

	if rec := postJSON(t, router, "/escalate", `{"session_id": "ghost"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestEscalateWithExplicitSummary(t *testing.T) {
	router, st := newTestHandler(t, &stubChatModel{reply: "unused"})

	rec := postJSON(t, router, "/escalate", `{"summary": "Broken invoice totals"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ticket_id"] == "" {
		t.Fatal("no ticket id in response")
	}
	if body["status"] != "open" || body["summary"] != "Broken invoice totals" {
		t.Fatalf("unexpected body %v", body)
	}

	stored, err := st.GetTicket(context.Background(), body["ticket_id"])
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if stored.Summary != "Broken invoice totals" || stored.SessionID != "" {
		t.Fatalf("stored ticket mismatch: %+v", stored)
	}
}

func TestEscalateAutoSummarizes(t *testing.T) {
	stub := &stubChatModel{reply: "SUMMARY: Billing problem.\nNEXT_ACTIONS:\n- Call back"}
	router, st := newTestHandler(t, stub)
	sessionID := seedConversation(t, st)

	rec := postJSON(t, router, "/escalate", `{"session_id": "`+sessionID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["summary"] != "Billing problem." {
		t.Fatalf("summary %q, want the generated one", body["summary"])
	}

	stored, err := st.GetTicket(context.Background(), body["ticket_id"])
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if stored.SessionID != sessionID {
		t.Fatalf("ticket session %q, want %q", stored.SessionID, sessionID)
	}
}
