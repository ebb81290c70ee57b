package admin

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clarahq/support-backend/internal/model/chat"
	"github.com/clarahq/support-backend/internal/store"
)

func newTestHandler(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := chi.NewRouter()
	New(st).RegisterRoutes(r)
	return r, st
}

func exportCSV(t *testing.T, router http.Handler) ([][]string, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/sessions.csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return rows, rec
}

func TestExportCSVEmpty(t *testing.T) {
	router, _ := newTestHandler(t)

	rows, rec := exportCSV(t, router)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}

	want := []string{"session_id", "user_label", "created_at", "message_id", "sender", "text", "timestamp"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("header %q, want %q", rows[0], want)
	}
}

func TestExportCSVRows(t *testing.T) {
	router, st := newTestHandler(t)
	ctx := context.Background()

	withMessages, err := st.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	base := time.Now().UTC()
	texts := []string{"hello there", "line one\nline two"}
	for i, text := range texts {
		_, err := st.AppendMessage(ctx, chat.Message{
			SessionID: withMessages.ID,
			Sender:    chat.SenderUser,
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("append message: %v", err)
		}
	}

	empty, err := st.CreateSession(ctx, "bob")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	rows, _ := exportCSV(t, router)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header plus three", len(rows))
	}

	perSession := map[string][][]string{}
	for _, row := range rows[1:] {
		perSession[row[0]] = append(perSession[row[0]], row)
	}

	if got := perSession[withMessages.ID]; len(got) != 2 {
		t.Fatalf("session with messages has %d rows, want 2", len(got))
	} else {
		for _, row := range got {
			if strings.Contains(row[5], "\n") {
				t.Fatalf("newline survived in text cell: %q", row[5])
			}
			if row[1] != "alice" {
				t.Fatalf("user label %q, want alice", row[1])
			}
			if _, err := time.Parse(time.RFC3339Nano, row[6]); err != nil {
				t.Fatalf("timestamp %q does not parse: %v", row[6], err)
			}
		}
	}

	emptyRows := perSession[empty.ID]
	if len(emptyRows) != 1 {
		t.Fatalf("empty session has %d rows, want 1", len(emptyRows))
	}
	for _, cell := range emptyRows[0][3:] {
		if cell != "" {
			t.Fatalf("empty session row carries message data: %q", emptyRows[0])
		}
	}
}
