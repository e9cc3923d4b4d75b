package telegram

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *TelebotAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	bot, err := telebot.NewBot(telebot.Settings{URL: srv.URL, Token: "test-token", Offline: true})
	if err != nil {
		t.Fatal(err)
	}
	return NewTelebotAdapter(bot)
}

func TestSendMessage(t *testing.T) {
	var got []sentMessage
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/bottest-token/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var msg sentMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode request: %v", err)
		}
		got = append(got, msg)
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},"text":%q}}`, msg.Text)
	})

	if err := adapter.SendMessage("123456", "numeric"); err != nil {
		t.Fatal(err)
	}
	if err := adapter.SendMessage("@homework_channel", "channel"); err != nil {
		t.Fatal(err)
	}

	want := []sentMessage{{ChatID: "123456", Text: "numeric"}, {ChatID: "@homework_channel", Text: "channel"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("request %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSendMessageAPIError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
	})

	if err := adapter.SendMessage("1", "hello"); err == nil {
		t.Fatal("expected error for rejected message")
	}
}

func TestNewBotDoesNotNeedTheAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	bot, err := NewBot("123:fake", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("bot creation must not contact Telegram, got %v", err)
	}

	// Sends still fail while the API is unreachable.
	bot.URL = srv.URL
	if err := NewTelebotAdapter(bot).SendMessage("1", "hello"); err == nil {
		t.Fatal("expected send to a closed server to fail")
	}
}
