package app

import (
	"errors"
	"testing"
	"time"
)

func TestNotifyIfChanged(t *testing.T) {
	tg := &fakeTelegram{}
	n := NewNotifier(tg, "1", 0, testLogger())

	if got := n.NotifyIfChanged("a"); got != DeliverySent {
		t.Fatalf("first message: got %v", got)
	}
	if got := n.NotifyIfChanged("a"); got != DeliveryUnchanged {
		t.Fatalf("repeated message: got %v", got)
	}
	if got := n.NotifyIfChanged("b"); got != DeliverySent {
		t.Fatalf("new message: got %v", got)
	}
	if len(tg.sent) != 2 || n.LastSent() != "b" {
		t.Fatalf("unexpected state: sent=%q last=%q", tg.sent, n.LastSent())
	}
}

func TestNotifyIfChangedKeepsStateOnFailure(t *testing.T) {
	tg := &fakeTelegram{err: errors.New("network down")}
	n := NewNotifier(tg, "1", 0, testLogger())

	if got := n.NotifyIfChanged("a"); got != DeliveryFailed {
		t.Fatalf("got %v", got)
	}
	if n.LastSent() != "" {
		t.Fatalf("failed send must not be remembered, got %q", n.LastSent())
	}
}

func TestAlertWithoutCooldownAlwaysSends(t *testing.T) {
	tg := &fakeTelegram{}
	n := NewNotifier(tg, "1", 0, testLogger())

	n.Alert("boom")
	n.Alert("boom")

	if len(tg.sent) != 2 {
		t.Fatalf("expected both alerts, got %q", tg.sent)
	}
}

func TestAlertCooldown(t *testing.T) {
	tg := &fakeTelegram{}
	n := NewNotifier(tg, "1", 50*time.Millisecond, testLogger())

	if !n.Alert("boom") {
		t.Fatal("first alert must be sent")
	}
	if n.Alert("boom") {
		t.Fatal("repeated alert inside cooldown must be suppressed")
	}
	if !n.Alert("other") {
		t.Fatal("different alert must be sent")
	}

	time.Sleep(100 * time.Millisecond)
	if !n.Alert("boom") {
		t.Fatal("alert after cooldown must be sent")
	}
	if len(tg.sent) != 3 {
		t.Fatalf("unexpected messages %q", tg.sent)
	}
}

func TestAlertCooldownForgetsExpiredTexts(t *testing.T) {
	n := NewNotifier(&fakeTelegram{}, "1", 20*time.Millisecond, testLogger())

	n.Alert("fetch failed: dial tcp 10.0.0.1")
	n.Alert("fetch failed: dial tcp 10.0.0.2")
	if got := n.recentAlerts.Len(); got != 2 {
		t.Fatalf("expected 2 remembered alerts, got %d", got)
	}

	time.Sleep(50 * time.Millisecond)
	n.Alert("fetch failed: dial tcp 10.0.0.3")
	if got := n.recentAlerts.Len(); got != 1 {
		t.Fatalf("expired alerts must be dropped, %d remembered", got)
	}
}
