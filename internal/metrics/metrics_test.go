package metrics

import (
	"encoding/json"
	"testing"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionOpened()
	c.SessionOpened()
	if c.SessionsOpened() != 2 {
		t.Errorf("opened = %d, want 2", c.SessionsOpened())
	}

	c.SessionClosed()
	if c.SessionsClosed() != 1 {
		t.Errorf("closed = %d, want 1", c.SessionsClosed())
	}
	if c.SessionsOpened() != 2 {
		t.Errorf("opened should remain 2, got %d", c.SessionsOpened())
	}
}

func TestCollector_Connects(t *testing.T) {
	c := New()

	c.Connected()
	c.Connected()
	c.ConnectFailed()

	if c.Connects() != 2 {
		t.Errorf("connects = %d, want 2", c.Connects())
	}
	snap := c.Snapshot()
	if snap.ConnectFailures != 1 {
		t.Errorf("failures = %d, want 1", snap.ConnectFailures)
	}
}

func TestCollector_Snapshot(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.Connected()
	c.ResolveFailed()
	c.Drained()
	c.RecordError("test")

	snap := c.Snapshot()
	if snap.SessionsOpened != 1 {
		t.Errorf("snap opened = %d", snap.SessionsOpened)
	}
	if snap.Connects != 1 {
		t.Errorf("snap connects = %d", snap.Connects)
	}
	if snap.ResolveFailures != 1 {
		t.Errorf("snap resolve failures = %d", snap.ResolveFailures)
	}
	if snap.Drains != 1 {
		t.Errorf("snap drains = %d", snap.Drains)
	}
	if snap.LastErrorMessage != "test" {
		t.Errorf("snap error msg = %q", snap.LastErrorMessage)
	}
	if snap.LastError == "" {
		t.Error("expected non-empty last error timestamp")
	}
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.SessionClosed()

	raw := c.JSON()
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("JSON parse error: %v", err)
	}
	if snap.SessionsOpened != 1 {
		t.Errorf("JSON opened = %d", snap.SessionsOpened)
	}
	if snap.SessionsClosed != 1 {
		t.Errorf("JSON closed = %d", snap.SessionsClosed)
	}
}

func TestNilCollector_NoOps(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.SessionOpened()
	c.SessionClosed()
	c.Connected()
	c.ConnectFailed()
	c.ResolveFailed()
	c.Drained()
	c.RecordError("test")

	if c.SessionsOpened() != 0 {
		t.Error("nil collector should return 0")
	}
	if c.Connects() != 0 {
		t.Error("nil collector should return 0")
	}

	snap := c.Snapshot()
	if snap.SessionsOpened != 0 {
		t.Error("nil snapshot should be zero")
	}

	j := c.JSON()
	if j == "" {
		t.Error("nil JSON should return valid JSON")
	}
}
