package sse

import (
	"testing"
	"time"

	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/testutil"
)

func TestBroadcaster_RosterChanged(t *testing.T) {
	hub := newRunningHub(t)
	broadcaster := NewBroadcaster(hub, testutil.NopLogger())

	client := NewClient("viewer-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.RosterChanged(model.PlayerAdded("1001"))

	select {
	case msg := <-client.send:
		expected := "event: roster-changed\ndata: {\"type\":\"player_added\",\"player_id\":\"1001\"}\n\n"
		if string(msg) != expected {
			t.Errorf("received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Error("no roster-changed event received")
	}
}

func TestBroadcaster_RemovedEvent(t *testing.T) {
	hub := newRunningHub(t)
	broadcaster := NewBroadcaster(hub, testutil.NopLogger())

	client := NewClient("viewer-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	broadcaster.RosterChanged(model.PlayerRemoved("7"))

	select {
	case msg := <-client.send:
		expected := "event: roster-changed\ndata: {\"type\":\"player_removed\",\"player_id\":\"7\"}\n\n"
		if string(msg) != expected {
			t.Errorf("received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Error("no roster-changed event received")
	}
}

func TestBroadcaster_SkipsOriginatingViewer(t *testing.T) {
	hub := newRunningHub(t)
	broadcaster := NewBroadcaster(hub, testutil.NopLogger())

	origin := NewClient("viewer-1")
	other := NewClient("viewer-2")
	hub.Register(origin)
	hub.Register(other)
	waitForClients(t, hub, 2)

	broadcaster.RosterChanged(model.PlayerAdded("1001").From("viewer-1"))

	select {
	case <-other.send:
	case <-time.After(time.Second):
		t.Fatal("other viewer did not receive the event")
	}

	select {
	case msg := <-origin.send:
		t.Errorf("originating viewer received %q", string(msg))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcaster_NilIsSafe(t *testing.T) {
	var b *Broadcaster
	b.RosterChanged(model.PlayerAdded("1"))
}
