package sse

import (
	"testing"
	"time"

	"github.com/mcoot/puppybowl/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "roster-changed",
			data:      "changed",
			expected:  "event: roster-changed\ndata: changed\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "fragment",
			data:      "<ul>\n  <li>Fido</li>\n</ul>",
			expected:  "event: fragment\ndata: <ul>\ndata:   <li>Fido</li>\ndata: </ul>\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("viewer-1")
	if !hub.Register(client) {
		t.Fatal("Register() returned false on a running hub")
	}
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("roster-changed", "changed")

	select {
	case msg := <-client.send:
		expected := "event: roster-changed\ndata: changed\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient("viewer-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newRunningHub(t)

	clients := []*Client{NewClient("viewer-1"), NewClient("viewer-2"), NewClient("viewer-3")}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for i, client := range clients {
		select {
		case msg := <-client.send:
			expected := "event: update\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(time.Second):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_BroadcastEventExceptSkipsViewer(t *testing.T) {
	hub := newRunningHub(t)

	origin := NewClient("viewer-1")
	other := NewClient("viewer-2")
	hub.Register(origin)
	hub.Register(other)
	waitForClients(t, hub, 2)

	hub.BroadcastEventExcept("roster-changed", "first", "viewer-1")
	hub.BroadcastEvent("roster-changed", "second")

	select {
	case msg := <-other.send:
		if string(msg) != "event: roster-changed\ndata: first\n\n" {
			t.Errorf("other client received %q first", string(msg))
		}
	case <-time.After(time.Second):
		t.Fatal("other client did not receive message")
	}

	// Messages are delivered in order, so the first one the origin sees must be the second
	select {
	case msg := <-origin.send:
		if string(msg) != "event: roster-changed\ndata: second\n\n" {
			t.Errorf("origin client received %q, want only the unfiltered event", string(msg))
		}
	case <-time.After(time.Second):
		t.Fatal("origin client did not receive the unfiltered event")
	}
}

func TestHub_RegisterAfterCloseFails(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	hub.Close()
	hub.Close()

	if hub.Register(NewClient("viewer-1")) {
		t.Error("Register() should fail on a closed hub")
	}
	hub.Unregister(NewClient("viewer-1"))
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	client := NewClient("viewer-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Close()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Error("client channel was not closed")
	}
}
