package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/testutil"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "state",
			data:      `{"phase":"shuffling"}`,
			expected:  "event: state\ndata: {\"phase\":\"shuffling\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "state",
			data:      "{\n  \"phase\": \"resolved\"\n}",
			expected:  "event: state\ndata: {\ndata:   \"phase\": \"resolved\"\ndata: }\n\n",
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
			assert.Equal(t, tt.expected, string(formatEvent(tt.eventName, tt.data)))
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
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		require.True(t, ok, "client channel closed")
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("GAME01", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	require.True(t, hub.Register(client))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("state", "data")
	assert.Equal(t, "event: state\ndata: data\n\n", receive(t, client))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("GAME01", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	require.True(t, hub.Register(client))

	hub.Unregister(client)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("GAME01", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(hub), NewClient(hub), NewClient(hub)}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")
	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c))
	}
}

func TestHub_CloseDeliversQueuedThenDisconnects(t *testing.T) {
	hub := NewHub("GAME01", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub)
	require.True(t, hub.Register(client))

	hub.BroadcastEvent("deleted", "bye")
	hub.Close()

	assert.Equal(t, "event: deleted\ndata: bye\n\n", receive(t, client))
	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}

	// Closed hubs refuse new clients and tolerate a second close
	assert.False(t, hub.Register(NewClient(hub)))
	hub.Close()
}

func TestHubManager_WatchSharesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1, release1 := manager.Watch("GAME01")
	hub2, release2 := manager.Watch("GAME01")
	hub3, release3 := manager.Watch("GAME02")

	assert.Same(t, hub1, hub2)
	assert.NotSame(t, hub1, hub3)
	assert.Same(t, hub1, manager.GetHub("GAME01"))
	assert.Equal(t, 2, manager.Len())

	release1()
	assert.NotNil(t, manager.GetHub("GAME01"), "hub must live while a watcher remains")

	// Releasing twice is a no-op
	release1()
	assert.NotNil(t, manager.GetHub("GAME01"))

	release2()
	release3()
	assert.Nil(t, manager.GetHub("GAME01"))
	assert.Zero(t, manager.Len())
}

func TestHubManager_GetHubWithoutWatchers(t *testing.T) {
	manager := NewHubManager(nil)
	assert.Nil(t, manager.GetHub("NOTEXIST"))
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	old, release := manager.Watch("GAME01")
	manager.RemoveHub("GAME01")
	assert.Nil(t, manager.GetHub("GAME01"))

	// A new watcher gets a fresh hub; the stale release must not remove it
	fresh, releaseFresh := manager.Watch("GAME01")
	assert.NotSame(t, old, fresh)
	release()
	assert.Same(t, fresh, manager.GetHub("GAME01"))

	releaseFresh()
	assert.Zero(t, manager.Len())

	// Removing a missing hub does nothing
	manager.RemoveHub("NOTEXIST")
}

func TestBroadcaster_SkipsUnwatchedGames(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, nil)

	b.GameChanged("GAME01", model.NewRound(3).Snapshot())
	b.GameDeleted("GAME01")
	assert.Zero(t, manager.Len())
}

func TestBroadcaster_PublishesState(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, testutil.NopLogger())

	hub, release := manager.Watch("GAME01")
	defer release()
	client := NewClient(hub)
	require.True(t, hub.Register(client))

	b.GameChanged("GAME01", model.NewRound(3).Snapshot())
	assert.Equal(t,
		"event: state\ndata: {\"phase\":\"not_started\",\"round_count\":0,\"max_rounds\":3}\n\n",
		receive(t, client))

	b.GameDeleted("GAME01")
	assert.Equal(t, "event: deleted\ndata: {\"id\":\"GAME01\"}\n\n", receive(t, client))
	assert.Nil(t, manager.GetHub("GAME01"))
}
