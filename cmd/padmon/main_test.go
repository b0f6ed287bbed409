package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/soar/padbridge/internal/gamepad"
	"github.com/soar/padbridge/internal/hub"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// fakeBridge sends a full state, answers one select_device request and
// then sends a delta.
func fakeBridge(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		state := gamepad.ConsoleState{Connected: true, Name: "Pad", Layout: "xbox"}
		state.Buttons.A = true
		state.Dpad.Left = true
		state.Sticks.CirclePad = gamepad.Vector{X: 0.5, Y: -1}
		if err := conn.WriteJSON(hub.NewFullMessage(1, &state)); err != nil {
			return
		}

		var req hub.ClientMessage
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Type == "select_device" {
			conn.WriteJSON(hub.NewDeviceSelectedMessage(req.Index))
		}

		connected := true
		conn.WriteJSON(hub.NewDeltaMessage(2, &gamepad.DeltaChanges{Connected: &connected}))
		conn.WriteJSON(hub.NewEventMessage(3, hub.EventMenu, &state))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRun(t *testing.T) {
	ts := fakeBridge(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	var out bytes.Buffer
	err := run(context.Background(), []string{"--url", url, "--select", "1", "--count", "4"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"#1 full Pad (xbox) buttons=[A LEFT] circle=(0.50,-1.00) c=(0.00,0.00)",
		"device 1 selected",
		`#2 delta {"connected":true}`,
		"#3 event menu",
	}
	if len(lines) != len(want) {
		t.Fatalf("output:\n%s", out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRunRaw(t *testing.T) {
	ts := fakeBridge(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-u", url, "--raw", "-n", "1"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), `{"type":"full","seq":1,`) {
		t.Errorf("raw output = %q", out.String())
	}
}

func TestRunDialError(t *testing.T) {
	err := run(context.Background(), []string{"--url", "ws://127.0.0.1:1/ws", "-n", "1"}, &bytes.Buffer{})
	if err == nil {
		t.Error("expected dial error")
	}
}
