package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/padbridge/internal/gamepad"
	"github.com/soar/padbridge/internal/hub"
)

type fakeDevices struct {
	selected chan int
}

func (f *fakeDevices) Devices() []gamepad.DeviceInfo {
	return []gamepad.DeviceInfo{
		{Index: 0, Name: "Pad A", Layout: "xbox", Active: true},
		{Index: 1, Name: "Pad B", Layout: "generic"},
	}
}

func (f *fakeDevices) SelectDevice(index int) bool {
	if index < 0 || index > 1 {
		return false
	}
	f.selected <- index
	return true
}

type fixedState gamepad.ConsoleState

func (s fixedState) CurrentState() gamepad.ConsoleState {
	return gamepad.ConsoleState(s)
}

var frontend = fstest.MapFS{
	"index.html": {Data: []byte("<!doctype html>\n<html>\n  <body>\n    <p id=\"greeting\">  hello  </p>\n  </body>\n</html>\n")},
	"app.js":     {Data: []byte("function  add ( a , b ) {\n  return a + b ;\n}\n")},
	"notes.txt":  {Data: []byte("kept   as   is")},
}

func newTestServer(t *testing.T, minified bool) (*httptest.Server, *fakeDevices) {
	t.Helper()
	h := hub.NewHub()
	go h.Run()
	t.Cleanup(h.Stop)

	devices := &fakeDevices{selected: make(chan int, 1)}
	state := fixedState{Connected: true, Name: "Pad A", Layout: "xbox"}
	srv, err := New(Options{
		Hub:         h,
		Broadcaster: hub.NewBroadcaster(h, make(chan gamepad.ConsoleState)),
		State:       state,
		Devices:     devices,
		Frontend:    frontend,
		Minify:      minified,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, devices
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestStaticFiles(t *testing.T) {
	ts, _ := newTestServer(t, true)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(body, "hello") || strings.Contains(body, "\n  ") {
		t.Errorf("index not minified: %q", body)
	}

	_, body = get(t, ts.URL+"/app.js")
	if strings.Contains(body, "  ") || len(body) >= len(frontend["app.js"].Data) {
		t.Errorf("script not minified: %q", body)
	}

	_, body = get(t, ts.URL+"/notes.txt")
	if body != "kept   as   is" {
		t.Errorf("text file changed: %q", body)
	}

	if resp, _ := get(t, ts.URL+"/missing.css"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing file = %d", resp.StatusCode)
	}
}

func TestStaticFilesUnminified(t *testing.T) {
	ts, _ := newTestServer(t, false)
	_, body := get(t, ts.URL+"/app.js")
	if body != string(frontend["app.js"].Data) {
		t.Errorf("script changed: %q", body)
	}
}

func TestAPI(t *testing.T) {
	ts, _ := newTestServer(t, true)

	_, body := get(t, ts.URL+"/api/state")
	var state gamepad.ConsoleState
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		t.Fatalf("state: %v", err)
	}
	if !state.Connected || state.Name != "Pad A" {
		t.Errorf("state = %+v", state)
	}

	_, body = get(t, ts.URL+"/api/devices")
	var devices []gamepad.DeviceInfo
	if err := json.Unmarshal([]byte(body), &devices); err != nil {
		t.Fatalf("devices: %v", err)
	}
	if len(devices) != 2 || !devices[0].Active || devices[1].Name != "Pad B" {
		t.Errorf("devices = %+v", devices)
	}
}

func TestWebSocket(t *testing.T) {
	ts, devices := newTestServer(t, true)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg hub.WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != hub.TypeFull || msg.Data == nil {
		t.Errorf("first message = %+v", msg)
	}

	// invalid index: no reply
	if err := conn.WriteJSON(hub.ClientMessage{Type: "select_device", Index: 7}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(hub.ClientMessage{Type: "select_device", Index: 1}); err != nil {
		t.Fatal(err)
	}
	msg = hub.WSMessage{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != hub.TypeDeviceSelected || msg.Device == nil || *msg.Device != 1 {
		t.Errorf("reply = %+v", msg)
	}
	select {
	case i := <-devices.selected:
		if i != 1 {
			t.Errorf("selected %d, want 1", i)
		}
	default:
		t.Error("selector not called")
	}
}
