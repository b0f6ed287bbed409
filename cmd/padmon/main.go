// Command padmon prints the console input stream of a running padbridge.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"

	"github.com/soar/padbridge/internal/gamepad"
	"github.com/soar/padbridge/internal/hub"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil && !errors.Is(err, pflag.ErrHelp) {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("padmon", pflag.ContinueOnError)
	url := fs.StringP("url", "u", "ws://localhost:8080/ws", "padbridge WebSocket endpoint")
	device := fs.IntP("select", "s", -1, "make the joystick at this index active")
	raw := fs.Bool("raw", false, "print messages as received")
	count := fs.IntP("count", "n", 0, "exit after this many messages (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, *url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", *url, err)
	}
	defer conn.Close()

	// unblock ReadMessage on cancellation
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if *device >= 0 {
		if err := conn.WriteJSON(hub.ClientMessage{Type: "select_device", Index: *device}); err != nil {
			return fmt.Errorf("select device: %w", err)
		}
	}

	for n := 0; *count == 0 || n < *count; n++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if *raw {
			fmt.Fprintf(out, "%s\n", data)
			continue
		}
		var msg hub.WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}
		fmt.Fprintln(out, format(&msg))
	}
	return nil
}

func format(msg *hub.WSMessage) string {
	switch msg.Type {
	case hub.TypeFull:
		return fmt.Sprintf("#%d full %s", msg.Seq, formatState(msg.Data))
	case hub.TypeDelta:
		data, _ := json.Marshal(msg.Changes)
		return fmt.Sprintf("#%d delta %s", msg.Seq, data)
	case hub.TypeEvent:
		return fmt.Sprintf("#%d event %s", msg.Seq, msg.Event)
	case hub.TypeDeviceSelected:
		if msg.Device != nil {
			return fmt.Sprintf("device %d selected", *msg.Device)
		}
	}
	return "unknown message " + msg.Type
}

func formatState(s *gamepad.ConsoleState) string {
	if s == nil || !s.Connected {
		return "disconnected"
	}
	var held []string
	for _, b := range []struct {
		name string
		on   bool
	}{
		{"A", s.Buttons.A}, {"B", s.Buttons.B}, {"X", s.Buttons.X}, {"Y", s.Buttons.Y},
		{"L", s.Buttons.L}, {"R", s.Buttons.R}, {"ZL", s.Buttons.ZL}, {"ZR", s.Buttons.ZR},
		{"START", s.Buttons.Start}, {"SELECT", s.Buttons.Select}, {"HOME", s.Buttons.Home},
		{"UP", s.Dpad.Up}, {"DOWN", s.Dpad.Down}, {"LEFT", s.Dpad.Left}, {"RIGHT", s.Dpad.Right},
	} {
		if b.on {
			held = append(held, b.name)
		}
	}
	return fmt.Sprintf("%s (%s) buttons=[%s] circle=(%.2f,%.2f) c=(%.2f,%.2f)",
		s.Name, s.Layout, strings.Join(held, " "),
		s.Sticks.CirclePad.X, s.Sticks.CirclePad.Y, s.Sticks.CStick.X, s.Sticks.CStick.Y)
}
