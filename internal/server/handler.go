package server

import (
	"encoding/json"
	"log"

	"github.com/lxzan/gws"

	"github.com/soar/padbridge/internal/hub"
)

const clientKey = "client"

// DeviceSelector switches the joystick that drives the console.
type DeviceSelector interface {
	SelectDevice(index int) bool
}

// socketHandler receives the WebSocket events of every monitor connection.
type socketHandler struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	selector    DeviceSelector
}

func (h *socketHandler) OnOpen(socket *gws.Conn) {
	client := hub.NewClient(h.hub, socket)
	socket.Session().Store(clientKey, client)
	h.hub.Register(client)

	// Send current state to the new client
	h.broadcaster.SendInitialState(client)
	go client.WritePump()
}

func (h *socketHandler) OnClose(socket *gws.Conn, err error) {
	if client, ok := clientOf(socket); ok {
		h.hub.Unregister(client)
	}
}

func (h *socketHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (h *socketHandler) OnPong(socket *gws.Conn, payload []byte) {}

func (h *socketHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	client, ok := clientOf(socket)
	if !ok {
		return
	}

	var clientMsg hub.ClientMessage
	if err := json.Unmarshal(message.Bytes(), &clientMsg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		return
	}

	switch clientMsg.Type {
	case "select_device":
		if h.selector == nil || !h.selector.SelectDevice(clientMsg.Index) {
			log.Printf("Failed to switch to device %d: invalid index", clientMsg.Index)
			return
		}
		data, err := json.Marshal(hub.NewDeviceSelectedMessage(clientMsg.Index))
		if err != nil {
			log.Printf("Error marshaling device_selected message: %v", err)
			return
		}
		client.Send(data)
		log.Printf("Client switched to device %d", clientMsg.Index)
	default:
		log.Printf("Unknown client message type %q", clientMsg.Type)
	}
}

func clientOf(socket *gws.Conn) (*hub.Client, bool) {
	v, ok := socket.Session().Load(clientKey)
	if !ok {
		return nil, false
	}
	client, ok := v.(*hub.Client)
	return client, ok
}
