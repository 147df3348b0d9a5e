package server

import (
	"log"
	"net/http"

	"github.com/lxzan/gws"

	"github.com/soar/virtualinput/internal/hub"
)

const clientKey = "client"

// wsHandler receives gws connection events. Messages from one connection
// are handled in order on that connection's read loop.
type wsHandler struct {
	gws.BuiltinEventHandler
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	actions     hub.Actions
}

func newWebSocketHandler(h *hub.Hub, b *hub.Broadcaster, actions hub.Actions) http.HandlerFunc {
	handler := &wsHandler{hub: h, broadcaster: b, actions: actions}
	upgrader := gws.NewUpgrader(handler, &gws.ServerOption{
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})

	return func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		go socket.ReadLoop()
	}
}

func (h *wsHandler) OnOpen(socket *gws.Conn) {
	client := hub.NewClient(h.hub, socket)
	socket.Session().Store(clientKey, client)
	h.hub.Register(client)

	// Send current state to the new client
	h.broadcaster.SendInitialState(client)

	go client.WritePump()
}

func (h *wsHandler) OnClose(socket *gws.Conn, err error) {
	client, ok := clientOf(socket)
	if !ok {
		return
	}
	// keys held by a vanished client must not stay down
	h.actions.ReleaseKeys(client.ID())
	h.hub.Unregister(client)
}

func (h *wsHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	client, ok := clientOf(socket)
	if !ok {
		return
	}
	client.HandleMessage(message.Bytes(), h.actions)
}

func clientOf(socket *gws.Conn) (*hub.Client, bool) {
	v, ok := socket.Session().Load(clientKey)
	if !ok {
		return nil, false
	}
	client, ok := v.(*hub.Client)
	return client, ok
}
