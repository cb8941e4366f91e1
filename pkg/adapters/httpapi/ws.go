package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/pkg/dialog"
)

// Event types pushed on the websocket stream.
const (
	EventNodeChanged  = "node_changed"
	EventCustomAction = "custom_action"
	EventDialogEnded  = "dialog_ended"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dialog streams carry no credentials; hosts that need origin policy
	// should wrap the handler.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS streams Navigator events for one session. The client drives
// transitions through the REST endpoints (possibly from another tab or the
// game process); this socket only observes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	events := make(chan Event, 32)
	push := func(ev Event) {
		select {
		case events <- ev:
		default:
			s.logger.Warn("dropping websocket event, slow consumer",
				"session_id", sess.ID, "type", ev.Type)
		}
	}

	var unsubscribe func()
	sess.Do(func(nav *parley.Navigator) {
		unsubscribe = nav.Subscribe(dialog.SubscriberFuncs{
			OnNodeChanged: func(n *dialog.Node) {
				push(Event{Type: EventNodeChanged, Node: viewOfNode(n)})
			},
			OnCustomAction: func(c *dialog.Choice, actionID string) {
				push(Event{Type: EventCustomAction, Choice: c.Text, Action: actionID})
			},
			OnDialogEnded: func() {
				push(Event{Type: EventDialogEnded})
			},
		})
		// Initial snapshot so late subscribers see the current beat.
		if cur := nav.CurrentNode(); cur != nil {
			push(Event{Type: EventNodeChanged, Node: viewOfNode(cur)})
		}
	})
	defer sess.Do(func(*parley.Navigator) { unsubscribe() })

	// Reader only detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("websocket write failed", "session_id", sess.ID, "err", err)
				return
			}
			if ev.Type == EventDialogEnded {
				return
			}
		}
	}
}
