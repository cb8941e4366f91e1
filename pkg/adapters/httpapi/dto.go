package httpapi

import "github.com/fenwick-games/parley/pkg/dialog"

// NodeView is the wire shape of the current node: everything a client needs
// to render the beat and drive the next transition.
type NodeView struct {
	Name          string       `json:"name,omitempty"`
	Speaker       string       `json:"speaker"`
	Text          string       `json:"text"`
	Player        bool         `json:"player,omitempty"`
	AutoAdvanceMS int64        `json:"auto_advance_ms,omitempty"`
	End           bool         `json:"end"`
	HasNext       bool         `json:"has_next"`
	Choices       []ChoiceView `json:"choices,omitempty"`
}

// ChoiceView is one selectable option.
type ChoiceView struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// SessionView is the response body of every session operation.
type SessionView struct {
	SessionID string    `json:"session_id"`
	Active    bool      `json:"active"`
	Node      *NodeView `json:"node,omitempty"`
}

// Event is one pushed notification on the websocket stream.
type Event struct {
	Type   string    `json:"type"` // node_changed | custom_action | dialog_ended
	Node   *NodeView `json:"node,omitempty"`
	Choice string    `json:"choice,omitempty"`
	Action string    `json:"action,omitempty"`
}

func viewOfNode(n *dialog.Node) *NodeView {
	if n == nil {
		return nil
	}
	v := &NodeView{
		Name:          n.Name,
		Speaker:       n.Speaker,
		Text:          n.Text,
		Player:        n.PlayerSpeaking,
		AutoAdvanceMS: n.AutoAdvance.Milliseconds(),
		End:           n.IsEnd(),
		HasNext:       n.Next() != nil,
	}
	for i, c := range n.Choices() {
		v.Choices = append(v.Choices, ChoiceView{
			Index:  i,
			Text:   c.Text,
			Action: c.ActionID,
		})
	}
	return v
}
