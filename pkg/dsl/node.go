package dsl

import (
	"time"

	"github.com/fenwick-games/parley/pkg/dialog"
)

// NodeBuilder configures one declared node.
type NodeBuilder struct {
	name    string
	builder *Builder

	speaker     string
	text        string
	player      bool
	autoAdvance time.Duration
	next        string
	choices     []*choiceDecl
}

type choiceDecl struct {
	text       string
	target     string
	actionID   string
	onSelected func(*dialog.Choice)
}

// Say sets the speaker and the body text of the beat.
func (n *NodeBuilder) Say(speaker, text string) *NodeBuilder {
	n.speaker = speaker
	n.text = text
	return n
}

// Player marks the beat as spoken by the player character.
func (n *NodeBuilder) Player() *NodeBuilder {
	n.player = true
	return n
}

// AutoAdvance sets the delay after which the presentation layer should move
// on without input. Only meaningful on choiceless nodes.
func (n *NodeBuilder) AutoAdvance(d time.Duration) *NodeBuilder {
	n.autoAdvance = d
	return n
}

// Go links the automatic successor by name.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.next = target
	return n
}

// Choice adds a player option targeting a named node. An empty target means
// "end the dialog when selected".
func (n *NodeBuilder) Choice(text, target string) *NodeBuilder {
	n.choices = append(n.choices, &choiceDecl{text: text, target: target})
	return n
}

// ChoiceWithAction adds a player option that also dispatches a custom action
// to the content provider.
func (n *NodeBuilder) ChoiceWithAction(text, target, actionID string) *NodeBuilder {
	n.choices = append(n.choices, &choiceDecl{text: text, target: target, actionID: actionID})
	return n
}

// OnLastChoice attaches a selection callback to the most recently declared
// choice. A no-op when no choice has been declared yet.
func (n *NodeBuilder) OnLastChoice(fn func(*dialog.Choice)) *NodeBuilder {
	if len(n.choices) > 0 {
		n.choices[len(n.choices)-1].onSelected = fn
	}
	return n
}

// Node hops back to the builder to declare another node, for chained
// authoring.
func (n *NodeBuilder) Node(name string) *NodeBuilder {
	return n.builder.Node(name)
}
