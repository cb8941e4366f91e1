package dsl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-games/parley/pkg/dialog"
	"github.com/fenwick-games/parley/pkg/dsl"
)

func TestBuild(t *testing.T) {
	b := dsl.New("quest")
	b.Node("intro").Say("Elder", "The village needs you.").
		Choice("I'll help.", "accept").
		Choice("Find someone else.", "refuse")
	b.Node("accept").Say("Elder", "Bless you.").
		AutoAdvance(2*time.Second).
		Go("farewell")
	b.Node("refuse").Say("Elder", "A shame.").
		Go("farewell")
	b.Node("farewell").Say("Elder", "Go well.")
	b.Start("intro")

	tree, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "quest", tree.Name())
	assert.Equal(t, "intro", tree.StartingNode().Name)
	assert.Len(t, tree.Nodes(), 4)

	accept := tree.FindNodeByName("accept")
	require.NotNil(t, accept)
	assert.Equal(t, 2*time.Second, accept.AutoAdvance)
	assert.Equal(t, "farewell", accept.Next().Name)

	// Two paths converge on farewell.
	farewell := tree.FindNodeByName("farewell")
	require.NotNil(t, farewell)
	assert.True(t, farewell.IsConvergent())
	assert.True(t, farewell.IsEnd())

	intro := tree.StartingNode()
	require.Len(t, intro.Choices(), 2)
	assert.Same(t, accept, intro.Choices()[0].Target())
}

func TestBuildForwardReference(t *testing.T) {
	// A choice may target a node declared later.
	b := dsl.New("forward")
	b.Node("first").Say("A", "hello").Choice("skip ahead", "later")
	b.Node("later").Say("A", "you made it")

	tree, err := b.Build()
	require.NoError(t, err)
	assert.Same(t, tree.FindNodeByName("later"), tree.StartingNode().Choices()[0].Target())
}

func TestBuildErrors(t *testing.T) {
	t.Run("empty builder", func(t *testing.T) {
		_, err := dsl.New("empty").Build()
		assert.Error(t, err)
	})

	t.Run("next to undeclared node", func(t *testing.T) {
		b := dsl.New("broken")
		b.Node("only").Say("A", "hi").Go("nowhere")
		_, err := b.Build()
		assert.Error(t, err)
	})
}

func TestBuildDefaults(t *testing.T) {
	b := dsl.New("defaults")
	b.Node("alpha").Say("A", "first declared")
	b.Node("beta").Say("A", "second")

	tree, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "alpha", tree.StartingNode().Name, "first declared node is the default start")
}

func TestPlayerAndCallback(t *testing.T) {
	fired := false
	b := dsl.New("callbacks")
	b.Node("ask").Say("Guard", "Who goes there?").
		Choice("A friend.", "reply").
		OnLastChoice(func(_ *dialog.Choice) { fired = true })
	b.Node("reply").Say("You", "It is I.").Player()

	tree, err := b.Build()
	require.NoError(t, err)

	reply := tree.FindNodeByName("reply")
	assert.True(t, reply.PlayerSpeaking)

	c := tree.StartingNode().Choices()[0]
	require.NotNil(t, c.OnSelected)
	c.OnSelected(c)
	assert.True(t, fired)
}
