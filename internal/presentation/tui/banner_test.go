package tui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fenwick-games/parley/internal/presentation/tui"
)

func TestBannerWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	tui.Banner(&buf, "tavern")

	out := buf.String()
	assert.Contains(t, out, "parley")
	assert.Contains(t, out, "tavern")
}
