package clipboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selclip/selclip-daemon/internal/types"
)

func TestSecondaryStartsEmpty(t *testing.T) {
	sec := NewSecondary()

	val, ok := sec.Snapshot()
	assert.False(t, ok)
	assert.Empty(t, val.Text)
}

func TestSecondarySetReplacesWholeValue(t *testing.T) {
	sec := NewSecondary()
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	sec.Set("first", types.SelectionDrag, t1)
	sec.Set("second", types.SelectionTriple, t2)

	val, ok := sec.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "second", val.Text)
	assert.Equal(t, types.SelectionTriple, val.Kind)
	assert.Equal(t, t2, val.CapturedAt)
}

func TestSecondaryClear(t *testing.T) {
	sec := NewSecondary()
	sec.Set("text", types.SelectionDrag, time.Now())

	sec.Clear()

	val, ok := sec.Snapshot()
	assert.False(t, ok)
	assert.Empty(t, val.Text)
}
