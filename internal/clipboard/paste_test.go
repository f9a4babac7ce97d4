package clipboard

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/types"
)

func testPasteConfig() PasteConfig {
	return PasteConfig{
		PressDuration: time.Millisecond,
		SettleDelay:   time.Millisecond,
		RestoreDelay:  time.Millisecond,
	}
}

func TestPasteInstallsAndRestores(t *testing.T) {
	gw := &fakeGateway{text: "bar"}
	inj := &fakeInjector{gateway: gw}
	sec := NewSecondary()
	sec.Set("foo", types.SelectionDrag, time.Now())

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.NoError(t, err)
	assert.True(t, pasted)

	// During the press window the clipboard held the secondary content;
	// afterwards the original is back.
	require.Equal(t, []KeyCombo{ComboPaste}, inj.pressed)
	assert.Equal(t, []string{"foo"}, inj.seenAtPress)
	assert.Equal(t, "bar", gw.current())
	assert.Equal(t, []string{"foo", "bar"}, gw.writeLog())
}

func TestPasteEmptySecondaryIsNoOp(t *testing.T) {
	gw := &fakeGateway{text: "bar"}
	inj := &fakeInjector{gateway: gw}
	sec := NewSecondary()

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.NoError(t, err)
	assert.False(t, pasted)

	// No gateway traffic, no gesture.
	assert.Zero(t, gw.reads)
	assert.Empty(t, gw.writeLog())
	assert.Empty(t, inj.pressed)
}

func TestPasteClearedSecondaryIsNoOp(t *testing.T) {
	gw := &fakeGateway{text: "bar"}
	inj := &fakeInjector{gateway: gw}
	sec := NewSecondary()
	sec.Set("foo", types.SelectionDrag, time.Now())
	sec.Clear()

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.NoError(t, err)
	assert.False(t, pasted)
	assert.Empty(t, inj.pressed)
}

func TestPasteSnapshotFailure(t *testing.T) {
	gw := &fakeGateway{text: "bar", readErr: errors.New("clipboard busy")}
	inj := &fakeInjector{gateway: gw}
	sec := NewSecondary()
	sec.Set("foo", types.SelectionDrag, time.Now())

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.Error(t, err)
	assert.False(t, pasted)

	// Without a snapshot nothing is installed and nothing needs undoing.
	assert.Empty(t, gw.writeLog())
	assert.Empty(t, inj.pressed)
}

func TestPasteInstallFailureAttemptsRestore(t *testing.T) {
	gw := &fakeGateway{text: "bar", writeErr: errors.New("clipboard locked")}
	inj := &fakeInjector{gateway: gw}
	sec := NewSecondary()
	sec.Set("foo", types.SelectionDrag, time.Now())

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.Error(t, err)
	assert.False(t, pasted)

	// Both the install and the best-effort restore were attempted.
	assert.Equal(t, 2, gw.writeAttempts)
	assert.Empty(t, inj.pressed)
}

func TestPasteInjectionFailureStillRestores(t *testing.T) {
	gw := &fakeGateway{text: "bar"}
	inj := &fakeInjector{gateway: gw, err: errors.New("injection refused")}
	sec := NewSecondary()
	sec.Set("foo", types.SelectionDrag, time.Now())

	p := NewPaster(testPasteConfig(), gw, inj, sec, clock.New(), zap.NewNop())

	pasted, err := p.Paste()
	require.Error(t, err)
	assert.False(t, pasted)

	// The secondary content is never left installed.
	assert.Equal(t, "bar", gw.current())
	assert.Equal(t, []string{"foo", "bar"}, gw.writeLog())
}
