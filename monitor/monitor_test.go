package monitor_test

import (
	"testing"

	"github.com/basic-lang/basic/engine"
	"github.com/basic-lang/basic/monitor"
	"github.com/basic-lang/basic/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nullIO struct{ out []string }

func (n *nullIO) Print(s string)           { n.out = append(n.out, s) }
func (n *nullIO) ReadLine() (string, bool) { return "", false }
func (n *nullIO) LastKey() byte            { return 0 }
func (n *nullIO) Clock() string            { return "00:00:00" }
func (n *nullIO) Escaped() bool            { return false }

func TestAddBreakpoint_ReEnablesRatherThanDuplicating(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)

	first := m.AddBreakpoint(10, false)
	second := m.AddBreakpoint(10, true)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Temporary)
	assert.Len(t, m.Breakpoints(), 1)
}

func TestDeleteBreakpoint(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)

	bp := m.AddBreakpoint(10, false)
	require.NoError(t, m.DeleteBreakpoint(bp.ID))
	assert.Empty(t, m.Breakpoints())

	assert.Error(t, m.DeleteBreakpoint(999))
}

func TestAddWatch_DeleteWatch(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)

	wp := m.AddWatch("X")
	assert.Len(t, m.Watches(), 1)

	require.NoError(t, m.DeleteWatch(wp.ID))
	assert.Empty(t, m.Watches())
}

func TestCheck_BreakpointFires(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)
	eng.Monitor = m

	_, err := eng.Submit(`10 X=1`)
	require.NoError(t, err)
	_, err = eng.Submit(`20 X=2`)
	require.NoError(t, err)

	m.AddBreakpoint(20, false)

	_, err = eng.Submit("RUN")
	require.NoError(t, err)
	err = eng.RunPending()
	require.True(t, engine.IsBreakpoint(err))

	require.NotNil(t, m.LastHit)
	assert.Equal(t, token.LineNumber(20), m.LastHit.Line)
	assert.Equal(t, 1, m.Breakpoints()[0].HitCount)
}

func TestCheck_TemporaryBreakpointDeletesAfterHit(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)
	eng.Monitor = m

	_, _ = eng.Submit(`10 X=1`)
	m.AddBreakpoint(10, true)

	_, _ = eng.Submit("RUN")
	err := eng.RunPending()
	require.True(t, engine.IsBreakpoint(err))
	assert.Empty(t, m.Breakpoints())
}

func TestCheck_WatchpointFiresOnValueChange(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)
	eng.Monitor = m

	_, _ = eng.Submit(`10 X=1`)
	_, _ = eng.Submit(`20 X=2`)
	_, _ = eng.Submit(`30 X=3`)

	m.AddWatch("X")

	_, _ = eng.Submit("RUN")
	err := eng.RunPending()
	require.True(t, engine.IsBreakpoint(err))
	require.NotNil(t, m.LastHit)
	assert.NotNil(t, m.LastHit.Watchpoint)
	assert.Equal(t, "X", m.LastHit.Watchpoint.Name)
}

func TestCheck_BreakpointTakesPrecedenceOverWatchpoint(t *testing.T) {
	eng := engine.New(&nullIO{})
	m := monitor.New(eng)
	eng.Monitor = m

	_, _ = eng.Submit(`10 X=1`)
	_, _ = eng.Submit(`20 X=2`)

	m.AddBreakpoint(20, false)
	m.AddWatch("X")

	_, _ = eng.Submit("RUN")
	err := eng.RunPending()
	require.True(t, engine.IsBreakpoint(err))
	require.NotNil(t, m.LastHit)
	assert.NotNil(t, m.LastHit.Breakpoint)
	assert.Nil(t, m.LastHit.Watchpoint)
}
