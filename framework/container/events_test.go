package container_test

import (
	"testing"

	"github.com/km-arc/go-dislocator/framework/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(c *container.Container) (*[]container.Event, func()) {
	var events []container.Event
	cancel := c.Subscribe(func(ev container.Event) { events = append(events, ev) })
	return &events, cancel
}

func TestSubscribe_Lifecycle(t *testing.T) {
	c := container.New()
	events, cancel := record(c)
	defer cancel()

	require.NoError(t, c.Register("svc", value("instance")))
	_, err := c.Get("svc")
	require.NoError(t, err)
	_, err = c.Get("svc")
	require.NoError(t, err)
	require.NoError(t, c.Unregister("svc"))

	require.Len(t, *events, 3)

	assert.Equal(t, container.EventRegistered, (*events)[0].Kind)
	assert.Equal(t, "svc", (*events)[0].Name)

	assert.Equal(t, container.EventCreated, (*events)[1].Kind)
	assert.Equal(t, "instance", (*events)[1].Instance)

	assert.Equal(t, container.EventUnregistered, (*events)[2].Kind)
	assert.Equal(t, "instance", (*events)[2].Instance)
	assert.True(t, (*events)[2].Instantiated)
}

func TestSubscribe_UnregisterNeverInstantiated(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Register("svc", value("instance")))

	events, cancel := record(c)
	defer cancel()
	require.NoError(t, c.Unregister("svc"))

	require.Len(t, *events, 1)
	assert.False(t, (*events)[0].Instantiated)
	assert.Nil(t, (*events)[0].Instance)
}

func TestSubscribe_FailuresEmitNothing(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Instance("taken", 1))

	events, cancel := record(c)
	defer cancel()

	assert.Error(t, c.Instance("taken", 2))
	assert.Error(t, c.Instance("bad-name", 2))
	assert.Error(t, c.Unregister("missing"))
	_, err := c.Get("missing")
	assert.Error(t, err)

	assert.Empty(t, *events)
}

func TestSubscribe_Cancel(t *testing.T) {
	c := container.New()
	events, cancel := record(c)

	require.NoError(t, c.Instance("a", 1))
	cancel()
	require.NoError(t, c.Instance("b", 2))

	require.Len(t, *events, 1)
	assert.Equal(t, "a", (*events)[0].Name)
}

func TestSubscribe_ListenerMayUseContainer(t *testing.T) {
	c := container.New()
	var seen []bool
	cancel := c.Subscribe(func(ev container.Event) {
		seen = append(seen, c.IsRegistered(ev.Name))
	})
	defer cancel()

	require.NoError(t, c.Instance("a", 1))
	require.NoError(t, c.Unregister("a"))

	assert.Equal(t, []bool{true, false}, seen)
}

func TestEventKind_String(t *testing.T) {
	tests := map[container.EventKind]string{
		container.EventRegistered:   "registered",
		container.EventUnregistered: "unregistered",
		container.EventCreated:      "created",
		container.EventKind(0):      "unknown",
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.String())
	}
}
