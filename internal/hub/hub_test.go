package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lxzan/gws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/virtualinput/internal/vinput"
)

type fakeConn struct {
	mu     sync.Mutex
	writes [][]byte
}

func (c *fakeConn) WriteMessage(_ gws.Opcode, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, payload)
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

type fakeActions struct {
	keys     map[vinput.Key]bool
	released []string
	modes    map[int]vinput.Mode
	added    int
	err      error
}

func newFakeActions() *fakeActions {
	return &fakeActions{keys: map[vinput.Key]bool{}, modes: map[int]vinput.Mode{}}
}

func (a *fakeActions) SetKey(_ string, key vinput.Key, down bool) { a.keys[key] = down }
func (a *fakeActions) ReleaseKeys(source string)                  { a.released = append(a.released, source) }
func (a *fakeActions) ClearJoysticks() error                      { return a.err }
func (a *fakeActions) SaveDefaults(int) error                     { return a.err }
func (a *fakeActions) RestoreDefaults(int) error                  { return a.err }

func (a *fakeActions) SetMode(j int, mode vinput.Mode) error {
	a.modes[j] = mode
	return a.err
}

func (a *fakeActions) AddJoystick() error {
	a.added++
	return a.err
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case data := <-c.send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return WSMessage{}
}

func TestHandleKeyMessage(t *testing.T) {
	c := NewClient(NewHub(), &fakeConn{})
	actions := newFakeActions()

	c.HandleMessage([]byte(`{"type":"key","code":"KeyW","down":true}`), actions)
	assert.True(t, actions.keys["KeyW"])
	assert.Empty(t, c.send)

	c.HandleMessage([]byte(`{"type":"key","code":"KeyW"}`), actions)
	assert.False(t, actions.keys["KeyW"])
}

func TestHandleCommandAck(t *testing.T) {
	c := NewClient(NewHub(), &fakeConn{})
	actions := newFakeActions()

	c.HandleMessage([]byte(`{"type":"set_mode","joystick":2,"mode":"controller"}`), actions)
	assert.Equal(t, vinput.ModeController, actions.modes[2])
	msg := receive(t, c)
	assert.Equal(t, "ack", msg.Type)
	assert.Equal(t, "set_mode", msg.Command)

	c.HandleMessage([]byte(`{"type":"add_joystick"}`), actions)
	assert.Equal(t, 1, actions.added)
	assert.Equal(t, "ack", receive(t, c).Type)
}

func TestHandleCommandErrors(t *testing.T) {
	c := NewClient(NewHub(), &fakeConn{})
	actions := newFakeActions()

	c.HandleMessage([]byte(`{"type":"set_mode","mode":"joypad"}`), actions)
	msg := receive(t, c)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "joypad")
	assert.Empty(t, actions.modes)

	c.HandleMessage([]byte(`{"type":"rumble"}`), actions)
	assert.Contains(t, receive(t, c).Error, "unknown message type")

	c.HandleMessage([]byte(`not json`), actions)
	assert.Equal(t, "error", receive(t, c).Type)

	actions.err = errors.New("disk full")
	c.HandleMessage([]byte(`{"type":"save_defaults"}`), actions)
	msg = receive(t, c)
	assert.Equal(t, "save_defaults", msg.Command)
	assert.Equal(t, "disk full", msg.Error)
}

func TestClientIDsAreUnique(t *testing.T) {
	h := NewHub()
	a, b := NewClient(h, &fakeConn{}), NewClient(h, &fakeConn{})
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	go h.Run()

	conn := &fakeConn{}
	c := NewClient(h, conn)
	go c.WritePump()
	h.Register(c)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, time.Millisecond)

	h.Broadcast([]byte(`{"type":"full"}`))
	require.Eventually(t, func() bool { return conn.count() == 1 }, time.Second, time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, time.Millisecond)
}

func TestReplyAfterSlowClientDropped(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := NewClient(h, &fakeConn{})
	h.Register(c)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, time.Millisecond)

	// Nothing drains the buffer, so the last broadcast overflows it.
	for range cap(c.send) + 1 {
		h.Broadcast([]byte(`{"type":"delta"}`))
	}
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, time.Millisecond)

	actions := newFakeActions()
	assert.NotPanics(t, func() {
		c.Reply(NewAckMessage("set_mode"))
		c.HandleMessage([]byte(`{"type":"add_joystick"}`), actions)
		h.Broadcast([]byte(`{"type":"delta"}`))
	})
	assert.Equal(t, 1, actions.added)

	n := 0
	for range c.send {
		n++
	}
	assert.Equal(t, cap(c.send), n)
}

func TestComputeDelta(t *testing.T) {
	js := func(id int, held bool) vinput.JoystickInfo {
		return vinput.JoystickInfo{ID: id, Buttons: []vinput.ButtonInfo{{Held: held}}}
	}
	old := vinput.RegistryInfo{Joysticks: []vinput.JoystickInfo{js(0, false), js(1, false)}}

	d := ComputeDelta(old, old)
	assert.True(t, d.IsEmpty())

	d = ComputeDelta(old, vinput.RegistryInfo{Joysticks: []vinput.JoystickInfo{js(0, false), js(1, true)}})
	assert.Nil(t, d.Count)
	require.Len(t, d.Joysticks, 1)
	assert.True(t, d.Joysticks[1].Buttons[0].Held)

	d = ComputeDelta(old, vinput.RegistryInfo{Joysticks: []vinput.JoystickInfo{js(0, false)}})
	require.NotNil(t, d.Count)
	assert.Equal(t, 1, *d.Count)
	assert.Empty(t, d.Joysticks)
}

func TestBroadcasterSendsDeltas(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := NewClient(h, &fakeConn{})
	h.Register(c)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, time.Millisecond)

	changes := make(chan vinput.RegistryInfo)
	b := NewBroadcaster(h, changes)
	go b.Run()
	defer close(changes)

	b.SendInitialState(c)
	assert.Equal(t, "full", receive(t, c).Type)

	state := vinput.RegistryInfo{Joysticks: []vinput.JoystickInfo{{ID: 0}}}
	changes <- state
	msg := receive(t, c)
	assert.Equal(t, "delta", msg.Type)
	require.NotNil(t, msg.Changes)
	assert.Equal(t, 1, *msg.Changes.Count)
	assert.Contains(t, msg.Changes.Joysticks, 0)

	// An unchanged state produces no message.
	changes <- state
	select {
	case data := <-c.send:
		t.Fatalf("unexpected message %s", data)
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, state, b.CurrentState())
}
