package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeConn records emitted events; dead conns panic like a torn-down socket.
type fakeConn struct {
	id   string
	dead bool

	mu     sync.Mutex
	events []string
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Emit(event string, args ...interface{}) {
	if f.dead {
		panic("write on closed connection")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeConn) received(event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

func TestRegisterUnregisterTransitions(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline("u1"))
	assert.Empty(t, hub.ConnectionsFor("u1"))

	tab1 := &fakeConn{id: "c1"}
	tab2 := &fakeConn{id: "c2"}

	hub.Register("u1", tab1)
	assert.True(t, hub.IsOnline("u1"))
	assert.Equal(t, []string{"u1"}, hub.OnlineUserIDs())

	// Second tab: still online, no new transition.
	hub.Register("u1", tab2)
	assert.Len(t, hub.ConnectionsFor("u1"), 2)

	// Closing one tab keeps the user online.
	hub.Unregister("u1", "c1")
	assert.True(t, hub.IsOnline("u1"))

	// Last handle gone -> offline, entry removed.
	hub.Unregister("u1", "c2")
	assert.False(t, hub.IsOnline("u1"))
	assert.Empty(t, hub.OnlineUserIDs())
}

func TestPushToUserReachesAllConnections(t *testing.T) {
	hub := NewHub()
	tab1 := &fakeConn{id: "c1"}
	tab2 := &fakeConn{id: "c2"}
	hub.Register("u1", tab1)
	hub.Register("u1", tab2)

	hub.PushToUser("u1", "notification", map[string]interface{}{"type": "like"})

	assert.Eventually(t, func() bool {
		return tab1.received("notification") && tab2.received("notification")
	}, time.Second, 5*time.Millisecond)
}

func TestPushToOfflineUserIsNoOp(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.PushToUser("ghost", "notification", nil)
	assert.False(t, hub.IsOnline("ghost"))
}

func TestDeadConnectionIsPrunedAndDoesNotFailPush(t *testing.T) {
	hub := NewHub()
	alive := &fakeConn{id: "alive"}
	dead := &fakeConn{id: "dead", dead: true}
	hub.Register("u1", alive)
	hub.Register("u1", dead)

	hub.PushToUser("u1", "new_message", "hello")

	assert.Eventually(t, func() bool {
		return alive.received("new_message")
	}, time.Second, 5*time.Millisecond)

	// The dead handle gets dropped opportunistically.
	assert.Eventually(t, func() bool {
		for _, c := range hub.ConnectionsFor("u1") {
			if c.ID() == "dead" {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
	assert.True(t, hub.IsOnline("u1"))
}

func TestOnlineBroadcastOnTransition(t *testing.T) {
	hub := NewHub()
	watcher := &fakeConn{id: "w"}
	hub.Register("watcher", watcher)

	hub.Register("u2", &fakeConn{id: "c-u2"})

	// The already-connected watcher hears about u2 coming online.
	assert.Eventually(t, func() bool {
		return watcher.received("online_users")
	}, time.Second, 5*time.Millisecond)
}

func TestDropConnByID(t *testing.T) {
	hub := NewHub()
	hub.Register("u1", &fakeConn{id: "c1"})

	hub.DropConn("c1")
	assert.False(t, hub.IsOnline("u1"))

	// Unknown conn ids are ignored.
	hub.DropConn("nope")
}

func TestConcurrentRegisterUnregister(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%10)
			connID := fmt.Sprintf("conn-%d", i)
			hub.Register(userID, &fakeConn{id: connID})
			hub.PushToUser(userID, "ping", nil)
			hub.Unregister(userID, connID)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, hub.OnlineUserIDs())
}
