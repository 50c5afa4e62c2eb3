package realtime

import (
	"hash/fnv"
	"sort"
	"sync"

	"github.com/Kunalgarg108/ShareSpace/internal/metrics"
	"github.com/Kunalgarg108/ShareSpace/pkg/logger"
)

// Conn is the slice of a live client connection the hub needs.
// socketio.Conn satisfies it directly.
type Conn interface {
	ID() string
	Emit(event string, args ...interface{})
}

const shardCount = 32

type shard struct {
	mu    sync.RWMutex
	users map[string]map[string]Conn // userID -> connID -> conn
}

// Hub is the presence registry and best-effort delivery router. It is owned
// by the process main and injected everywhere it is needed; operations for
// the same user serialize on one shard, different users rarely contend.
//
// State is in-memory only: it resets on restart and is rebuilt as clients
// reconnect. A multi-node deployment would move the userID->connection
// mapping into a shared store keyed the same way; not needed at this scale.
type Hub struct {
	shards [shardCount]*shard
}

func NewHub() *Hub {
	h := &Hub{}
	for i := range h.shards {
		h.shards[i] = &shard{users: make(map[string]map[string]Conn)}
	}
	return h
}

func (h *Hub) shardFor(userID string) *shard {
	f := fnv.New32a()
	f.Write([]byte(userID))
	return h.shards[f.Sum32()%shardCount]
}

// Register adds a live connection for a user. The first connection takes
// the user offline->online and the new online set is broadcast to everyone.
func (h *Hub) Register(userID string, conn Conn) {
	s := h.shardFor(userID)
	s.mu.Lock()
	conns, ok := s.users[userID]
	if !ok {
		conns = make(map[string]Conn)
		s.users[userID] = conns
	}
	wasOffline := len(conns) == 0
	conns[conn.ID()] = conn
	s.mu.Unlock()

	if wasOffline {
		metrics.OnlineUsers.Inc()
		h.BroadcastOnlineUsers()
	}
}

// Unregister removes one connection. Removing the last one takes the user
// online->offline and broadcasts the transition.
func (h *Hub) Unregister(userID, connID string) {
	s := h.shardFor(userID)
	s.mu.Lock()
	conns, ok := s.users[userID]
	if ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(s.users, userID)
		}
	}
	nowOffline := ok && len(conns) == 0
	s.mu.Unlock()

	if nowOffline {
		metrics.OnlineUsers.Dec()
		h.BroadcastOnlineUsers()
	}
}

// DropConn removes a connection when only its ID is known (e.g. a
// disconnect that lost its context). Scans all shards.
func (h *Hub) DropConn(connID string) {
	for _, s := range h.shards {
		s.mu.RLock()
		var owner string
		for userID, conns := range s.users {
			if _, ok := conns[connID]; ok {
				owner = userID
				break
			}
		}
		s.mu.RUnlock()
		if owner != "" {
			h.Unregister(owner, connID)
			return
		}
	}
}

// ConnectionsFor returns a snapshot of the user's live connections.
// An offline user yields an empty slice; absence is not an error.
func (h *Hub) ConnectionsFor(userID string) []Conn {
	s := h.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	conns := make([]Conn, 0, len(s.users[userID]))
	for _, c := range s.users[userID] {
		conns = append(conns, c)
	}
	return conns
}

// IsOnline reports whether the user has at least one live connection.
func (h *Hub) IsOnline(userID string) bool {
	s := h.shardFor(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users[userID]) > 0
}

// OnlineUserIDs returns a sorted snapshot of all online users, used for
// initial state sync on a new connection.
func (h *Hub) OnlineUserIDs() []string {
	ids := make([]string, 0)
	for _, s := range h.shards {
		s.mu.RLock()
		for userID := range s.users {
			ids = append(ids, userID)
		}
		s.mu.RUnlock()
	}
	sort.Strings(ids)
	return ids
}

// PushToUser delivers an event to every live connection of a user,
// best effort. It returns immediately; delivery runs detached so a slow or
// dead connection can never stall the action that triggered it. Offline
// target is a silent no-op - the payload is already durable in the store.
func (h *Hub) PushToUser(userID, event string, payload interface{}) {
	metrics.DeliveryAttempts.Inc()
	conns := h.ConnectionsFor(userID)
	if len(conns) == 0 {
		return
	}
	go func() {
		for _, c := range conns {
			h.emit(userID, c, event, payload)
		}
	}()
}

// BroadcastOnlineUsers sends the current online-user id set to every
// connected client.
func (h *Hub) BroadcastOnlineUsers() {
	ids := h.OnlineUserIDs()
	go func() {
		for _, s := range h.shards {
			s.mu.RLock()
			conns := make([]Conn, 0)
			for _, userConns := range s.users {
				for _, c := range userConns {
					conns = append(conns, c)
				}
			}
			s.mu.RUnlock()
			for _, c := range conns {
				h.emit("", c, "online_users", ids)
			}
		}
	}()
}

// emit pushes to a single connection, containing any failure: a connection
// torn down mid-push is pruned and never fails the overall operation.
func (h *Hub) emit(userID string, c Conn, event string, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			metrics.DeliveryFailures.Inc()
			logger.Warn().
				Str("conn", c.ID()).
				Str("event", event).
				Interface("reason", r).
				Msg("dropping dead connection after failed push")
			if userID != "" {
				h.Unregister(userID, c.ID())
			}
		}
	}()
	c.Emit(event, payload)
}
