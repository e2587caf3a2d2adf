package callhub

import (
	"sync"
	"time"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// Association is the room membership a connection currently holds.
type Association struct {
	RoomID   string
	UserID   string
	Role     models.Role
	JoinedAt time.Time
}

type entry struct {
	client      Client
	assoc       *Association
	connectedAt time.Time
}

// Registry tracks live connections and their room membership. A
// connection holds at most one association at a time; joining a second
// room implicitly leaves the first.
//
// Membership mutation and broadcast-set snapshots happen under one
// mutex, so a concurrent leave can never let a relay target a
// connection mid-removal. The lock is never held across store I/O.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*entry
	rooms map[string]map[string]Client // roomID -> connID -> client
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*entry),
		rooms: make(map[string]map[string]Client),
	}
}

// Add registers a freshly connected client with no association.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID()] = &entry{client: c, connectedAt: time.Now()}
}

// Remove drops a connection entirely. It returns the association the
// connection held, if any, together with the remaining members of that
// room so the caller can announce the departure.
func (r *Registry) Remove(connID string) (*Association, []Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[connID]
	if !ok {
		return nil, nil
	}
	delete(r.conns, connID)
	if e.assoc == nil {
		return nil, nil
	}
	r.detachLocked(connID, e.assoc.RoomID)
	return e.assoc, r.membersLocked(e.assoc.RoomID, "")
}

// Join associates a connection with a room. If the connection was
// already joined to a different room it is detached from it first; the
// prior association and that room's remaining members come back so the
// caller can broadcast the implicit leave. The final slice holds the
// new room's other members, snapshotted atomically with the mutation.
func (r *Registry) Join(connID, roomID, userID string, role models.Role) (prior *Association, priorRemaining []Client, others []Client, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, found := r.conns[connID]
	if !found {
		return nil, nil, nil, false
	}
	if e.assoc != nil {
		if e.assoc.RoomID != roomID {
			prior = e.assoc
			r.detachLocked(connID, prior.RoomID)
			priorRemaining = r.membersLocked(prior.RoomID, "")
		} else {
			// Re-join of the same room just refreshes the identity.
			r.detachLocked(connID, roomID)
		}
	}

	e.assoc = &Association{RoomID: roomID, UserID: userID, Role: role, JoinedAt: time.Now()}
	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[string]Client)
	}
	others = r.membersLocked(roomID, connID)
	r.rooms[roomID][connID] = e.client
	return prior, priorRemaining, others, true
}

// Leave clears a connection's association. It returns the association
// that was held and the room's remaining members.
func (r *Registry) Leave(connID string) (*Association, []Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.conns[connID]
	if !ok || e.assoc == nil {
		return nil, nil, false
	}
	assoc := e.assoc
	e.assoc = nil
	r.detachLocked(connID, assoc.RoomID)
	return assoc, r.membersLocked(assoc.RoomID, ""), true
}

// Association returns the membership a connection holds, or nil.
func (r *Registry) Association(connID string) *Association {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[connID]; ok {
		return e.assoc
	}
	return nil
}

// Peers returns the connection's association together with the other
// members of its room, as one consistent snapshot.
func (r *Registry) Peers(connID string) (*Association, []Client) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok || e.assoc == nil {
		return nil, nil
	}
	return e.assoc, r.membersLocked(e.assoc.RoomID, connID)
}

// Members returns every live connection joined to a room.
func (r *Registry) Members(roomID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.membersLocked(roomID, "")
}

// MembersOf returns the connection ids joined to a room.
func (r *Registry) MembersOf(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.rooms[roomID]))
	for connID := range r.rooms[roomID] {
		ids = append(ids, connID)
	}
	return ids
}

// Participants returns the declared identities joined to a room, for
// the REST room-info surface.
func (r *Registry) Participants(roomID string) []models.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Participant, 0, len(r.rooms[roomID]))
	for connID := range r.rooms[roomID] {
		if e, ok := r.conns[connID]; ok && e.assoc != nil {
			out = append(out, models.Participant{UserID: e.assoc.UserID, Role: e.assoc.Role})
		}
	}
	return out
}

// membersLocked snapshots a room's members, skipping exceptID.
// Callers must hold at least the read lock.
func (r *Registry) membersLocked(roomID, exceptID string) []Client {
	group := r.rooms[roomID]
	out := make([]Client, 0, len(group))
	for connID, c := range group {
		if connID == exceptID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// detachLocked removes a connection from a room's broadcast group and
// deletes the group when it empties. Callers must hold the write lock.
func (r *Registry) detachLocked(connID, roomID string) {
	if group, ok := r.rooms[roomID]; ok {
		delete(group, connID)
		if len(group) == 0 {
			delete(r.rooms, roomID)
		}
	}
}
