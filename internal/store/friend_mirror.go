package store

import (
	"sort"
	"sync"

	"wishwell/internal/models"
)

// FriendMirror mirrors the caller's friend edges. Same discipline as
// WishMirror: load once, then idempotent upserts and removals by id.
type FriendMirror struct {
	mu     sync.RWMutex
	selfID uint
	edges  map[uint]models.FriendEdge
}

// NewFriendMirror returns an empty mirror for the given user.
func NewFriendMirror(selfID uint) *FriendMirror {
	return &FriendMirror{
		selfID: selfID,
		edges:  make(map[uint]models.FriendEdge),
	}
}

// Load replaces the mirror contents with an initial snapshot. Edges not
// involving the mirror's user are skipped.
func (m *FriendMirror) Load(edges []models.FriendEdge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = make(map[uint]models.FriendEdge, len(edges))
	for _, e := range edges {
		if e.Involves(m.selfID) {
			m.edges[e.ID] = e
		}
	}
}

// ApplyUpsert inserts or overwrites an edge by id. Edges between other
// users are ignored.
func (m *FriendMirror) ApplyUpsert(edge models.FriendEdge) {
	if !edge.Involves(m.selfID) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[edge.ID] = edge
}

// ApplyDelete removes an edge by id. Removing an absent id is a no-op.
func (m *FriendMirror) ApplyDelete(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, id)
}

// Edges returns the mirrored edges: incoming pending requests first, then
// the rest newest-first. Rejected edges are hidden unless asked for.
func (m *FriendMirror) Edges(includeRejected bool) []models.FriendEdge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.FriendEdge, 0, len(m.edges))
	for _, e := range m.edges {
		if e.Status == models.FriendEdgeStatusRejected && !includeRejected {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		iInbox := out[i].Status == models.FriendEdgeStatusPending && out[i].RecipientID == m.selfID
		jInbox := out[j].Status == models.FriendEdgeStatusPending && out[j].RecipientID == m.selfID
		if iInbox != jInbox {
			return iInbox
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Counterparties returns the profile of the other user on each visible edge.
func (m *FriendMirror) Counterparties(includeRejected bool) []models.Profile {
	edges := m.Edges(includeRejected)
	out := make([]models.Profile, 0, len(edges))
	for _, e := range edges {
		out = append(out, e.Counterparty(m.selfID))
	}
	return out
}
