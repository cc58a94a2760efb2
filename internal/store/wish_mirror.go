// Package store holds in-memory mirrors of one user's view of the data,
// kept current by realtime change events. Events are at-least-once and
// unordered, so every apply is an idempotent upsert or removal keyed by id.
package store

import (
	"sort"
	"strings"
	"sync"

	"wishwell/internal/models"
)

// StatusFilter narrows the mirrored wish list by status.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterOpen      StatusFilter = "open"
	StatusFilterPurchased StatusFilter = "purchased"
	StatusFilterFulfilled StatusFilter = "fulfilled"
)

// WishFilter is the derived view filter: a status bucket plus at most one
// selected tag. The zero value matches everything.
type WishFilter struct {
	Status StatusFilter
	TagID  uint
}

// WishMirror mirrors one owner's wishes and tags. It is loaded once and then
// fed change events; it never re-queries.
type WishMirror struct {
	mu      sync.RWMutex
	ownerID uint
	wishes  map[uint]models.Wish
	tags    map[uint]models.Tag
}

// NewWishMirror returns an empty mirror for the given owner.
func NewWishMirror(ownerID uint) *WishMirror {
	return &WishMirror{
		ownerID: ownerID,
		wishes:  make(map[uint]models.Wish),
		tags:    make(map[uint]models.Tag),
	}
}

// OwnerID returns the owner this mirror tracks.
func (m *WishMirror) OwnerID() uint {
	return m.ownerID
}

// Load replaces the mirror contents with an initial snapshot.
func (m *WishMirror) Load(wishes []models.Wish, tags []models.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishes = make(map[uint]models.Wish, len(wishes))
	for _, w := range wishes {
		m.wishes[w.ID] = w
	}
	m.tags = make(map[uint]models.Tag, len(tags))
	for _, t := range tags {
		m.tags[t.ID] = t
	}
}

// ApplyWishUpsert inserts or overwrites a wish by id. A notification for a
// row already applied optimistically lands on the same key, so replays and
// reordered deliveries are harmless. Rows for other owners are ignored.
func (m *WishMirror) ApplyWishUpsert(wish models.Wish) {
	if wish.UserID != m.ownerID {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishes[wish.ID] = wish
}

// ApplyWishDelete removes a wish by id, whoever owned it. Delete events
// arrive on an unfiltered channel carrying only the id, so no owner check
// is possible; removing an absent id is a no-op.
func (m *WishMirror) ApplyWishDelete(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wishes, id)
}

// ApplyTagUpsert inserts or overwrites a tag by id.
func (m *WishMirror) ApplyTagUpsert(tag models.Tag) {
	if tag.UserID != m.ownerID {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[tag.ID] = tag
}

// ApplyTagDelete removes a tag by id.
func (m *WishMirror) ApplyTagDelete(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tags, id)
}

func (f WishFilter) matches(w models.Wish) bool {
	switch f.Status {
	case "", StatusFilterAll:
	case StatusFilterOpen:
		if w.Status != models.WishStatusOpen {
			return false
		}
	case StatusFilterPurchased:
		if w.Status != models.WishStatusPurchased {
			return false
		}
	case StatusFilterFulfilled:
		if w.Status != models.WishStatusFulfilled {
			return false
		}
	default:
		return false
	}
	if f.TagID != 0 && !w.HasTag(f.TagID) {
		return false
	}
	return true
}

// Wishes returns the filtered wishes, newest first.
func (m *WishMirror) Wishes(filter WishFilter) []models.Wish {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Wish, 0, len(m.wishes))
	for _, w := range m.wishes {
		if filter.matches(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Tags returns the mirrored tags in name order.
func (m *WishMirror) Tags() []models.Tag {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Wish looks up a single mirrored wish by id.
func (m *WishMirror) Wish(id uint) (models.Wish, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wishes[id]
	return w, ok
}
