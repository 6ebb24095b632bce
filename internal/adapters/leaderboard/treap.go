package leaderboard

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/okian/meritsim/internal/domain/model"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: points DESC, then actor ID ASC. "less" means ranks earlier, so
// in-order traversal yields the leaderboard from best to worst.

type record struct {
	points       int
	name         string
	groupID      string
	achievements int
}

type node struct {
	id     string
	points int
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func less(aPoints int, aID string, bPoints int, bID string) bool {
	if aPoints != bPoints {
		return aPoints > bPoints
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

// priority hashes the id so the tree shape depends only on its contents.
func priority(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

func insert(n *node, id string, points int) *node {
	if n == nil {
		return &node{id: id, points: points, prio: priority(id), size: 1}
	}
	if less(points, id, n.points, n.id) {
		n.left = insert(n.left, id, points)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, points)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, points int) *node {
	if n == nil {
		return nil
	}
	switch {
	case points == n.points && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, points)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, points)
		}
	case less(points, id, n.points, n.id):
		n.left = deleteNode(n.left, id, points)
	default:
		n.right = deleteNode(n.right, id, points)
	}
	fix(n)
	return n
}

// walk visits nodes in rank order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, visit) && visit(n) && walk(n.right, visit)
}

// Board is an in-memory leaderboard safe for concurrent use.
type Board struct {
	mu   sync.RWMutex
	root *node
	byID map[string]record
}

var _ Store = (*Board)(nil)

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{byID: make(map[string]record)}
}

// Set implements Store.Set in O(log n) expected time.
func (b *Board) Set(_ context.Context, actor *model.Actor) error {
	if actor.ID == "" {
		return ErrEmptyID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.byID[actor.ID]; ok {
		b.root = deleteNode(b.root, actor.ID, old.points)
	}
	b.byID[actor.ID] = record{
		points:       actor.TotalPoints,
		name:         actor.Name,
		groupID:      actor.GroupID,
		achievements: len(actor.Achievements),
	}
	b.root = insert(b.root, actor.ID, actor.TotalPoints)
	return nil
}

// Rank implements Store.Rank. Equal points share a rank and ranks are
// consecutive, so 50, 50, 40 rank 1, 1, 2.
func (b *Board) Rank(_ context.Context, actorID string) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.byID[actorID]
	if !ok {
		return Entry{}, ErrNotFound
	}

	rank, prev := 0, 0
	walk(b.root, func(n *node) bool {
		if rank == 0 || n.points != prev {
			rank++
			prev = n.points
		}
		return n.id != actorID
	})
	return b.entry(actorID, rec, rank), nil
}

// TopN implements Store.TopN.
func (b *Board) TopN(_ context.Context, n int) ([]Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(b.byID)))
	rank, prev := 0, 0
	walk(b.root, func(nd *node) bool {
		if len(out) >= n {
			return false
		}
		if rank == 0 || nd.points != prev {
			rank++
			prev = nd.points
		}
		out = append(out, b.entry(nd.id, b.byID[nd.id], rank))
		return true
	})
	return out, nil
}

// Count implements Store.Count.
func (b *Board) Count(_ context.Context) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byID)
}

func (b *Board) entry(id string, rec record, rank int) Entry {
	return Entry{
		Rank:         rank,
		ActorID:      id,
		Name:         rec.name,
		GroupID:      rec.groupID,
		Points:       rec.points,
		Achievements: rec.achievements,
	}
}
