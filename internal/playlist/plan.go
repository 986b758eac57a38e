// Package playlist plans and applies insertions into and removals from a
// playlist's sparse index space.
package playlist

import (
	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/playlists"
)

// contextSize is the number of neighbours shown on each side of an
// insertion point.
const contextSize = 3

// DefaultQueueLength bounds how far queue entries may lag the current marker.
const DefaultQueueLength = 10000

// Move is an existing entry and the index it ends up at.
type Move struct {
	Song library.Song
	From int64
	To   int64
}

// InsertOptions describes where songs are inserted.
type InsertOptions struct {
	Playlist string
	// Index is relative to the current marker for the queue.
	Index  int64
	Before bool
	// Current is the queue's current marker. Ignored for other playlists.
	Current     int64
	QueueLength int64
}

// InsertPlan lists every mutation of an insertion.
type InsertPlan struct {
	Playlist string
	Queue    bool

	// Start is the on-disk index of the first new entry.
	Start int64
	Songs []library.Song

	// Renames are ordered from the highest index down.
	Renames []Move
	Prunes  []library.Song

	// ContextBefore and ContextAfter are the neighbours of the insertion
	// point. ContextAfter entries carry their shifted indices.
	ContextBefore []Move
	ContextAfter  []Move

	Current    int64
	NewCurrent int64
}

// PlanInsert computes the insertion of songs into a playlist whose entries
// are existing, ordered by index.
func PlanInsert(existing, songs []library.Song, opts InsertOptions) (*InsertPlan, error) {
	queue := opts.Playlist == playlists.QueueName
	index := opts.Index
	if queue {
		var ok bool
		if index, ok = addInt64(opts.Index, opts.Current); !ok {
			return nil, errmsg.Configuration(errmsg.OpPlaylistInsert,
				"index %d relative to current song %d is out of range", opts.Index, opts.Current)
		}
	}

	indices := make([]int64, len(existing))
	for i, s := range existing {
		indices[i] = s.Entry
	}
	k := int64(len(songs))
	point := insertionPoint(indices, index, opts.Before)
	start, ok := firstNewIndex(indices, point, index, opts.Before)
	if !ok || overflows(indices[point:], start, k) {
		return nil, errmsg.Configuration(errmsg.OpPlaylistInsert, "index %d leaves no room for %d songs", opts.Index, k)
	}

	plan := &InsertPlan{
		Playlist:   opts.Playlist,
		Queue:      queue,
		Start:      start,
		Songs:      songs,
		Current:    opts.Current,
		NewCurrent: opts.Current,
	}
	if queue && start < opts.Current {
		if plan.NewCurrent, ok = addInt64(opts.Current, k); !ok {
			return nil, errmsg.Configuration(errmsg.OpPlaylistInsert, "current song %d leaves no room for %d songs", opts.Current, k)
		}
	}

	lagging := func(i int64) bool {
		return queue && lagsBy(plan.NewCurrent, i, opts.QueueLength)
	}
	if k > 0 && lagging(start) {
		return nil, errmsg.Configuration(errmsg.OpPlaylistInsert,
			"index %d is more than %d entries behind the current song", opts.Index, opts.QueueLength)
	}

	for i := len(existing) - 1; i >= point; i-- {
		plan.Renames = append(plan.Renames, Move{Song: existing[i], From: indices[i], To: indices[i] + k})
	}
	for i := range point {
		if lagging(indices[i]) {
			plan.Prunes = append(plan.Prunes, existing[i])
		}
	}

	for i := max(0, point-contextSize); i < point; i++ {
		plan.ContextBefore = append(plan.ContextBefore, Move{Song: existing[i], From: indices[i], To: indices[i]})
	}
	for i := point; i < min(len(existing), point+contextSize); i++ {
		plan.ContextAfter = append(plan.ContextAfter, Move{Song: existing[i], From: indices[i], To: indices[i] + k})
	}
	return plan, nil
}

// Empty reports whether the plan changes nothing.
func (p *InsertPlan) Empty() bool {
	return len(p.Songs) == 0 && len(p.Prunes) == 0
}

// RemovePlan lists every mutation of a removal from one playlist.
type RemovePlan struct {
	Playlist string
	Queue    bool

	Deletes []library.Song
	// Renames are ordered from the lowest index up.
	Renames []Move

	Current    int64
	NewCurrent int64
}

// PlanRemove computes the removal of the entries of remove from a playlist
// whose entries are existing, ordered by index. Survivors move down by the
// number of removed entries below them.
func PlanRemove(playlist string, existing, remove []library.Song, current int64) *RemovePlan {
	queue := playlist == playlists.QueueName
	indices := make([]int64, len(remove))
	for i, s := range remove {
		indices[i] = s.Entry
	}
	calc := newShiftCalculator(indices)

	plan := &RemovePlan{Playlist: playlist, Queue: queue, Current: current, NewCurrent: current}
	for _, s := range existing {
		if calc.isRemoved(s.Entry) {
			plan.Deletes = append(plan.Deletes, s)
			continue
		}
		if to := calc.newIndex(s.Entry); to != s.Entry {
			plan.Renames = append(plan.Renames, Move{Song: s, From: s.Entry, To: to})
		}
	}
	if queue {
		plan.NewCurrent = current - calc.below(current)
	}
	return plan
}
