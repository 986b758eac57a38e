package playlist

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/playlists"
)

func entries(indices ...int64) []library.Song {
	songs := make([]library.Song, len(indices))
	for i, idx := range indices {
		songs[i] = library.Song{Source: "p", Entry: idx, Path: fmt.Sprintf("/old/%d", idx)}
	}
	return songs
}

func newSongs(n int) []library.Song {
	songs := make([]library.Song, n)
	for i := range songs {
		songs[i] = library.Song{Source: "media", Path: fmt.Sprintf("/new/%d", i)}
	}
	return songs
}

// order simulates a plan and returns the resulting song paths by index.
func order(existing []library.Song, plan *InsertPlan) []string {
	byIndex := map[int64]string{}
	for _, s := range existing {
		byIndex[s.Entry] = s.Path
	}
	for _, mv := range plan.Renames {
		if _, taken := byIndex[mv.To]; taken {
			panic(fmt.Sprintf("rename %d -> %d overwrites an entry", mv.From, mv.To))
		}
		byIndex[mv.To] = byIndex[mv.From]
		delete(byIndex, mv.From)
	}
	for i, s := range plan.Songs {
		idx := plan.Start + int64(i)
		if _, taken := byIndex[idx]; taken {
			panic(fmt.Sprintf("create %d overwrites an entry", idx))
		}
		byIndex[idx] = s.Path
	}
	for _, s := range plan.Prunes {
		delete(byIndex, s.Entry)
	}
	keys := make([]int64, 0, len(byIndex))
	for k := range byIndex {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = byIndex[k]
	}
	return out
}

func paths(songs []library.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Path
	}
	return out
}

func TestPlanInsert_PreservesOrder(t *testing.T) {
	tests := []struct {
		name    string
		indices []int64
		index   int64
		before  bool
		k       int
		point   int
	}{
		{"empty playlist", nil, 0, true, 2, 0},
		{"before equal", []int64{1, 2, 3}, 2, true, 3, 1},
		{"after equal", []int64{1, 2, 3}, 2, false, 3, 2},
		{"into gap", []int64{0, 10, 20}, 5, true, 2, 1},
		{"at end", []int64{0, 1}, 7, false, 1, 2},
		{"after last possible index", []int64{0, 5, 9}, math.MaxInt64, false, 1, 3},
		{"at start", []int64{0, 1}, -1, true, 2, 0},
		{"dense run", []int64{0, 1, 2, 3, 4, 5}, 0, false, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := entries(tt.indices...)
			songs := newSongs(tt.k)
			plan, err := PlanInsert(existing, songs, InsertOptions{Playlist: "p", Index: tt.index, Before: tt.before})
			require.NoError(t, err)

			want := slices.Concat(paths(existing[:tt.point]), paths(songs), paths(existing[tt.point:]))
			assert.Equal(t, want, order(existing, plan))
		})
	}
}

func TestPlanInsert_RenamesStrictlyDescending(t *testing.T) {
	existing := entries(0, 1, 2, 3, 4, 5, 6, 7)
	plan, err := PlanInsert(existing, newSongs(3), InsertOptions{Playlist: "p", Index: 2, Before: true})
	require.NoError(t, err)

	require.Len(t, plan.Renames, 6)
	for i := 1; i < len(plan.Renames); i++ {
		if plan.Renames[i].From >= plan.Renames[i-1].From {
			t.Errorf("rename %d from %d after %d, want strictly descending", i, plan.Renames[i].From, plan.Renames[i-1].From)
		}
	}
	assert.Equal(t, Move{Song: existing[7], From: 7, To: 10}, plan.Renames[0])
	assert.Equal(t, int64(2), plan.Start)
}

func TestPlanInsert_Context(t *testing.T) {
	existing := entries(0, 1, 2, 3, 4, 5, 6, 7, 8)
	plan, err := PlanInsert(existing, newSongs(1), InsertOptions{Playlist: "p", Index: 4, Before: true})
	require.NoError(t, err)

	assert.Equal(t, []Move{
		{Song: existing[1], From: 1, To: 1},
		{Song: existing[2], From: 2, To: 2},
		{Song: existing[3], From: 3, To: 3},
	}, plan.ContextBefore)
	assert.Equal(t, []Move{
		{Song: existing[4], From: 4, To: 5},
		{Song: existing[5], From: 5, To: 6},
		{Song: existing[6], From: 6, To: 7},
	}, plan.ContextAfter)
}

func TestPlanInsert_QueueMarker(t *testing.T) {
	tests := []struct {
		name       string
		index      int64
		before     bool
		start      int64
		newCurrent int64
	}{
		{"before current makes new songs current", 0, true, 10, 10},
		{"after current keeps current song", 0, false, 11, 10},
		{"behind current shifts marker", -2, true, 8, 12},
		{"ahead of current", 3, true, 13, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := entries(5, 6, 7, 8, 9, 10, 11, 12, 13, 14)
			plan, err := PlanInsert(existing, newSongs(2), InsertOptions{
				Playlist:    playlists.QueueName,
				Index:       tt.index,
				Before:      tt.before,
				Current:     10,
				QueueLength: DefaultQueueLength,
			})
			require.NoError(t, err)
			assert.True(t, plan.Queue)
			assert.Equal(t, tt.start, plan.Start)
			assert.Equal(t, tt.newCurrent, plan.NewCurrent)
		})
	}
}

func TestPlanInsert_QueueWindow(t *testing.T) {
	const queueLength = 3
	existing := entries(0, 1, 2, 3, 4, 5, 6)
	songs := newSongs(2)
	plan, err := PlanInsert(existing, songs, InsertOptions{
		Playlist:    playlists.QueueName,
		Index:       -1,
		Before:      true,
		Current:     5,
		QueueLength: queueLength,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), plan.NewCurrent)
	var pruned []int64
	for _, s := range plan.Prunes {
		pruned = append(pruned, s.Entry)
	}
	assert.Equal(t, []int64{0, 1, 2, 3}, pruned)

	// Every surviving entry is within the window of the new marker.
	byIndex := map[int64]bool{}
	for _, s := range existing {
		byIndex[s.Entry] = true
	}
	for _, mv := range plan.Renames {
		delete(byIndex, mv.From)
		byIndex[mv.To] = true
	}
	for _, s := range plan.Prunes {
		delete(byIndex, s.Entry)
	}
	for i := range songs {
		byIndex[plan.Start+int64(i)] = true
	}
	for idx := range byIndex {
		assert.LessOrEqual(t, plan.NewCurrent-idx, int64(queueLength), "entry %d lags the marker", idx)
	}
}

func TestPlanInsert_OutsideWindow(t *testing.T) {
	_, err := PlanInsert(entries(0, 10), newSongs(1), InsertOptions{
		Playlist:    playlists.QueueName,
		Index:       -5,
		Before:      true,
		Current:     10,
		QueueLength: 2,
	})
	assert.True(t, errmsg.Is(err, errmsg.KindConfiguration), "got %v", err)
}

func TestPlanInsert_OtherPlaylistsNeverPrune(t *testing.T) {
	plan, err := PlanInsert(entries(-100, 0), newSongs(1), InsertOptions{Playlist: "p", Index: 50, Current: 1000})
	require.NoError(t, err)
	assert.Empty(t, plan.Prunes)
	assert.False(t, plan.Queue)
	assert.Equal(t, int64(50), plan.Start)
}

func TestPlanInsert_AfterStartsAtIndex(t *testing.T) {
	tests := []struct {
		name    string
		indices []int64
		index   int64
		start   int64
	}{
		{name: "empty playlist", indices: nil, index: 5, start: 5},
		{name: "gap", indices: []int64{0, 10}, index: 5, start: 5},
		{name: "equal entry", indices: []int64{0, 5, 10}, index: 5, start: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanInsert(entries(tt.indices...), newSongs(1), InsertOptions{Playlist: "p", Index: tt.index})
			require.NoError(t, err)
			assert.Equal(t, tt.start, plan.Start)
		})
	}
}

func TestPlanInsert_IndexOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		existing []library.Song
		k        int
		opts     InsertOptions
	}{
		{
			name:     "after last possible entry",
			existing: entries(0, 5, math.MaxInt64),
			k:        1,
			opts:     InsertOptions{Playlist: "p", Index: math.MaxInt64},
		},
		{
			name:     "after last possible index with no room",
			existing: entries(0, 5, 9),
			k:        2,
			opts:     InsertOptions{Playlist: "p", Index: math.MaxInt64},
		},
		{
			name:     "queue index relative to current",
			existing: entries(0, 5),
			k:        1,
			opts:     InsertOptions{Playlist: playlists.QueueName, Index: math.MaxInt64, Current: 5, QueueLength: 10},
		},
		{
			name:     "queue index below current",
			existing: entries(0, 5),
			k:        1,
			opts:     InsertOptions{Playlist: playlists.QueueName, Index: math.MinInt64, Before: true, Current: -5, QueueLength: 10},
		},
		{
			name:     "queue marker",
			existing: nil,
			k:        1,
			opts:     InsertOptions{Playlist: playlists.QueueName, Index: -1, Before: true, Current: math.MaxInt64, QueueLength: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := PlanInsert(tt.existing, newSongs(tt.k), tt.opts)
			assert.Nil(t, plan)
			assert.True(t, errmsg.Is(err, errmsg.KindConfiguration), "got %v", err)
		})
	}
}

func TestPlanInsert_PrunesDistantQueueEntries(t *testing.T) {
	existing := []library.Song{
		{Source: "p", Entry: math.MinInt64, Path: "/old/min"},
		{Source: "p", Entry: 5, Path: "/old/5"},
	}
	plan, err := PlanInsert(existing, newSongs(1), InsertOptions{
		Playlist:    playlists.QueueName,
		Index:       0,
		Before:      true,
		Current:     5,
		QueueLength: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/old/min"}, paths(plan.Prunes))
	assert.Equal(t, []string{"/new/0", "/old/5"}, order(existing, plan))
}

func TestPlanRemove(t *testing.T) {
	existing := entries(0, 1, 2, 5, 6, 9)
	remove := []library.Song{existing[4], existing[1]}

	plan := PlanRemove("p", existing, remove, 0)

	var deleted []int64
	for _, s := range plan.Deletes {
		deleted = append(deleted, s.Entry)
	}
	assert.Equal(t, []int64{1, 6}, deleted)

	var moves [][2]int64
	for _, mv := range plan.Renames {
		moves = append(moves, [2]int64{mv.From, mv.To})
	}
	assert.Equal(t, [][2]int64{{2, 1}, {5, 4}, {9, 7}}, moves)
	assert.False(t, plan.Queue)
}

func TestPlanRemove_QueueMarker(t *testing.T) {
	existing := entries(0, 1, 2, 3, 4)
	plan := PlanRemove(playlists.QueueName, existing, []library.Song{existing[0], existing[3]}, 2)

	assert.True(t, plan.Queue)
	assert.Equal(t, int64(1), plan.NewCurrent)
	for i := 1; i < len(plan.Renames); i++ {
		assert.Greater(t, plan.Renames[i].From, plan.Renames[i-1].From, "renames must ascend")
	}
}
