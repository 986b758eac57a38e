package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/library"
	"github.com/radian-software/fstunes/internal/media"
	"github.com/radian-software/fstunes/internal/playlists"
)

type fixture struct {
	root  *library.Root
	songs []library.Song
}

// newFixture opens a library with n canonical songs, tracks 1..n.
func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	root, err := library.Open(t.TempDir())
	require.NoError(t, err)
	f := &fixture{root: root}
	for i := 1; i <= n; i++ {
		m := media.Metadata{Artist: media.String("A"), Album: media.String("B"), Track: media.Int(i), Song: media.String("C"), Extension: ".mp3"}
		path, err := root.CanonicalPath(m)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		f.songs = append(f.songs, library.Song{Metadata: m, Path: path, Source: "media"})
	}
	return f
}

func (f *fixture) insert(t *testing.T, playlist string, index int64, before bool, songs ...library.Song) {
	t.Helper()
	existing, err := f.root.PlaylistSongs(playlist)
	require.NoError(t, err)
	current, err := f.root.Playlists.Current()
	require.NoError(t, err)
	plan, err := PlanInsert(existing, songs, InsertOptions{
		Playlist:    playlist,
		Index:       index,
		Before:      before,
		Current:     current,
		QueueLength: DefaultQueueLength,
	})
	require.NoError(t, err)
	require.NoError(t, ApplyInsert(f.root.Playlists, plan))
}

func (f *fixture) tracks(t *testing.T, playlist string) []int {
	t.Helper()
	songs, err := f.root.PlaylistSongs(playlist)
	require.NoError(t, err)
	out := make([]int, len(songs))
	for i, s := range songs {
		out[i] = *s.Track
	}
	return out
}

func TestApplyInsert(t *testing.T) {
	f := newFixture(t, 5)
	require.NoError(t, f.root.Playlists.Create([]string{"mix"}))

	f.insert(t, "mix", 0, true, f.songs[0], f.songs[1])
	f.insert(t, "mix", 1, true, f.songs[2])
	f.insert(t, "mix", 2, false, f.songs[3], f.songs[4])

	assert.Equal(t, []int{1, 3, 2, 4, 5}, f.tracks(t, "mix"))

	target, err := os.Readlink(f.root.Playlists.EntryPath("mix", 0))
	require.NoError(t, err)
	assert.Equal(t, "../../media/A/B/1 C.mp3", target)
}

func TestApplyInsert_Queue(t *testing.T) {
	f := newFixture(t, 4)
	q := playlists.QueueName

	f.insert(t, q, 0, true, f.songs[0], f.songs[1])
	require.NoError(t, f.root.Playlists.SetCurrent(1))
	f.insert(t, q, 0, true, f.songs[2])
	f.insert(t, q, -1, true, f.songs[3])

	assert.Equal(t, []int{4, 1, 3, 2}, f.tracks(t, q))
	current, err := f.root.Playlists.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)

	songs, err := f.root.PlaylistSongs(q)
	require.NoError(t, err)
	assert.Equal(t, 3, *songs[int(current)].Track, "inserted before current becomes current")
}

func TestApplyInsert_MissingPlaylist(t *testing.T) {
	f := newFixture(t, 1)
	plan, err := PlanInsert(nil, f.songs, InsertOptions{Playlist: "nope"})
	require.NoError(t, err)

	err = ApplyInsert(f.root.Playlists, plan)
	assert.True(t, errmsg.Is(err, errmsg.KindConflict), "got %v", err)
}

func TestApplyInsert_PartialMutation(t *testing.T) {
	f := newFixture(t, 3)
	require.NoError(t, f.root.Playlists.Create([]string{"mix"}))
	f.insert(t, "mix", 0, true, f.songs[0], f.songs[1])

	existing, err := f.root.PlaylistSongs("mix")
	require.NoError(t, err)
	plan, err := PlanInsert(existing, f.songs[2:], InsertOptions{Playlist: "mix", Index: 0, Before: true})
	require.NoError(t, err)

	// Another writer took the slot the last entry moves to.
	require.NoError(t, os.Symlink("x", f.root.Playlists.EntryPath("mix", 2)))

	err = ApplyInsert(f.root.Playlists, plan)
	var e *errmsg.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errmsg.KindPartialMutation, e.Kind)
	assert.Contains(t, e.Details, "failed step: rename entry")
}

func TestApplyRemove(t *testing.T) {
	f := newFixture(t, 5)
	q := playlists.QueueName
	f.insert(t, q, 0, true, f.songs...)
	require.NoError(t, f.root.Playlists.SetCurrent(3))

	existing, err := f.root.PlaylistSongs(q)
	require.NoError(t, err)
	plan := PlanRemove(q, existing, []library.Song{existing[0], existing[2]}, 3)
	require.NoError(t, ApplyRemove(f.root.Playlists, plan))

	assert.Equal(t, []int{2, 4, 5}, f.tracks(t, q))
	current, err := f.root.Playlists.Current()
	require.NoError(t, err)
	assert.Equal(t, int64(1), current)

	songs, err := f.root.PlaylistSongs(q)
	require.NoError(t, err)
	assert.Equal(t, 4, *songs[current].Track, "marker still points at the same song")
	for i, s := range songs {
		assert.Equal(t, int64(i), s.Entry)
	}
}
