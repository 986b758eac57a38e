package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/media"
	"github.com/radian-software/fstunes/internal/playlists"
)

func openRoot(t *testing.T) *Root {
	t.Helper()
	r, err := Open(t.TempDir())
	require.NoError(t, err)
	return r
}

// addSong creates the canonical file of an A/B song with the given track.
func addSong(t *testing.T, r *Root, track int) string {
	t.Helper()
	path, err := r.CanonicalPath(media.Metadata{
		Artist:    media.String("A"),
		Album:     media.String("B"),
		Track:     media.Int(track),
		Song:      media.String("C"),
		Extension: ".mp3",
	})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func addEntry(t *testing.T, r *Root, playlist string, index int64, canonical string) {
	t.Helper()
	target, err := filepath.Rel(r.Playlists.Path(playlist), canonical)
	require.NoError(t, err)
	require.NoError(t, os.Symlink(target, r.Playlists.EntryPath(playlist, index)))
}

func tracks(songs []Song) []int {
	out := make([]int, len(songs))
	for i, s := range songs {
		out[i] = *s.Track
	}
	return out
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	r, err := Open(dir)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dir, "media"))
	assert.DirExists(t, filepath.Join(dir, "playlists", "queue"))
	assert.Equal(t, filepath.Join(dir, "media"), r.MediaDir())
}

func TestOpen_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, dir := range []string{"", file, filepath.Join(t.TempDir(), "missing")} {
		_, err := Open(dir)
		assert.True(t, errmsg.Is(err, errmsg.KindConfiguration), "Open(%q) = %v", dir, err)
	}
}

func TestMediaSongs(t *testing.T) {
	r := openRoot(t)
	for i := 1; i <= 3; i++ {
		addSong(t, r, i)
	}

	songs, err := r.MediaSongs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, tracks(songs))
	for _, s := range songs {
		assert.Equal(t, match.MediaSource, s.Source)
		assert.Nil(t, s.Index)
		assert.False(t, s.FromPlaylist())
	}
}

func TestMediaSongs_ParseErrorIsFatal(t *testing.T) {
	r := openRoot(t)
	addSong(t, r, 1)
	require.NoError(t, os.WriteFile(filepath.Join(r.MediaDir(), "stray.txt"), nil, 0o644))

	_, err := r.MediaSongs()
	assert.True(t, errmsg.Is(err, errmsg.KindParse), "got %v", err)
}

func TestPlaylistSongs_QueueIndexIsRelative(t *testing.T) {
	r := openRoot(t)
	for i := 1; i <= 3; i++ {
		addEntry(t, r, playlists.QueueName, int64(i*10), addSong(t, r, i))
	}
	require.NoError(t, r.Playlists.SetCurrent(20))

	songs, err := r.PlaylistSongs(playlists.QueueName)
	require.NoError(t, err)
	require.Len(t, songs, 3)

	var got []int64
	for _, s := range songs {
		got = append(got, *s.Index)
	}
	assert.Equal(t, []int64{-10, 0, 10}, got)
	assert.Equal(t, int64(30), songs[2].Entry)
	assert.Equal(t, playlists.QueueName, songs[0].Source)
}

func TestPlaylistSongs_TargetOutsideMedia(t *testing.T) {
	r := openRoot(t)
	require.NoError(t, os.Symlink("../../elsewhere/A/B/1 C.mp3", r.Playlists.EntryPath(playlists.QueueName, 0)))

	_, err := r.PlaylistSongs(playlists.QueueName)
	assert.True(t, errmsg.Is(err, errmsg.KindParse), "got %v", err)
}

func TestCollectMatchedSongs(t *testing.T) {
	r := openRoot(t)
	var paths []string
	for i := 1; i <= 10; i++ {
		paths = append(paths, addSong(t, r, i))
	}
	require.NoError(t, r.Playlists.Create([]string{"rock", "jazz"}))
	addEntry(t, r, "rock", 0, paths[0])
	addEntry(t, r, "rock", 5, paths[4])
	addEntry(t, r, "jazz", 1, paths[8])

	p := match.NewParser()
	tests := []struct {
		name    string
		syntax  match.Syntax
		exprs   []string
		want    []int
		sources []string
	}{
		{"default is media only", match.SyntaxAuto, nil, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, []string{"media"}},
		{"range over media", match.SyntaxAuto, []string{"track=3-5"}, []int{3, 4, 5}, []string{"media"}},
		{"set over media", match.SyntaxAuto, []string{"track=1,5,9"}, []int{1, 5, 9}, []string{"media"}},
		{"one playlist", match.SyntaxLiteral, []string{"from=rock"}, []int{1, 5}, []string{"rock", "rock"}},
		{"playlists and index", match.SyntaxAuto, []string{"from=rock,jazz", "index=1-5"}, []int{9, 5}, []string{"jazz", "rock"}},
		{"every source", match.SyntaxAll, []string{"from"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := match.New()
			for _, e := range tt.exprs {
				require.NoError(t, p.Into(m, tt.syntax, e))
			}
			songs, err := CollectMatchedSongs(r, m)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Len(t, songs, 13)
				return
			}
			assert.ElementsMatch(t, tt.want, tracks(songs))
			var sources []string
			for _, s := range songs {
				sources = append(sources, s.Source)
			}
			assert.Equal(t, tt.sources, sources)
		})
	}
}

func TestCollectMatchedSongs_NoSource(t *testing.T) {
	r := openRoot(t)
	m := match.New()
	require.NoError(t, match.NewParser().Into(m, match.SyntaxLiteral, "from=nothing"))

	_, err := CollectMatchedSongs(r, m)
	assert.True(t, errmsg.Is(err, errmsg.KindConfiguration), "got %v", err)
}
