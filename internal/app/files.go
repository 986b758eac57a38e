package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/radian-software/fstunes/internal/library"
)

// uniqueFiles returns the songs of distinct canonical files, keeping the
// first song selected for each file.
func uniqueFiles(songs []library.Song) []library.Song {
	seen := make(map[string]bool, len(songs))
	out := make([]library.Song, 0, len(songs))
	for _, s := range songs {
		if seen[s.Path] {
			continue
		}
		seen[s.Path] = true
		out = append(out, s)
	}
	return out
}

// pruneEmptyDirs removes dir and its parents while they are empty, stopping
// at root.
func pruneEmptyDirs(root, dir string) error {
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		err := os.Remove(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				dir = filepath.Dir(dir)
				continue
			}
			// rmdir on a non-empty directory reports an ErrExist errno.
			if errors.Is(err, fs.ErrExist) {
				return nil
			}
			return err
		}
		log.Debug().Str("dir", dir).Msg("prune empty directory")
		dir = filepath.Dir(dir)
	}
	return nil
}
