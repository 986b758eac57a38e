package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner() *Runner {
	return &Runner{Stdin: strings.NewReader(""), Stdout: &strings.Builder{}, Stderr: &strings.Builder{}}
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name    string
		command string
		input   string
		want    string
	}{
		{"unchanged", "true", "artist: A\n", "artist: A\n"},
		{"rewritten by sed", "sed -i s/A/B/", "artist: A\n", "artist: B\n"},
		{"appended", "f() { echo 'song: C' >> \"$1\"; }; f", "artist: A\n", "artist: A\nsong: C\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestRunner().Edit(context.Background(), tt.command, []byte(tt.input))
			require.NoError(t, err)
			if string(got) != tt.want {
				t.Errorf("Edit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdit_FailingEditor(t *testing.T) {
	_, err := newTestRunner().Edit(context.Background(), "false", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `editor "false"`)
}

func TestEdit_YamlSuffix(t *testing.T) {
	got, err := newTestRunner().Edit(context.Background(), `f() { echo "$1" > "$1"; }; f`, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(got)), ".yaml"))
}
