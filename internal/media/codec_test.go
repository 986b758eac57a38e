package media

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radian-software/fstunes/internal/errmsg"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		m    Metadata
		want string
	}{
		{
			name: "all fields",
			m:    Metadata{Artist: String("A"), Album: String("B"), Disk: Int(2), Track: Int(1), Song: String("C"), Extension: ".mp3"},
			want: "A/B/2-1 C.mp3",
		},
		{
			name: "no disk",
			m:    Metadata{Artist: String("A"), Album: String("B"), Track: Int(1), Song: String("C"), Extension: ".mp3"},
			want: "A/B/1 C.mp3",
		},
		{
			name: "disk without track",
			m:    Metadata{Artist: String("A"), Album: String("B"), Disk: Int(3), Song: String("C"), Extension: ".flac"},
			want: "A/B/3- C.flac",
		},
		{
			name: "everything absent",
			m:    Metadata{Extension: ".ogg"},
			want: "_/_/ _.ogg",
		},
		{
			name: "empty strings differ from absent",
			m:    Metadata{Artist: String(""), Album: String(""), Song: String("")},
			want: "##/##/ ##",
		},
		{
			name: "unsafe characters escaped",
			m:    Metadata{Artist: String("AC/DC"), Album: String("Mr. #1"), Track: Int(7), Song: String("a_b"), Extension: ".mp3"},
			want: "AC#2f#DC/Mr#2e# #23#1/7 a#5f#b.mp3",
		},
		{
			name: "unicode letters kept",
			m:    Metadata{Artist: String("Beyoncé"), Album: String("日本"), Track: Int(0), Song: String("Ça va"), Extension: ".m4a"},
			want: "Beyoncé/日本/0 Ça va.m4a",
		},
		{
			name: "no extension",
			m:    Metadata{Artist: String("A"), Album: String("B"), Song: String("C")},
			want: "A/B/ C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.m)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}

			back, err := Decode(got)
			require.NoError(t, err)
			if !back.Equal(tt.m) {
				t.Errorf("Decode(Encode(m)) = %+v, want %+v", back, tt.m)
			}
		})
	}
}

func TestEncode_Unrepresentable(t *testing.T) {
	tests := []struct {
		name string
		m    Metadata
	}{
		{"negative disk", Metadata{Disk: Int(-1)}},
		{"negative track", Metadata{Track: Int(-4)}},
		{"extension without dot", Metadata{Extension: "mp3"}},
		{"extension with separator", Metadata{Extension: ".a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.m)
			assert.Error(t, err)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"too few components", "A/1 C.mp3"},
		{"too many components", "A/B/C/1 C.mp3"},
		{"missing space", "A/B/1C.mp3"},
		{"leading zero track", "A/B/01 C.mp3"},
		{"empty song", "A/B/1 .mp3"},
		{"unterminated escape", "A#2f/B/1 C.mp3"},
		{"bad hex", "A#zz#/B/1 C.mp3"},
		{"empty artist", "/B/1 C.mp3"},
		{"negative track", "A/B/-1 C.mp3"},
		{"escaped safe rune", "#41#/B/1 C.mp3"},
		{"uppercase hex", "A#2F#/B/1 C.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.path)
			require.Error(t, err)
			assert.True(t, errmsg.Is(err, errmsg.KindParse), "want parse error, got %v", err)
		})
	}
}

func TestEncodeDecode_PathRoundTrip(t *testing.T) {
	paths := []string{
		"A/B/1 C.mp3",
		"_/_/ _",
		"##/##/2- ##.flac",
		"AC#2f#DC/Back In Black/1-6 Back In Black.mp3",
		"x#e2#/y/12 z#2e#tar.gz",
	}

	for _, p := range paths {
		m, err := Decode(p)
		require.NoError(t, err, p)
		got, err := Encode(m)
		require.NoError(t, err, p)
		assert.Equal(t, p, got)
	}
}

func randomString(r *rand.Rand) *string {
	if r.IntN(5) == 0 {
		return nil
	}
	alphabet := []rune("ab_#/. -Z9é\x00\n")
	n := r.IntN(4)
	s := make([]rune, n)
	for i := range s {
		s[i] = alphabet[r.IntN(len(alphabet))]
	}
	return String(string(s))
}

func randomInt(r *rand.Rand) *int {
	if r.IntN(3) == 0 {
		return nil
	}
	return Int(r.IntN(12))
}

func randomMetadata(r *rand.Rand) Metadata {
	exts := []string{"", ".mp3", ".flac", ".", ".tar.gz"}
	return Metadata{
		Artist:    randomString(r),
		Album:     randomString(r),
		Disk:      randomInt(r),
		Track:     randomInt(r),
		Song:      randomString(r),
		Extension: exts[r.IntN(len(exts))],
	}
}

func TestEncode_RoundTripAndInjective(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]Metadata)

	for range 5000 {
		m := randomMetadata(r)
		p, err := Encode(m)
		require.NoError(t, err)

		back, err := Decode(p)
		require.NoError(t, err, p)
		require.True(t, back.Equal(m), "round trip of %q", p)

		if prev, ok := seen[p]; ok {
			require.True(t, prev.Equal(m), "two records share path %q", p)
		}
		seen[p] = m
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "##"},
		{"plain", "plain"},
		{"a/b", "a#2f#b"},
		{"#", "#23#"},
		{"..", "#2e##2e#"},
		{"\xff", "#ff#"},
		{"tab\t", "tab#09#"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Escape(tt.in)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
			assert.NotContains(t, got, "/")
			back, err := Unescape(got)
			require.NoError(t, err)
			assert.Equal(t, tt.in, back)
		})
	}
}
