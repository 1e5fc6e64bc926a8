package story

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deathtrip/asset"
)

const smallStory = `
title = "Small"
start = "a"

[characters]
Ann = "images/ann.png"

[[scenes]]
id = "a"
lines = ["Ann: Hello.", "Narration: not a speaker."]
[scenes.decision]
choices = [
    { label = "Left", target = "b" },
    { label = "Right", target = "c" },
]

[[scenes]]
id = "b"
info = true
next = "a"
lines = ["Wrong way."]

[[scenes]]
id = "c"
ending = true
lines = []
`

func TestParse_SmallStory(t *testing.T) {
	tbl, err := Parse([]byte(smallStory))
	require.NoError(t, err)

	assert.Equal(t, "Small", tbl.Title)
	assert.Equal(t, "a", tbl.Start)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"a", "b", "c"}, tbl.IDs())

	a, ok := tbl.Scene("a")
	require.True(t, ok)
	assert.Equal(t, KindDecision, a.Kind())
	assert.Equal(t, []string{"b", "c"}, a.Successors())

	b, _ := tbl.Scene("b")
	assert.Equal(t, KindInterstitial, b.Kind())
	c, _ := tbl.Scene("c")
	assert.Equal(t, KindEnding, c.Kind())
	assert.Empty(t, c.Successors())

	assert.Equal(t, []string{"c"}, tbl.Endings())
	assert.Empty(t, tbl.Unreachable())
}

func TestParseLine(t *testing.T) {
	tbl, err := Parse([]byte(smallStory))
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want Line
	}{
		{"Ann: Hello.", Line{Speaker: "Ann", Text: "Hello."}},
		{"Ann:no space", Line{Speaker: "Ann", Text: "no space"}},
		{"Narration: not a speaker.", Line{Text: "Narration: not a speaker."}},
		{"Plain narration.", Line{Text: "Plain narration."}},
		{": leading colon", Line{Text: ": leading colon"}},
		{"Ann:", Line{Speaker: "Ann", Text: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.ParseLine(tt.raw))
		})
	}

	assert.Equal(t, "images/ann.png", tbl.Portrait("Ann"))
	assert.Empty(t, tbl.Portrait("Nobody"))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{
			name: "no scenes",
			doc:  Document{Start: "a"},
			want: ErrNoScenes,
		},
		{
			name: "missing start",
			doc:  Document{Start: "zzz", Scenes: []Scene{{ID: "a", Ending: true}}},
			want: ErrNoStart,
		},
		{
			name: "duplicate",
			doc:  Document{Start: "a", Scenes: []Scene{{ID: "a", Ending: true}, {ID: "a", Ending: true}}},
			want: ErrDuplicateScene,
		},
		{
			name: "unknown target",
			doc: Document{Start: "a", Scenes: []Scene{{ID: "a", Decision: &Decision{Choices: []Choice{
				{Label: "x", Target: "a"}, {Label: "y", Target: "ghost"},
			}}}}},
			want: ErrUnknownScene,
		},
		{
			name: "three choices",
			doc: Document{Start: "a", Scenes: []Scene{{ID: "a", Decision: &Decision{Choices: []Choice{
				{Target: "a"}, {Target: "a"}, {Target: "a"},
			}}}}},
			want: ErrInvalidDecision,
		},
		{
			name: "interstitial without next",
			doc:  Document{Start: "a", Scenes: []Scene{{ID: "a", Info: true}}},
			want: ErrMissingNext,
		},
		{
			name: "ending with next",
			doc:  Document{Start: "a", Scenes: []Scene{{ID: "a", Ending: true, Next: "a"}}},
			want: ErrAmbiguousOutflow,
		},
		{
			name: "dead end",
			doc:  Document{Start: "a", Scenes: []Scene{{ID: "a"}}},
			want: ErrNoOutflow,
		},
		{
			name: "linear to unknown",
			doc:  Document{Start: "a", Scenes: []Scene{{ID: "a", Next: "b"}}},
			want: ErrUnknownScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDocument(&tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReachable(t *testing.T) {
	doc := Document{Start: "a", Scenes: []Scene{
		{ID: "a", Next: "b"},
		{ID: "b", Ending: true},
		{ID: "orphan", Next: "b"},
	}}
	tbl, err := FromDocument(&doc)
	require.NoError(t, err)

	reach := tbl.Reachable("a")
	assert.True(t, reach["a"])
	assert.True(t, reach["b"])
	assert.False(t, reach["orphan"])
	assert.Equal(t, []string{"orphan"}, tbl.Unreachable())
	assert.Empty(t, tbl.Reachable("missing"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "decision", KindDecision.String())
	assert.Equal(t, "ending", KindEnding.String())
	assert.Equal(t, "invalid", Kind(42).String())
}

func TestLoadAuto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.toml")

	tbl, source, err := LoadAuto(path, smallStory)
	require.NoError(t, err)
	assert.Equal(t, "embedded", source)
	assert.Equal(t, "Small", tbl.Title)

	require.NoError(t, os.WriteFile(path, []byte(`start = "x"
[[scenes]]
id = "x"
ending = true
`), 0o644))
	tbl, source, err = LoadAuto(path, smallStory)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "x", tbl.Start)

	require.NoError(t, os.WriteFile(path, []byte(`start = `), 0o644))
	_, _, err = LoadAuto(path, smallStory)
	assert.Error(t, err)
}

// The shipped story must be a closed, fully reachable graph with both endings
func TestDefaultStory_Graph(t *testing.T) {
	tbl, err := Parse([]byte(asset.DefaultStory))
	require.NoError(t, err)

	assert.Empty(t, tbl.Unreachable(), "every scene reachable from start")
	assert.Equal(t, []string{"ending_bad", "ending_good"}, tbl.Endings())

	reach := tbl.Reachable(tbl.Start)
	for _, ending := range tbl.Endings() {
		assert.True(t, reach[ending], "ending %s reachable", ending)
	}

	for _, id := range tbl.IDs() {
		s, _ := tbl.Scene(id)
		for _, target := range s.Successors() {
			_, ok := tbl.Scene(target)
			assert.True(t, ok, "%s -> %s exists", id, target)
		}
		if s.Info {
			// Interstitials lead back into the story, never straight to an ending
			next, _ := tbl.Scene(s.Next)
			assert.False(t, next.Ending, "interstitial %s", id)
		}
	}

	for _, branch := range []string{"drink", "no_drink", "try_stop_A", "let_drive", "seat_A", "seat_B"} {
		_, ok := tbl.Scene(branch)
		assert.True(t, ok, branch)
	}
}
