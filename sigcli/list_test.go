package sigcli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/sigscan/sigdefs"
	"github.com/corvid-labs/sigscan/sigerr"
	"github.com/corvid-labs/sigscan/sigtree"
)

func TestClosestIdentifierFindsNearMiss(t *testing.T) {
	got, ok := closestIdentifier("elf_magik", []string{"png_magic", "elf_magic", "zip_magic"})
	require.True(t, ok)
	require.Equal(t, "elf_magic", got)
}

func TestClosestIdentifierNoCandidates(t *testing.T) {
	_, ok := closestIdentifier("anything", nil)
	require.False(t, ok)
}

func TestAddWithSuggestionsSurfacesNearMissOnDuplicate(t *testing.T) {
	s := sigtree.NewScanner()
	defs := []sigdefs.Definition{
		{Identifier: "elf_magic", Pattern: []byte("AB"), Offset: 0, Anchor: sigtree.AnchorStartRelative},
		{Identifier: "elf_magik", Pattern: []byte("EF"), Offset: 0, Anchor: sigtree.AnchorStartRelative},
		{Identifier: "elf_magic", Pattern: []byte("CD"), Offset: 0, Anchor: sigtree.AnchorStartRelative},
	}
	err := addWithSuggestions(s, defs)
	require.Error(t, err)
	require.True(t, sigerr.Is(err, sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet}))
	require.Contains(t, err.Error(), `"elf_magik"`)
}

func TestAddWithSuggestionsSucceedsForDistinctIdentifiers(t *testing.T) {
	s := sigtree.NewScanner()
	defs := []sigdefs.Definition{
		{Identifier: "a", Pattern: []byte("AB"), Offset: 0, Anchor: sigtree.AnchorUnbound},
		{Identifier: "b", Pattern: []byte("CD"), Offset: 0, Anchor: sigtree.AnchorUnbound},
	}
	require.NoError(t, addWithSuggestions(s, defs))
	require.Len(t, s.Signatures(), 2)
}
