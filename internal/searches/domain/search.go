package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SavedSearch is a search query saved under a user-chosen tag.
type SavedSearch struct {
	Tag   string
	Query string
}

// Validate reports ErrInvalidInput when the tag or the query is empty.
func (s SavedSearch) Validate() error {
	switch {
	case s.Tag == "" && s.Query == "":
		return &InputError{Field: "tag and query"}
	case s.Tag == "":
		return &InputError{Field: "tag"}
	case s.Query == "":
		return &InputError{Field: "query"}
	}
	return nil
}

// CompareTags orders tags case-insensitively. Tags that fold to the same
// string fall back to a byte-wise compare, so case variants always come out
// in one order no matter how the keys were read from the store.
func CompareTags(a, b string) int {
	if c := compareFolded(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func compareFolded(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortTags sorts tags in place using CompareTags.
func SortTags(tags []string) {
	slices.SortFunc(tags, CompareTags)
}

// SameTagFold reports whether two tags differ only by letter case. It agrees
// with the case-insensitive part of CompareTags.
func SameTagFold(a, b string) bool {
	return compareFolded(a, b) == 0
}

// FoldedPosition returns the index of the first tag in sorted tags that
// folds to the same string as tag or sorts after it.
func FoldedPosition(tags []string, tag string) int {
	i, _ := slices.BinarySearchFunc(tags, tag, compareFolded)
	return i
}
