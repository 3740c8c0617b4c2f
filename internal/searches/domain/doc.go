// Package domain provides the pure domain layer for saved searches with no
// infrastructure dependencies.
//
//   - SavedSearch is the (tag, query) pair a user saves
//   - Store is the persistence port every backend implements
//   - CompareTags defines the display order of tags
//   - sentinel and typed errors describe every failure a caller can act on
//
// The domain layer has no knowledge of databases, files or the terminal.
package domain
