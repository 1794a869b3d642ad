// Package container maps object identifiers to storage container names.
//
// In seeded mode the container is a pure function of the identifier's
// literal text, so any reader can re-derive the placement the writer chose
// without a lookup table.
package container

import "strings"

// Separator is the character the seed window is extended over so that the
// seed always contains the configured number of non-separator characters.
const Separator = '-'

// Resolver defines the interface for container resolution strategies
type Resolver interface {
	// Resolve returns the container name for an object identifier
	Resolve(objectID string) string
}

// Single always resolves to one fixed container
type Single struct {
	BaseName string
}

func (r Single) Resolve(objectID string) string {
	return r.BaseName
}

// Seeded spreads objects across containers named after a prefix of the
// object identifier
type Seeded struct {
	BaseName   string
	SeedLength int
}

func (r Seeded) Resolve(objectID string) string {
	return Resolve(objectID, r.BaseName, r.SeedLength)
}

// NewResolver returns a Single resolver for seedLength 0 and a Seeded
// resolver otherwise. seedLength must already be validated to 0..32.
func NewResolver(baseName string, seedLength int) Resolver {
	if seedLength == 0 {
		return Single{BaseName: baseName}
	}
	return Seeded{BaseName: baseName, SeedLength: seedLength}
}

// Resolve derives the container name for an object identifier.
//
// With seedLength 0 it returns baseName unchanged. Otherwise the identifier
// is lowercased and its first seedLength characters become the seed; every
// separator inside that window extends the window by one character, so the
// seed keeps seedLength non-separator characters even when separators fall
// inside it. The result is baseName + "_" + seed.
//
// Examples, baseName "glance":
//
//	"3A1bcd-..." with seed 3 -> "glance_3a1"
//	"ab-cdef..." with seed 4 -> "glance_ab-cd"
func Resolve(objectID, baseName string, seedLength int) string {
	if seedLength <= 0 {
		return baseName
	}

	id := strings.ToLower(objectID)
	window := seedLength
	if window > len(id) {
		window = len(id)
	}

	separators := strings.Count(id[:window], string(Separator))
	take := seedLength + separators
	if take > len(id) {
		take = len(id)
	}

	return baseName + "_" + id[:take]
}
