package container

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		objectID   string
		baseName   string
		seedLength int
		want       string
	}{
		{
			name:       "seed zero returns base name",
			objectID:   "3a1bcd00-1111-2222-3333-444444444444",
			baseName:   "glance",
			seedLength: 0,
			want:       "glance",
		},
		{
			name:       "plain prefix",
			objectID:   "3a1bcd00-1111-2222-3333-444444444444",
			baseName:   "glance",
			seedLength: 3,
			want:       "glance_3a1",
		},
		{
			name:       "uppercase id is lowercased",
			objectID:   "3A1BCD00-1111-2222-3333-444444444444",
			baseName:   "glance",
			seedLength: 3,
			want:       "glance_3a1",
		},
		{
			name:       "separator inside the window extends it",
			objectID:   "ab-cdef00-1111-2222-3333-444444444444",
			baseName:   "glance",
			seedLength: 4,
			want:       "glance_ab-cd",
		},
		{
			name:       "separator at window edge does not extend",
			objectID:   "abcd-ef00-1111-2222-3333-444444444444",
			baseName:   "glance",
			seedLength: 4,
			want:       "glance_abcd",
		},
		{
			name:       "seed longer than id takes the whole id",
			objectID:   "ab",
			baseName:   "glance",
			seedLength: 8,
			want:       "glance_ab",
		},
		{
			name:       "multiple separators in window",
			objectID:   "a-b-cdef",
			baseName:   "objects",
			seedLength: 3,
			want:       "objects_a-b-c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.objectID, tt.baseName, tt.seedLength)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	id := "9f8e7d6c-5b4a-3210-fedc-ba9876543210"
	first := Resolve(id, "glance", 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(id, "glance", 5))
	}
}

func TestResolveSeedWidth(t *testing.T) {
	// The seed always contains seedLength non-separator characters.
	id := "ab-cd-ef01-2345-6789-abcdef012345"
	for seed := 1; seed <= 8; seed++ {
		name := Resolve(id, "glance", seed)
		suffix := strings.TrimPrefix(name, "glance_")
		nonSep := len(suffix) - strings.Count(suffix, string(Separator))
		assert.Equal(t, seed, nonSep, "seed %d produced %q", seed, suffix)
	}
}

func TestNewResolver(t *testing.T) {
	single := NewResolver("objects", 0)
	assert.IsType(t, Single{}, single)
	assert.Equal(t, "objects", single.Resolve("3a1bcd00"))

	seeded := NewResolver("objects", 2)
	assert.IsType(t, Seeded{}, seeded)
	assert.Equal(t, "objects_3a", seeded.Resolve("3a1bcd00"))
}
