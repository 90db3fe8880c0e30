package option

import (
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
)

// IDSource hands out html ids unique to one dropdown instance.
// Ids are "<ulid>-<n>"; the ulid prefix keeps several dropdowns on the same
// page from colliding.
type IDSource struct {
	prefix string
	next   int
}

// NewIDSource creates an IDSource with a fresh ulid prefix.
func NewIDSource() *IDSource {
	return &IDSource{prefix: strings.ToLower(ulid.Make().String())}
}

// Prefix returns the instance prefix shared by every id from this source.
func (s *IDSource) Prefix() string {
	return s.prefix
}

// Next returns a new id.
func (s *IDSource) Next() string {
	id := s.prefix + "-" + strconv.Itoa(s.next)
	s.next++
	return id
}
