package reminder

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Suppressor remembers which (medication, day) reminders already went out.
type Suppressor interface {
	Seen(medicationID int64, day string) bool
	Mark(medicationID int64, day string)
}

type cacheSuppressor struct {
	cache *cache.Cache
}

// NewSuppressor keeps each mark for ttl. A day-long ttl is enough since the
// key carries the date.
func NewSuppressor(ttl time.Duration) Suppressor {
	return &cacheSuppressor{cache: cache.New(ttl, ttl)}
}

func (s *cacheSuppressor) Seen(medicationID int64, day string) bool {
	_, ok := s.cache.Get(suppressKey(medicationID, day))
	return ok
}

func (s *cacheSuppressor) Mark(medicationID int64, day string) {
	s.cache.SetDefault(suppressKey(medicationID, day), struct{}{})
}

func suppressKey(medicationID int64, day string) string {
	return fmt.Sprintf("%d:%s", medicationID, day)
}
