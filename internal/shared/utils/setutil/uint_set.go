// Package setutil provides small set types for ID collections.
package setutil

// UintSet is a set of uint IDs backed by map[uint]struct{}.
type UintSet struct {
	items map[uint]struct{}
}

func NewUintSet() *UintSet {
	return &UintSet{items: make(map[uint]struct{})}
}

func NewUintSetWithCap(cap int) *UintSet {
	return &UintSet{items: make(map[uint]struct{}, cap)}
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

// Remove deletes an id; removing a missing id is a no-op.
func (s *UintSet) Remove(id uint) {
	delete(s.items, id)
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// ToSlice returns the ids in unspecified order.
func (s *UintSet) ToSlice() []uint {
	result := make([]uint, 0, len(s.items))
	for id := range s.items {
		result = append(result, id)
	}
	return result
}

func (s *UintSet) Len() int {
	return len(s.items)
}
