package model

// Store is the aggregate root persisted as a single document. The
// repository owns the live instance; everything handed out of it is a
// clone.
type Store struct {
	Categories []Category `json:"categories"`
	Schedules  []Schedule `json:"schedules"`
	Plans      []Plan     `json:"plans"`
}

// DefaultStore is the first-run state: the four default categories and
// empty collections.
func DefaultStore() Store {
	return Store{
		Categories: DefaultCategories(),
		Schedules:  []Schedule{},
		Plans:      []Plan{},
	}
}

// Clone deep-copies the store.
func (s Store) Clone() Store {
	out := Store{
		Categories: append([]Category(nil), s.Categories...),
		Schedules:  make([]Schedule, 0, len(s.Schedules)),
		Plans:      append([]Plan(nil), s.Plans...),
	}
	for _, sched := range s.Schedules {
		out.Schedules = append(out.Schedules, sched.Clone())
	}
	return out
}
