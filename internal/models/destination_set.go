package models

// DestinationSet is an insertion ordered set of destinations keyed by
// ActualName. Adding a destination whose name is already present replaces
// it in place.
type DestinationSet struct {
	order  []string
	byName map[string]NavigationDestination
}

// NewDestinationSet creates an empty set
func NewDestinationSet() *DestinationSet {
	return &DestinationSet{byName: make(map[string]NavigationDestination)}
}

// Add stores a copy of d and reports whether an existing entry was replaced
func (s *DestinationSet) Add(d NavigationDestination) bool {
	_, exists := s.byName[d.ActualName]
	if !exists {
		s.order = append(s.order, d.ActualName)
	}
	s.byName[d.ActualName] = d.Clone()
	return exists
}

// Len returns the number of destinations
func (s *DestinationSet) Len() int {
	return len(s.order)
}

// Get returns the destination named name
func (s *DestinationSet) Get(name string) (NavigationDestination, bool) {
	d, ok := s.byName[name]
	if !ok {
		return NavigationDestination{}, false
	}
	return d.Clone(), true
}

// Destinations returns copies of all destinations in insertion order
func (s *DestinationSet) Destinations() []NavigationDestination {
	result := make([]NavigationDestination, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.byName[name].Clone())
	}
	return result
}

// Names returns the actual names in insertion order
func (s *DestinationSet) Names() []string {
	return append([]string(nil), s.order...)
}

// EffectiveNames returns the effective names in insertion order
func (s *DestinationSet) EffectiveNames() []string {
	names := make([]string, 0, len(s.order))
	for _, name := range s.order {
		names = append(names, s.byName[name].EffectiveName())
	}
	return names
}

// Homes returns the names of all destinations marked home
func (s *DestinationSet) Homes() []string {
	var homes []string
	for _, name := range s.order {
		if s.byName[name].IsHome {
			homes = append(homes, name)
		}
	}
	return homes
}

// Home returns the home destination when exactly one is marked
func (s *DestinationSet) Home() (NavigationDestination, bool) {
	homes := s.Homes()
	if len(homes) != 1 {
		return NavigationDestination{}, false
	}
	return s.Get(homes[0])
}
