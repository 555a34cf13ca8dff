package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownMode  = errors.New("unknown mode")
	ErrEmptyItem    = errors.New("item cannot be empty")
	ErrItemNotFound = errors.New("item not found")
)

// Lists holds the two item sequences of a mode.
type Lists struct {
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
}

func (l Lists) Get(kind ListKind) []string {
	if kind == Blacklist {
		return l.Blacklist
	}
	return l.Whitelist
}

func (l *Lists) set(kind ListKind, items []string) {
	if kind == Blacklist {
		l.Blacklist = items
		return
	}
	l.Whitelist = items
}

// Clone returns a deep copy with non-nil slices.
func (l Lists) Clone() Lists {
	return Lists{
		Whitelist: append(make([]string, 0, len(l.Whitelist)), l.Whitelist...),
		Blacklist: append(make([]string, 0, len(l.Blacklist)), l.Blacklist...),
	}
}

// Data is the serializable form of a store: mode name -> lists.
type Data map[string]Lists

// Store is the in-memory filter store. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	modes map[string]*Lists
}

// NewStore returns a store holding every predefined mode with empty lists.
func NewStore() *Store {
	s := &Store{modes: make(map[string]*Lists, len(catalogue))}
	s.ensurePredefined()
	return s
}

// NewStoreFrom builds a store from loaded data. Duplicates and blank items in
// the data are dropped; predefined modes missing from it are created empty.
func NewStoreFrom(data Data) *Store {
	s := &Store{}
	s.Replace(data)
	return s
}

func (s *Store) ensurePredefined() {
	for _, info := range catalogue {
		if _, ok := s.modes[info.Name]; !ok {
			s.modes[info.Name] = &Lists{Whitelist: []string{}, Blacklist: []string{}}
		}
	}
}

// Replace swaps the whole content of the store.
func (s *Store) Replace(data Data) {
	modes := make(map[string]*Lists, len(data)+len(catalogue))
	for name, lists := range data {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		l := &Lists{
			Whitelist: dedupe(lists.Whitelist),
			Blacklist: dedupe(lists.Blacklist),
		}
		modes[name] = l
	}
	s.mu.Lock()
	s.modes = modes
	s.ensurePredefined()
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the whole store.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Data, len(s.modes))
	for name, lists := range s.modes {
		out[name] = lists.Clone()
	}
	return out
}

// Modes returns predefined modes in catalogue order followed by any other
// modes sorted by name.
func (s *Store) Modes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.modes))
	for _, info := range catalogue {
		if _, ok := s.modes[info.Name]; ok {
			out = append(out, info.Name)
		}
	}
	extra := make([]string, 0)
	for name := range s.modes {
		if !isPredefined(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func (s *Store) HasMode(mode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.modes[mode]
	return ok
}

// Lists returns a copy of both lists of a mode.
func (s *Store) Lists(mode string) (Lists, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lists, ok := s.modes[mode]
	if !ok {
		return Lists{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return lists.Clone(), nil
}

// SetLists overwrites both lists of an existing mode. Used to undo and redo.
func (s *Store) SetLists(mode string, lists Lists) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.modes[mode]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	next := Lists{Whitelist: dedupe(lists.Whitelist), Blacklist: dedupe(lists.Blacklist)}
	s.modes[mode] = &next
	return nil
}

func (s *Store) Items(mode string, kind ListKind) ([]string, error) {
	lists, err := s.Lists(mode)
	if err != nil {
		return nil, err
	}
	return lists.Get(kind), nil
}

// Add appends item to the list. A duplicate is a no-op and reports false.
func (s *Store) Add(mode string, kind ListKind, item string) (bool, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return false, ErrEmptyItem
	}
	n, err := s.AddMany(mode, kind, []string{item})
	return n == 1, err
}

// AddMany appends every new non-blank item and returns how many were added.
func (s *Store) AddMany(mode string, kind ListKind, items []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok := s.modes[mode]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	current := lists.Get(kind)
	seen := make(map[string]struct{}, len(current)+len(items))
	for _, existing := range current {
		seen[existing] = struct{}{}
	}
	added := 0
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		current = append(current, item)
		added++
	}
	lists.set(kind, current)
	return added, nil
}

func (s *Store) Remove(mode string, kind ListKind, item string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok := s.modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	current := lists.Get(kind)
	for i, existing := range current {
		if existing == item {
			next := make([]string, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			lists.set(kind, next)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotFound, item)
}

// Clear empties both lists of the mode.
func (s *Store) Clear(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.modes[mode]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	s.modes[mode] = &Lists{Whitelist: []string{}, Blacklist: []string{}}
	return nil
}

// Sort orders both lists of the mode by byte-wise string comparison.
func (s *Store) Sort(mode string, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists, ok := s.modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	for _, kind := range Kinds {
		items := append([]string(nil), lists.Get(kind)...)
		if dir == Descending {
			sort.Sort(sort.Reverse(sort.StringSlice(items)))
		} else {
			sort.Strings(items)
		}
		lists.set(kind, items)
	}
	return nil
}

// Search returns the items containing query, ignoring case. An empty query
// returns every item.
func (s *Store) Search(mode string, kind ListKind, query string) ([]string, error) {
	items, err := s.Items(mode, kind)
	if err != nil {
		return nil, err
	}
	return MatchItems(items, query), nil
}

// MatchItems filters items by case-insensitive substring, preserving order.
func MatchItems(items []string, query string) []string {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), q) {
			out = append(out, item)
		}
	}
	return out
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
