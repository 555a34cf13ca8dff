package filter

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewStoreHasPredefinedModes(t *testing.T) {
	s := NewStore()
	got := s.Modes()
	want := []string{"Child Safe Mode", "High School Teen Safe Mode", "Custom Mode"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Modes() = %v, want %v", got, want)
	}
}

func TestAddDuplicateIsNoop(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()

	added, err := s.Add(mode, Blacklist, "  casino ")
	if err != nil || !added {
		t.Fatalf("Add() = %v, %v, want true, nil", added, err)
	}
	added, err = s.Add(mode, Blacklist, "casino")
	if err != nil {
		t.Fatalf("Add() duplicate error = %v", err)
	}
	if added {
		t.Fatalf("Add() duplicate reported added")
	}
	items, _ := s.Items(mode, Blacklist)
	if !reflect.DeepEqual(items, []string{"casino"}) {
		t.Fatalf("Items() = %v, want [casino]", items)
	}
}

func TestAddRejectsEmptyAndUnknownMode(t *testing.T) {
	s := NewStore()
	if _, err := s.Add(DefaultMode(), Whitelist, "   "); !errors.Is(err, ErrEmptyItem) {
		t.Fatalf("Add(blank) error = %v, want ErrEmptyItem", err)
	}
	if _, err := s.Add("Nope", Whitelist, "x"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("Add(unknown mode) error = %v, want ErrUnknownMode", err)
	}
}

func TestAddManySkipsBlankAndDuplicates(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()
	if _, err := s.Add(mode, Whitelist, "school"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	n, err := s.AddMany(mode, Whitelist, []string{"school", "", "library", "library", " museum "})
	if err != nil {
		t.Fatalf("AddMany() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("AddMany() = %d, want 2", n)
	}
	items, _ := s.Items(mode, Whitelist)
	want := []string{"school", "library", "museum"}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("Items() = %v, want %v", items, want)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()
	_, _ = s.AddMany(mode, Blacklist, []string{"a", "b", "c"})

	if err := s.Remove(mode, Blacklist, "b"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := s.Remove(mode, Blacklist, "b"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Remove(missing) error = %v, want ErrItemNotFound", err)
	}
	items, _ := s.Items(mode, Blacklist)
	if !reflect.DeepEqual(items, []string{"a", "c"}) {
		t.Fatalf("Items() = %v, want [a c]", items)
	}
}

func TestSortDirectionAndIdempotence(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want []string
	}{
		{name: "ascending", dir: Ascending, want: []string{"Zebra", "apple", "mango"}},
		{name: "descending", dir: Descending, want: []string{"mango", "apple", "Zebra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			mode := DefaultMode()
			_, _ = s.AddMany(mode, Whitelist, []string{"mango", "Zebra", "apple"})
			_, _ = s.AddMany(mode, Blacklist, []string{"mango", "apple", "Zebra"})

			if err := s.Sort(mode, tt.dir); err != nil {
				t.Fatalf("Sort() error = %v", err)
			}
			first, _ := s.Lists(mode)
			if err := s.Sort(mode, tt.dir); err != nil {
				t.Fatalf("Sort() error = %v", err)
			}
			second, _ := s.Lists(mode)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("Sort() not idempotent: %v then %v", first, second)
			}
			if !reflect.DeepEqual(second.Whitelist, tt.want) || !reflect.DeepEqual(second.Blacklist, tt.want) {
				t.Fatalf("Sort() = %v, want %v for both lists", second, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	mode := "Custom Mode"
	_, _ = s.Add(mode, Whitelist, "x")
	_, _ = s.Add(mode, Blacklist, "y")
	if err := s.Clear(mode); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	lists, _ := s.Lists(mode)
	if len(lists.Whitelist) != 0 || len(lists.Blacklist) != 0 {
		t.Fatalf("Clear() left %v", lists)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()
	_, _ = s.AddMany(mode, Blacklist, []string{"Gambling", "gamer", "violence"})

	got, err := s.Search(mode, Blacklist, "GAM")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Gambling", "gamer"}) {
		t.Fatalf("Search() = %v", got)
	}
	all, _ := s.Search(mode, Blacklist, "")
	if len(all) != 3 {
		t.Fatalf("Search(\"\") len = %d, want 3", len(all))
	}
}

func TestReplaceKeepsExtraModesAndRecreatesPredefined(t *testing.T) {
	s := NewStoreFrom(Data{
		"Legacy Mode": {Whitelist: []string{"a", "a", " "}, Blacklist: nil},
	})
	modes := s.Modes()
	if len(modes) != 4 || modes[3] != "Legacy Mode" {
		t.Fatalf("Modes() = %v", modes)
	}
	lists, err := s.Lists("Legacy Mode")
	if err != nil {
		t.Fatalf("Lists() error = %v", err)
	}
	if !reflect.DeepEqual(lists.Whitelist, []string{"a"}) || len(lists.Blacklist) != 0 {
		t.Fatalf("Lists() = %#v", lists)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()
	_, _ = s.Add(mode, Whitelist, "one")

	snap := s.Snapshot()
	lists := snap[mode]
	lists.Whitelist[0] = "mutated"

	items, _ := s.Items(mode, Whitelist)
	if items[0] != "one" {
		t.Fatalf("store mutated through snapshot")
	}
}

func TestSetListsRestoresState(t *testing.T) {
	s := NewStore()
	mode := DefaultMode()
	_, _ = s.AddMany(mode, Blacklist, []string{"a", "b"})
	before, _ := s.Lists(mode)
	_ = s.Clear(mode)

	if err := s.SetLists(mode, before); err != nil {
		t.Fatalf("SetLists() error = %v", err)
	}
	after, _ := s.Lists(mode)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("SetLists() = %v, want %v", after, before)
	}
}

func TestParseListKindAndDirection(t *testing.T) {
	if k, err := ParseListKind("BL"); err != nil || k != Blacklist {
		t.Fatalf("ParseListKind(BL) = %v, %v", k, err)
	}
	if _, err := ParseListKind("greylist"); err == nil {
		t.Fatalf("ParseListKind(greylist) expected error")
	}
	if d, err := ParseDirection("desc"); err != nil || d != Descending {
		t.Fatalf("ParseDirection(desc) = %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("ParseDirection(sideways) expected error")
	}
}
