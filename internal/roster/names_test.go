package roster

import (
	"reflect"
	"testing"

	"github.com/teamdraft/teamdraft/internal/errors"
)

func TestBaseAndSuffix(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		suffix    string
		qualified bool
	}{
		{"Kim", "Kim", "", false},
		{"Kim-2", "Kim", "2", true},
		{"Bob-3", "Bob", "3", true},
		{"Ann-x", "Ann", "x", true},
	}

	for _, tt := range tests {
		if got := Base(tt.name); got != tt.base {
			t.Errorf("Base(%q) = %q, want %q", tt.name, got, tt.base)
		}
		if got := Suffix(tt.name); got != tt.suffix {
			t.Errorf("Suffix(%q) = %q, want %q", tt.name, got, tt.suffix)
		}
		if got := IsQualified(tt.name); got != tt.qualified {
			t.Errorf("IsQualified(%q) = %v, want %v", tt.name, got, tt.qualified)
		}
	}
}

func TestAddName_FirstOccurrenceStaysBare(t *testing.T) {
	got, err := AddName(nil, "Kim", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Kim"}) {
		t.Errorf("members = %v, want [Kim]", got)
	}
}

func TestAddName_CollisionRenamesBoth(t *testing.T) {
	members := []string{"Kim"}

	got, err := AddName(members, "Kim", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Kim-1", "Kim-2"}) {
		t.Errorf("members = %v, want [Kim-1 Kim-2]", got)
	}

	// Input must not be mutated.
	if members[0] != "Kim" {
		t.Errorf("input slice was mutated: %v", members)
	}

	got, err = AddName(got, "Kim", 0, false)
	if err != nil {
		t.Fatalf("third AddName failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Kim-1", "Kim-2", "Kim-3"}) {
		t.Errorf("members = %v, want [Kim-1 Kim-2 Kim-3]", got)
	}
}

func TestAddName_UnrelatedNamesUntouched(t *testing.T) {
	got, err := AddName([]string{"Ann", "Kim"}, "Kim", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Ann", "Kim-1", "Kim-2"}) {
		t.Errorf("members = %v, want [Ann Kim-1 Kim-2]", got)
	}
}

func TestAddName_GapInSuffixes(t *testing.T) {
	// Max numeric suffix wins, not count.
	got, err := AddName([]string{"Kim-1", "Kim-5"}, "Kim", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if got[len(got)-1] != "Kim-6" {
		t.Errorf("appended %q, want Kim-6", got[len(got)-1])
	}
}

func TestAddName_EmptyRejected(t *testing.T) {
	if _, err := AddName(nil, "   ", 0, false); !errors.Is(err, errors.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestAddName_CapacityRejected(t *testing.T) {
	members := []string{"Ann", "Bob"}
	if _, err := AddName(members, "Cal", 2, true); !errors.Is(err, errors.ErrRosterFull) {
		t.Errorf("expected ErrRosterFull, got %v", err)
	}
	if len(members) != 2 {
		t.Errorf("rejected add must not mutate, got %v", members)
	}

	// Without enforcement the same add succeeds.
	if _, err := AddName(members, "Cal", 2, false); err != nil {
		t.Errorf("unexpected error without capacity enforcement: %v", err)
	}
}

func TestAddName_ExactQualifiedDuplicateRejected(t *testing.T) {
	members := []string{"Kim-1", "Kim-2"}
	if _, err := AddName(members, "Kim-2", 0, false); !errors.Is(err, errors.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestAddName_QualifiedNameWithNoPeersAppendsAsIs(t *testing.T) {
	got, err := AddName([]string{"Ann"}, "Kim-2", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Ann", "Kim-2"}) {
		t.Errorf("members = %v, want [Ann Kim-2]", got)
	}
}

func TestAddName_TrimsInput(t *testing.T) {
	got, err := AddName(nil, "  Kim  ", 0, false)
	if err != nil {
		t.Fatalf("AddName failed: %v", err)
	}
	if got[0] != "Kim" {
		t.Errorf("name not trimmed: %q", got[0])
	}
}

func TestRenameSuffix_RewritesQualifier(t *testing.T) {
	got, err := RenameSuffix([]string{"Ann", "Bob-3"}, 1, "7")
	if err != nil {
		t.Fatalf("RenameSuffix failed: %v", err)
	}
	if got[1] != "Bob-7" {
		t.Errorf("members[1] = %q, want Bob-7", got[1])
	}
}

func TestRenameSuffix_BlankDropsQualifier(t *testing.T) {
	got, err := RenameSuffix([]string{"Ann", "Bob-3"}, 1, "")
	if err != nil {
		t.Fatalf("RenameSuffix failed: %v", err)
	}
	if got[1] != "Bob" {
		t.Errorf("members[1] = %q, want Bob", got[1])
	}
}

func TestRenameSuffix_CollisionRejected(t *testing.T) {
	if _, err := RenameSuffix([]string{"Bob-3", "Bob-7"}, 0, "7"); !errors.Is(err, errors.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestRenameSuffix_NoOpIsSuccess(t *testing.T) {
	got, err := RenameSuffix([]string{"Bob-3"}, 0, "3")
	if err != nil {
		t.Fatalf("RenameSuffix failed: %v", err)
	}
	if got[0] != "Bob-3" {
		t.Errorf("members[0] = %q, want Bob-3", got[0])
	}
}

func TestRenameSuffix_BadIndex(t *testing.T) {
	if _, err := RenameSuffix([]string{"Ann"}, 5, "1"); !errors.Is(err, errors.ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
	if _, err := RenameSuffix([]string{"Ann"}, -1, "1"); !errors.Is(err, errors.ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestRemoveAt(t *testing.T) {
	got, err := RemoveAt([]string{"Ann", "Bob", "Cal"}, 1)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Ann", "Cal"}) {
		t.Errorf("members = %v, want [Ann Cal]", got)
	}

	if _, err := RemoveAt([]string{"Ann"}, 3); !errors.Is(err, errors.ErrMemberNotFound) {
		t.Errorf("expected ErrMemberNotFound, got %v", err)
	}
}
