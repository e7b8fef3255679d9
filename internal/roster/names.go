// Package roster implements the member list feature: the name
// de-duplication algorithm over displayed names, the event-emitting model
// that owns the list, and the controller that binds model changes to view
// refreshes.
//
// Display names are either a base name ("Kim") or a qualified name
// ("Kim-2") where the suffix disambiguates two people sharing a base name.
// The list-level invariant: at most one entry per base name may be bare; as
// soon as a second person with the same base name arrives, the bare entry is
// rewritten to base-1 and the newcomer gets base-(max suffix + 1).
package roster

import (
	"strconv"
	"strings"

	"github.com/teamdraft/teamdraft/internal/errors"
)

// Separator splits a qualified name into base and suffix.
const Separator = "-"

// Base returns the portion of a display name before the suffix qualifier.
func Base(name string) string {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[:i]
	}
	return name
}

// Suffix returns the qualifier portion of a display name, or "" for a bare
// base name.
func Suffix(name string) string {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[i+len(Separator):]
	}
	return ""
}

// IsQualified reports whether name carries a suffix qualifier.
func IsQualified(name string) bool {
	return strings.Contains(name, Separator)
}

// Qualify joins a base name and a suffix into a qualified display name.
// An empty suffix yields the bare base name.
func Qualify(base, suffix string) string {
	if suffix == "" {
		return base
	}
	return base + Separator + suffix
}

// numericSuffix returns the numeric value of a name's suffix.
// Non-numeric and absent suffixes report ok=false.
func numericSuffix(name string) (int, bool) {
	s := Suffix(name)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AddName inserts a new member into the list, applying the de-duplication
// invariant. It never mutates its input; on success it returns a fresh slice.
//
// The algorithm, in order:
//  1. Reject a blank trimmed name, or a list already at capacity (when
//     enforceCapacity is set).
//  2. Reject an exact match against an existing qualified name as a true
//     duplicate.
//  3. With no same-base members present, append the name as-is.
//  4. Otherwise rewrite the single bare same-base entry (if present) to
//     base-1, then append base-(max numeric suffix + 1), counting the
//     rewrite as a suffix candidate.
func AddName(members []string, name string, capacity int, enforceCapacity bool) ([]string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.ErrEmptyName
	}
	if enforceCapacity && len(members) >= capacity {
		return nil, errors.ErrRosterFull
	}

	for _, m := range members {
		if IsQualified(m) && m == trimmed {
			return nil, errors.ErrDuplicateName
		}
	}

	base := Base(trimmed)
	next := make([]string, len(members), len(members)+1)
	copy(next, members)

	maxSuffix := 0
	sameBase := false
	for i, m := range members {
		if Base(m) != base {
			continue
		}
		sameBase = true
		if m == base {
			// The bare entry loses its bare form the moment a second
			// person with the same base name arrives.
			next[i] = Qualify(base, "1")
			if maxSuffix < 1 {
				maxSuffix = 1
			}
			continue
		}
		if n, ok := numericSuffix(m); ok && n > maxSuffix {
			maxSuffix = n
		}
	}

	if !sameBase {
		return append(next, trimmed), nil
	}
	return append(next, Qualify(base, strconv.Itoa(maxSuffix+1))), nil
}

// RenameSuffix rewrites the suffix of the member at index. A blank newSuffix
// drops the qualifier entirely. The rename is rejected when the resulting
// display name would collide with another member. It never mutates its
// input; on success it returns a fresh slice.
func RenameSuffix(members []string, index int, newSuffix string) ([]string, error) {
	if index < 0 || index >= len(members) {
		return nil, errors.ErrMemberNotFound
	}

	renamed := Qualify(Base(members[index]), strings.TrimSpace(newSuffix))
	if renamed == members[index] {
		next := make([]string, len(members))
		copy(next, members)
		return next, nil
	}

	for i, m := range members {
		if i != index && m == renamed {
			return nil, errors.ErrDuplicateName
		}
	}

	next := make([]string, len(members))
	copy(next, members)
	next[index] = renamed
	return next, nil
}

// RemoveAt deletes the member at index, returning a fresh slice.
func RemoveAt(members []string, index int) ([]string, error) {
	if index < 0 || index >= len(members) {
		return nil, errors.ErrMemberNotFound
	}
	next := make([]string, 0, len(members)-1)
	next = append(next, members[:index]...)
	next = append(next, members[index+1:]...)
	return next, nil
}
