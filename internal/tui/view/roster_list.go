// Package view holds the stateless render functions for each stage of the
// TUI, plus the memoizing roster list renderer.
package view

import (
	"container/list"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/teamdraft/teamdraft/internal/roster"
	"github.com/teamdraft/teamdraft/internal/tui/styles"
	"github.com/teamdraft/teamdraft/internal/util"
)

// rosterRowMaxWidth bounds a row; names are user input and can be absurd.
const rosterRowMaxWidth = 48

// rosterCacheSize bounds the memo. Edit mode bounces between a handful of
// (members, editing) pairs, so a small window catches nearly every repeat.
const rosterCacheSize = 8

// RosterList renders the member block and memoizes recent frames keyed by
// the exact (members, editing) pair. It is meant to be injected into the
// roster view as its list renderer.
type RosterList struct {
	mu     sync.Mutex
	order  *list.List // front = most recent
	lookup map[string]*list.Element
	hits   uint64
	misses uint64
}

type rosterCacheEntry struct {
	key    string
	output string
}

// NewRosterList creates an empty RosterList.
func NewRosterList() *RosterList {
	return &RosterList{
		order:  list.New(),
		lookup: make(map[string]*list.Element),
	}
}

// Render returns the rendered member block, reusing a cached frame when the
// same roster and edit position were rendered recently.
func (r *RosterList) Render(members []string, editing int) string {
	key := roster.EncodeMembers(members) + "|" + strconv.Itoa(editing)

	r.mu.Lock()
	if el, ok := r.lookup[key]; ok {
		r.order.MoveToFront(el)
		r.hits++
		out := el.Value.(rosterCacheEntry).output
		r.mu.Unlock()
		return out
	}
	r.misses++
	r.mu.Unlock()

	out := renderRosterRows(members, editing)

	r.mu.Lock()
	if el, ok := r.lookup[key]; ok {
		// Lost a race with another render of the same key.
		r.order.MoveToFront(el)
	} else {
		r.lookup[key] = r.order.PushFront(rosterCacheEntry{key: key, output: out})
		if r.order.Len() > rosterCacheSize {
			oldest := r.order.Back()
			r.order.Remove(oldest)
			delete(r.lookup, oldest.Value.(rosterCacheEntry).key)
		}
	}
	r.mu.Unlock()

	return out
}

// Stats returns cache hit and miss counts.
func (r *RosterList) Stats() (hits, misses uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits, r.misses
}

func renderRosterRows(members []string, editing int) string {
	if len(members) == 0 {
		return styles.Muted.Render("  (no members yet)")
	}

	var b strings.Builder
	for i, name := range members {
		if i > 0 {
			b.WriteString("\n")
		}
		line := util.TruncateString(fmt.Sprintf("  %2d. %s", i+1, name), rosterRowMaxWidth)
		if i == editing {
			b.WriteString(styles.Editing.Render(line + " ✎"))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
	}
	return b.String()
}
