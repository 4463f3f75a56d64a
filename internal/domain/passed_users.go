package domain

import (
	"strconv"
	"strings"
)

const passedUsersSep = ","

// PassedUsers is the ordered set of user ids that have been handed a test.
// It is stored as a comma-terminated list, e.g. "12,7,".
type PassedUsers struct {
	ids []string
	// source is the exact text the set was read from, used for
	// compare-and-swap updates against rows written by older clients.
	source string
}

// ParsePassedUsers reads the stored form. Empty entries are dropped and
// repeated ids are kept once, in first-seen order.
func ParsePassedUsers(s string) PassedUsers {
	p := PassedUsers{source: s}
	for _, id := range strings.Split(s, passedUsersSep) {
		if id == "" || p.contains(id) {
			continue
		}
		p.ids = append(p.ids, id)
	}
	return p
}

// Contains reports whether the user is already in the set.
func (p PassedUsers) Contains(userID int64) bool {
	return p.contains(strconv.FormatInt(userID, 10))
}

func (p PassedUsers) contains(id string) bool {
	for _, existing := range p.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Add returns a copy of the set with the user appended.
// The receiver is never modified.
func (p PassedUsers) Add(userID int64) PassedUsers {
	if p.Contains(userID) {
		return p
	}
	ids := make([]string, len(p.ids), len(p.ids)+1)
	copy(ids, p.ids)
	next := PassedUsers{ids: append(ids, strconv.FormatInt(userID, 10))}
	next.source = next.String()
	return next
}

// Len returns the number of ids in the set.
func (p PassedUsers) Len() int {
	return len(p.ids)
}

// IDs returns the ids in insertion order.
func (p PassedUsers) IDs() []string {
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Source returns the text the set was parsed from. For sets built with Add
// it equals String.
func (p PassedUsers) Source() string {
	return p.source
}

// String renders the stored form: every id followed by a separator.
func (p PassedUsers) String() string {
	var b strings.Builder
	for _, id := range p.ids {
		b.WriteString(id)
		b.WriteString(passedUsersSep)
	}
	return b.String()
}
