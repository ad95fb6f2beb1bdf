package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Roster errors
var (
	ErrRosterAtMinimum = errors.New("roster is already at its minimum size")
	ErrRosterIndex     = errors.New("player index out of range")
)

// Roster is an editable list of players. Remove never takes it below the minimum size.
type Roster struct {
	min     int
	players []TeamPlayer
}

// NewRoster returns a roster with min blank player rows
func NewRoster(min int) *Roster {
	if min < 1 {
		min = 1
	}
	return &Roster{
		min:     min,
		players: make([]TeamPlayer, min),
	}
}

// RosterOf wraps submitted players. Unlike NewRoster it keeps short lists
// as they are so Validate can report them.
func RosterOf(min int, players []TeamPlayer) *Roster {
	if min < 1 {
		min = 1
	}
	out := make([]TeamPlayer, len(players))
	copy(out, players)
	return &Roster{min: min, players: out}
}

// Len returns the current number of rows
func (r *Roster) Len() int {
	return len(r.players)
}

// Add appends a blank player row
func (r *Roster) Add() {
	r.players = append(r.players, TeamPlayer{})
}

// Remove deletes the player at index i. Rows can only be removed above the minimum.
func (r *Roster) Remove(i int) error {
	if len(r.players) <= r.min {
		return ErrRosterAtMinimum
	}
	if i < 0 || i >= len(r.players) {
		return ErrRosterIndex
	}
	r.players = append(r.players[:i], r.players[i+1:]...)
	return nil
}

// Players returns a copy of the rows
func (r *Roster) Players() []TeamPlayer {
	out := make([]TeamPlayer, len(r.players))
	copy(out, r.players)
	return out
}

// Names returns the trimmed player names in roster order
func (r *Roster) Names() []string {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = strings.TrimSpace(p.Name)
	}
	return names
}

// Validate checks every row, reporting fields as players[i].<field>.
// A name may appear only once per roster, compared the same way as
// names on other rosters.
func (r *Roster) Validate() []FieldError {
	var errs []FieldError
	for i := range r.players {
		for _, fe := range ValidateStruct(&r.players[i]) {
			fe.Field = fmt.Sprintf("players[%d].%s", i, fe.Field)
			errs = append(errs, fe)
		}
	}

	first := make(map[string]int, len(r.players))
	for i, name := range r.Names() {
		if name == "" {
			continue
		}
		key := FoldName(name)
		if j, seen := first[key]; seen {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("players[%d].name", i),
				Message: fmt.Sprintf("duplicates players[%d]", j),
			})
			continue
		}
		first[key] = i
	}

	if r.Len() < r.min {
		errs = append(errs, FieldError{Field: "players", Message: minPlayersMessage(r.min)})
	}
	return errs
}

// FoldName normalizes a player name for collision checks.
// Names compare case-insensitively and ignore surrounding whitespace.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NameSet builds the set of folded names from existing team members
func NameSet(members []*TeamMember) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[FoldName(m.PlayerName)] = struct{}{}
	}
	return set
}

// Collisions returns the submitted names, in roster order and without
// repeats, whose folded form is already in existing.
func Collisions(existing map[string]struct{}, players []TeamPlayer) []string {
	var out []string
	reported := make(map[string]struct{})
	for _, p := range players {
		key := FoldName(p.Name)
		if _, taken := existing[key]; !taken {
			continue
		}
		if _, dup := reported[key]; dup {
			continue
		}
		reported[key] = struct{}{}
		out = append(out, strings.TrimSpace(p.Name))
	}
	return out
}

func minPlayersMessage(min int) string {
	if min == 1 {
		return "minimum 1 player required"
	}
	return fmt.Sprintf("minimum %d players required", min)
}
