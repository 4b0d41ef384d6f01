// Package conditionals gates narrator flavor hints on simple facts about
// the current turn — how far into the session the player is, or where
// they're standing — rather than firing every hint on every turn.
package conditionals

import "encoding/json"

// ContingencyPrompt is either always active (When == nil) or gated behind
// a ConditionalWhen clause.
type ContingencyPrompt struct {
	Prompt string           `json:"prompt"`
	When   *ConditionalWhen `json:"when,omitempty"`
}

// UnmarshalJSON accepts a bare string (always-active) or the full object form.
func (cp *ContingencyPrompt) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		cp.Prompt = str
		cp.When = nil
		return nil
	}

	type alias ContingencyPrompt
	aux := &struct{ *alias }{alias: (*alias)(cp)}
	return json.Unmarshal(data, aux)
}

// ConditionalWhen is the set of facts a hint can be gated on. All
// specified fields must hold for the hint to fire.
type ConditionalWhen struct {
	TurnCounter *int   `json:"turn_counter,omitempty"`
	MinTurns    *int   `json:"min_turns,omitempty"`
	Location    string `json:"location,omitempty"`
}

// GameStateView is the minimal read-only view a turn.State exposes for
// hint evaluation, kept separate to avoid an import cycle with pkg/turn.
type GameStateView interface {
	GetTurnCounter() int
	GetLocation() string
}

// FilterContingencyPrompts returns the text of every prompt whose
// condition currently holds.
func FilterContingencyPrompts(prompts []ContingencyPrompt, gsView GameStateView) []string {
	var active []string
	for _, cp := range prompts {
		if cp.When == nil || EvaluateWhen(*cp.When, gsView) {
			active = append(active, cp.Prompt)
		}
	}
	return active
}

// EvaluateWhen reports whether every condition in when currently holds. A
// clause with no conditions set never fires.
func EvaluateWhen(when ConditionalWhen, gsView GameStateView) bool {
	hasCondition := when.TurnCounter != nil || when.MinTurns != nil || when.Location != ""
	if !hasCondition {
		return false
	}

	if when.TurnCounter != nil && gsView.GetTurnCounter() != *when.TurnCounter {
		return false
	}
	if when.MinTurns != nil && gsView.GetTurnCounter() < *when.MinTurns {
		return false
	}
	if when.Location != "" && gsView.GetLocation() != when.Location {
		return false
	}
	return true
}
