package handlers

import (
	"regexp"
	"strings"
)

// systemCommandKind is one of the four short-circuit commands detected in
// /narrate (§6): save, load, restart, or a saves listing. Recognizing one
// skips the narrator entirely and returns systemCommand:true.
type systemCommandKind string

const (
	cmdSave    systemCommandKind = "save"
	cmdLoad    systemCommandKind = "load"
	cmdRestart systemCommandKind = "restart"
	cmdSaves   systemCommandKind = "saves"
	cmdNone    systemCommandKind = ""
)

// SystemCommand is a parsed system command: its kind plus any name argument
// (the save/load target, empty for restart/saves).
type SystemCommand struct {
	Kind systemCommandKind
	Name string
}

var (
	saveRe    = regexp.MustCompile(`(?i)^save(?:\s+as)?\s+(.+)$`)
	loadRe    = regexp.MustCompile(`(?i)^load\s+(.+)$`)
	restartRe = regexp.MustCompile(`(?i)^(new game|restart|start over)$`)
	savesRe   = regexp.MustCompile(`(?i)^(saves|my saves|list saves|show saves)$`)
)

// ParseSystemCommand recognizes the four system-command shapes against a
// player's /narrate input. A no-match returns cmdNone and the caller falls
// through to normal turn processing.
func ParseSystemCommand(input string) SystemCommand {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return SystemCommand{Kind: cmdNone}
	}

	if m := saveRe.FindStringSubmatch(trimmed); m != nil {
		return SystemCommand{Kind: cmdSave, Name: strings.TrimSpace(m[1])}
	}
	if m := loadRe.FindStringSubmatch(trimmed); m != nil {
		return SystemCommand{Kind: cmdLoad, Name: strings.TrimSpace(m[1])}
	}
	if restartRe.MatchString(trimmed) {
		return SystemCommand{Kind: cmdRestart}
	}
	if savesRe.MatchString(trimmed) {
		return SystemCommand{Kind: cmdSaves}
	}
	return SystemCommand{Kind: cmdNone}
}

// IsSystemCommand reports whether the parsed command should short-circuit
// the narrator.
func (c SystemCommand) IsSystemCommand() bool {
	return c.Kind != cmdNone
}
