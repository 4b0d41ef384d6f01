package action

import (
	"regexp"
	"strings"
)

// fallback patterns, checked in order; the first match wins. This mirrors
// the shortcut-command idea in the LLM-backed parser this pipeline
// replaces when the external parser is unavailable or low-confidence.
var (
	reTake     = regexp.MustCompile(`(?i)^\s*take\s+(.+)$`)
	reDrop     = regexp.MustCompile(`(?i)^\s*drop\s+(.+)$`)
	reMove     = regexp.MustCompile(`(?i)^\s*(?:move|go)\s+(\w+)$`)
	reLook     = regexp.MustCompile(`(?i)^\s*(?:look|l)\s*$`)
)

// directionWords lets the fallback recognize a bare direction ("north",
// "n") as an implicit move, without requiring "move"/"go".
var directionWords = map[string]bool{
	"n": true, "north": true, "s": true, "south": true,
	"e": true, "east": true, "w": true, "west": true,
	"u": true, "up": true, "d": true, "down": true,
}

// RegexFallback recognizes look, take X, drop X, and move <dir> (including
// a bare direction word). Anything else yields a noop intent with zero
// confidence, signaling the caller that nothing could be parsed.
func RegexFallback(text string) Intent {
	trimmed := strings.TrimSpace(text)

	if reLook.MatchString(trimmed) {
		return Intent{Primary: PrimaryAction{Action: KindLook}, Confidence: 1}
	}
	if m := reTake.FindStringSubmatch(trimmed); m != nil {
		return Intent{Primary: PrimaryAction{Action: KindTake, Target: strings.TrimSpace(m[1])}, Confidence: 1}
	}
	if m := reDrop.FindStringSubmatch(trimmed); m != nil {
		return Intent{Primary: PrimaryAction{Action: KindDrop, Target: strings.TrimSpace(m[1])}, Confidence: 1}
	}
	if m := reMove.FindStringSubmatch(trimmed); m != nil {
		return Intent{Primary: PrimaryAction{Action: KindMove, Dir: m[1]}, Confidence: 1}
	}
	if directionWords[strings.ToLower(trimmed)] {
		return Intent{Primary: PrimaryAction{Action: KindMove, Dir: trimmed}, Confidence: 1}
	}

	return Intent{Primary: PrimaryAction{Action: "noop"}, Confidence: 0}
}
