package action

import "strings"

// directionAliases maps every recognized short/long form to its canonical
// lowercase long name.
var directionAliases = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
	"u": "up", "up": "up",
	"d": "down", "down": "down",
}

// Canonicalize resolves a direction token to its canonical long form. The
// second return value is false when the token isn't a recognized direction.
func Canonicalize(dir string) (string, bool) {
	canon, ok := directionAliases[strings.ToLower(strings.TrimSpace(dir))]
	return canon, ok
}
