package dispatch

import (
	"strings"
	"unicode"
)

// parseCommand splits the first whitespace-delimited token of a command
// message into the command name and the optional @username it addresses.
// The token is known to start with '/' because the caller checked the
// bot_command entity at offset zero.
func parseCommand(text string) (name, username string) {
	token := text
	if i := strings.IndexFunc(token, unicode.IsSpace); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimPrefix(token, "/")

	name, username, _ = strings.Cut(token, "@")
	return name, username
}
