package session

import "strings"

// Kind is the closed set of things a line of input can be.
type Kind int

const (
	KindChat Kind = iota
	KindEmpty
	KindExit
	KindClear
	KindCopy
	KindHelp
	KindOpen
	KindDelete
	KindReplay
	KindSave
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindExit:
		return "exit"
	case KindClear:
		return "clear"
	case KindCopy:
		return "copy"
	case KindHelp:
		return "help"
	case KindOpen:
		return "open"
	case KindDelete:
		return "delete"
	case KindReplay:
		return "replay"
	case KindSave:
		return "save"
	default:
		return "chat"
	}
}

// Command is a classified line of input.
type Command struct {
	Kind Kind
	Text string // the whole trimmed input
	Args string // everything after the keyword, trimmed
}

// keywords maps the first word of a line (lowercased) to its command.
// exit, cls and clear only count when they are the whole line.
var keywords = map[string]Kind{
	"copy":   KindCopy,
	"help":   KindHelp,
	"open":   KindOpen,
	"del":    KindDelete,
	"delete": KindDelete,
	"replay": KindReplay,
	"save":   KindSave,
}

// Parse classifies one line of input. Keywords are matched on the first
// whitespace-delimited word, case-insensitively, so "copyright" is a chat
// message and "delete x" is never mistaken for something else.
func Parse(input string) Command {
	text := strings.TrimSpace(input)
	if text == "" {
		return Command{Kind: KindEmpty}
	}

	switch strings.ToLower(text) {
	case "exit":
		return Command{Kind: KindExit, Text: text}
	case "cls", "clear":
		return Command{Kind: KindClear, Text: text}
	}

	word := text
	if i := strings.IndexFunc(text, isSpace); i >= 0 {
		word = text[:i]
	}
	kind, ok := keywords[strings.ToLower(word)]
	if !ok {
		return Command{Kind: KindChat, Text: text}
	}
	return Command{
		Kind: kind,
		Text: text,
		Args: strings.TrimSpace(text[len(word):]),
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
