package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		args  string
	}{
		{"", KindEmpty, ""},
		{"   \t ", KindEmpty, ""},
		{"exit", KindExit, ""},
		{"  EXIT  ", KindExit, ""},
		{"exit now", KindChat, ""},
		{"cls", KindClear, ""},
		{"Clear", KindClear, ""},
		{"copy", KindCopy, ""},
		{"copy all", KindCopy, "all"},
		{"COPY ALL", KindCopy, "ALL"},
		{"copyright law", KindChat, ""},
		{"help", KindHelp, ""},
		{"help me out", KindHelp, "me out"},
		{"open notes.txt", KindOpen, "notes.txt"},
		{`open "my notes.txt"`, KindOpen, `"my notes.txt"`},
		{"del work", KindDelete, "work"},
		{"delete   work  ", KindDelete, "work"},
		{"deleted items", KindChat, ""},
		{"replay", KindReplay, ""},
		{"replay work", KindReplay, "work"},
		{"save work", KindSave, "work"},
		{"Save", KindSave, ""},
		{"what is the capital of France?", KindChat, ""},
		{"open\nfile.txt", KindOpen, "file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := Parse(tt.input)
			assert.Equal(t, tt.kind, cmd.Kind, "kind of %q", tt.input)
			assert.Equal(t, tt.args, cmd.Args, "args of %q", tt.input)
		})
	}
}

func TestParseKeepsChatText(t *testing.T) {
	cmd := Parse("  tell me a joke  ")
	assert.Equal(t, KindChat, cmd.Kind)
	assert.Equal(t, "tell me a joke", cmd.Text)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "chat", KindChat.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "replay", KindReplay.String())
}
