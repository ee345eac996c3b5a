package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-shellwords"

	"github.com/ehrlich-b/ask/internal/conversation"
	"github.com/ehrlich-b/ask/internal/logger"
	"github.com/ehrlich-b/ask/internal/replay"
)

const (
	promptMain = "> "
	promptMore = ": "

	// readTemplate wraps text pulled in by open.
	readTemplate = "Please read this text: %s"
)

const helpText = `Commands:
  exit                 quit
  cls | clear          clear the screen and start over
  help                 show this help
  open <path-or-url>   read a file, web page or video transcript into the chat
  save <tag>           save the current conversation
  replay               list saved conversations
  replay <tag>         load a saved conversation
  del | delete <tag>   delete a saved conversation
  copy                 copy the last message to the clipboard
  copy all             copy the whole conversation
End a line with \ to continue it on the next line.
Anything else is sent to the model.`

// Completer produces the next assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages conversation.Conversation) (string, error)
}

// Store holds saved conversations by tag.
type Store interface {
	FetchOne(tag string) (conversation.Conversation, bool, error)
	List() ([]replay.Entry, error)
	Save(tag string, conv conversation.Conversation) error
	Delete(tag string) (bool, error)
}

// Extractor returns the text behind a path or URL, or ok=false.
type Extractor interface {
	Extract(ctx context.Context, source string) (string, bool)
}

type Clipboard interface {
	Copy(text string) error
}

// Display is where the session writes everything the user sees.
type Display interface {
	Banner()
	Farewell()
	User(content string)
	Assistant(content string)
	Info(msg string)
	Warn(msg string)
	Error(header string, err error)
	Clear()
}

type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ChangeDetector reports outside modifications of the replay file.
type ChangeDetector interface {
	Changed() bool
}

// Options wires a Session to its collaborators. Watcher is optional.
type Options struct {
	Provider  Completer
	Store     Store
	Extractor Extractor
	Clipboard Clipboard
	Display   Display
	Input     LineReader
	Watcher   ChangeDetector

	// Timeout bounds each completion or extraction call. Zero means none.
	Timeout time.Duration
}

// Session is the REPL state machine: one live conversation, driven one
// line of input at a time.
type Session struct {
	provider  Completer
	store     Store
	extractor Extractor
	clipboard Clipboard
	display   Display
	input     LineReader
	watcher   ChangeDetector
	timeout   time.Duration

	live    conversation.Conversation
	pending string
	now     func() time.Time
}

func New(opts Options) *Session {
	return &Session{
		provider:  opts.Provider,
		store:     opts.Store,
		extractor: opts.Extractor,
		clipboard: opts.Clipboard,
		display:   opts.Display,
		input:     opts.Input,
		watcher:   opts.Watcher,
		timeout:   opts.Timeout,
		live:      conversation.Conversation{},
		now:       time.Now,
	}
}

// Conversation returns a copy of the live conversation.
func (s *Session) Conversation() conversation.Conversation {
	return s.live.Clone()
}

// Run reads and executes input until exit or end of input. Command errors
// are shown and the loop continues; only a failing input reader or a
// cancelled context stops it early.
func (s *Session) Run(ctx context.Context) error {
	s.display.Banner()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.watcher != nil && s.watcher.Changed() {
			s.display.Warn("The replay file was modified outside this session.")
		}

		prompt := promptMain
		if s.pending != "" {
			prompt = promptMore
		}
		line, err := s.input.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			s.display.Farewell()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input, ready := s.accumulate(line)
		if !ready {
			continue
		}

		exit, err := s.Execute(ctx, input)
		if err != nil {
			s.report(err)
		}
		if exit {
			s.display.Farewell()
			return nil
		}
	}
}

// accumulate joins continuation lines. A line ending in a backslash is held
// in pending and the next line is appended to it.
func (s *Session) accumulate(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if s.pending != "" {
		line = s.pending + "\n" + line
		s.pending = ""
	}
	if strings.HasSuffix(line, `\`) {
		s.pending = strings.TrimSpace(strings.TrimSuffix(line, `\`))
		return "", false
	}
	return line, true
}

// Execute runs one complete input and reports whether the loop should end.
func (s *Session) Execute(ctx context.Context, input string) (bool, error) {
	cmd := Parse(input)
	if cmd.Kind != KindEmpty {
		logger.Debug("command", "kind", cmd.Kind, "args", cmd.Args)
	}

	switch cmd.Kind {
	case KindEmpty:
		return false, nil
	case KindExit:
		return true, nil
	case KindClear:
		s.live = conversation.Conversation{}
		s.display.Clear()
		return false, nil
	case KindCopy:
		return false, s.copy(cmd.Args)
	case KindHelp:
		s.display.Info(helpText)
		return false, nil
	case KindOpen:
		return false, s.open(ctx, cmd.Args)
	case KindDelete:
		return false, s.delete(cmd.Args)
	case KindReplay:
		return false, s.replay(cmd.Args)
	case KindSave:
		return false, s.save(cmd.Args)
	default:
		return false, s.chat(ctx, cmd.Text)
	}
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// chat appends text as a user message and asks the model for a reply. On
// failure the user message is kept.
func (s *Session) chat(ctx context.Context, text string) error {
	s.live = append(s.live, conversation.User(validUTF8(text)))

	callCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := s.now()
	reply, err := s.provider.Complete(callCtx, s.live.Clone())
	if err != nil {
		logger.Error("chat turn failed", "messages", len(s.live), "error", err)
		return fmt.Errorf("%w: %w", ErrService, err)
	}

	s.live = append(s.live, conversation.Assistant(validUTF8(reply)))
	logger.Info("chat turn", "messages", len(s.live), "duration", s.now().Sub(start))
	s.display.Assistant(reply)
	return nil
}

// validUTF8 replaces invalid byte sequences so the conversation matches what
// the replay file and the API can carry.
func validUTF8(text string) string {
	return strings.ToValidUTF8(text, "\uFFFD")
}

func (s *Session) open(ctx context.Context, args string) error {
	if args == "" {
		return fmt.Errorf("%w: open <path-or-url>", ErrUsage)
	}
	words, err := shellwords.Parse(args)
	if err != nil {
		return fmt.Errorf("%w: open <path-or-url>: %v", ErrUsage, err)
	}
	if len(words) != 1 {
		return fmt.Errorf("%w: open takes one path or URL (quote paths with spaces)", ErrUsage)
	}
	source := words[0]

	callCtx, cancel := s.withTimeout(ctx)
	text, ok := s.extractor.Extract(callCtx, source)
	cancel()
	if !ok {
		return fmt.Errorf("%w from %s", ErrExtraction, source)
	}

	s.display.Info(fmt.Sprintf("Read %s characters from %s", humanize.Comma(int64(len(text))), source))
	return s.chat(ctx, fmt.Sprintf(readTemplate, text))
}

func (s *Session) copy(args string) error {
	if len(s.live) == 0 {
		s.display.Warn("Nothing to copy yet.")
		return nil
	}

	var text, what string
	switch strings.ToLower(args) {
	case "":
		last, _ := s.live.Last()
		text, what = last.Content, "last message"
	case "all":
		text, what = s.live.Contents(), "conversation"
	default:
		return fmt.Errorf("%w: copy [all]", ErrUsage)
	}

	if err := s.clipboard.Copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.display.Info("Copied " + what + " to the clipboard.")
	return nil
}

func (s *Session) save(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return fmt.Errorf("%w: save <tag>", ErrUsage)
	}
	tag := fields[0]

	if err := s.store.Save(tag, s.live.Clone()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	logger.Info("conversation saved", "tag", tag, "messages", len(s.live))
	s.display.Info(fmt.Sprintf("Conversation saved as '%s'", tag))
	return nil
}

func (s *Session) delete(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return fmt.Errorf("%w: delete <tag>", ErrUsage)
	}
	tag := fields[0]

	existed, err := s.store.Delete(tag)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !existed {
		return fmt.Errorf("%w: %q", ErrNotFound, tag)
	}
	logger.Info("conversation deleted", "tag", tag)
	s.display.Info(fmt.Sprintf("Conversation with tag '%s' deleted", tag))
	return nil
}

func (s *Session) replay(args string) error {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return s.listSaved()
	case 1:
	default:
		return fmt.Errorf("%w: replay [tag]", ErrUsage)
	}
	tag := fields[0]

	conv, ok, err := s.store.FetchOne(tag)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, tag)
	}

	s.live = conv.Clone()
	logger.Info("conversation replayed", "tag", tag, "messages", len(s.live))
	for _, m := range s.live {
		if m.Role == conversation.RoleAssistant {
			s.display.Assistant(m.Content)
		} else {
			s.display.User(m.Content)
		}
	}
	return nil
}

func (s *Session) listSaved() error {
	entries, err := s.store.List()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if len(entries) == 0 {
		s.display.Info("No saved conversations yet.")
		return nil
	}

	var b strings.Builder
	b.WriteString("The following can be replayed:")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n  %s  (%d messages", e.Tag, e.Messages)
		if !e.SavedAt.IsZero() {
			fmt.Fprintf(&b, ", saved %s", humanize.RelTime(e.SavedAt, s.now(), "ago", "from now"))
		}
		b.WriteString(")")
	}
	s.display.Info(b.String())
	return nil
}

// report shows a command error. Nothing is swallowed: every error reaches
// the display and the log.
func (s *Session) report(err error) {
	logger.Warn("command failed", "error", err)
	switch {
	case errors.Is(err, ErrUsage), errors.Is(err, ErrNotFound):
		s.display.Warn(err.Error())
	case errors.Is(err, ErrService):
		s.display.Error("Query Error", err)
	case errors.Is(err, ErrExtraction):
		s.display.Error("Open Error", err)
	case errors.Is(err, ErrStorage):
		s.display.Error("Replay Error", err)
	default:
		s.display.Error("Error", err)
	}
}
