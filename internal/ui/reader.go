package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// LineReader reads one line of user input after showing prompt. It
// returns io.EOF when input ends.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// NewLineReader picks a line-editing terminal reader when in is a TTY and a
// plain scanner otherwise. hist may be nil.
func NewLineReader(in *os.File, out io.Writer, hist term.History) LineReader {
	if isatty.IsTerminal(in.Fd()) {
		return NewTermReader(in, out, hist)
	}
	return NewScanReader(in, out)
}

// TermReader reads lines through golang.org/x/term with editing keys and
// up/down history. The terminal is only in raw mode while reading.
type TermReader struct {
	fd int
	t  *term.Terminal
}

func NewTermReader(in *os.File, out io.Writer, hist term.History) *TermReader {
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")
	if hist != nil {
		t.History = hist
	}
	return &TermReader{fd: int(in.Fd()), t: t}
}

func (r *TermReader) ReadLine(prompt string) (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(r.fd, state)

	if w, _, err := term.GetSize(r.fd); err == nil {
		r.t.SetSize(w, 0)
	}
	r.t.SetPrompt(prompt)
	return r.t.ReadLine()
}

// ScanReader reads newline-terminated input from a pipe or file.
type ScanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScanReader(in io.Reader, out io.Writer) *ScanReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	return &ScanReader{scanner: scanner, out: out}
}

func (r *ScanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}
