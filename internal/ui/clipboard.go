package ui

import "github.com/atotto/clipboard"

// SystemClipboard writes to the OS clipboard (pbcopy, xclip/xsel,
// wl-copy or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardAvailable reports whether a clipboard helper was found.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
