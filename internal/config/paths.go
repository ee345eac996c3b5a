package config

import "path/filepath"

// UserConfigDir is where ask keeps its config, input history and log.
func UserConfigDir(home string) string {
	return filepath.Join(home, ".ask")
}

// ReplayPath is the default location of the saved-conversation file. It
// lives directly in the home directory, next to the shell's own dotfiles.
func ReplayPath(home string) string {
	return filepath.Join(home, ".ask_replay")
}
