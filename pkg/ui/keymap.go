package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keymap struct {
	send key.Binding
	quit key.Binding
}

func newKeymap() keymap {
	return keymap{
		send: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		quit: key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

var defaultKeymap = newKeymap()

// IsExit reports whether a line typed by the user ends the session: a blank
// line, "exit" or "quit".
func IsExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "exit", "quit":
		return true
	}

	return false
}
