package main

import (
	"fmt"
	"os"
	"strings"

	"copper/internal/diagfmt"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: the live view draws on stderr, so auto only needs stderr
// to be a terminal. Machine formats never get it.
func shouldUseTUI(mode uiMode, format diagfmt.Format) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	switch format {
	case diagfmt.FormatJSON, diagfmt.FormatGitHub, diagfmt.FormatFiles:
		return false
	}
	return isTerminal(os.Stderr)
}
