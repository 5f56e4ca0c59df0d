package platform

import (
	"os"

	"golang.org/x/term"
)

const (
	PermissionGranted     = "granted"
	PermissionDenied      = "denied"
	PermissionDefault     = "default"
	PermissionUnsupported = "unsupported"
)

// Host answers capability probes.
type Host interface {
	Installed() bool
	Online() bool
	NotificationPermission() string
}

func IsInstalled(h Host) bool {
	return h != nil && h.Installed()
}

func IsOnline(h Host) bool {
	return h != nil && h.Online()
}

func NotificationPermission(h Host) string {
	if h == nil {
		return PermissionUnsupported
	}
	switch p := h.NotificationPermission(); p {
	case PermissionGranted, PermissionDenied, PermissionDefault:
		return p
	default:
		return PermissionUnsupported
	}
}

// TerminalHost is the Host for the interactive client. It counts as
// installed once its data directory exists and can show notices only on a
// terminal.
type TerminalHost struct {
	DataDir string
	Conn    interface{ Online() bool }
	Out     *os.File
}

func (t TerminalHost) Installed() bool {
	if t.DataDir == "" {
		return false
	}
	st, err := os.Stat(t.DataDir)
	return err == nil && st.IsDir()
}

func (t TerminalHost) Online() bool {
	return t.Conn != nil && t.Conn.Online()
}

func (t TerminalHost) NotificationPermission() string {
	if t.Out == nil {
		return PermissionDefault
	}
	if term.IsTerminal(int(t.Out.Fd())) {
		return PermissionGranted
	}
	return PermissionDenied
}
