package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// Terminal seams, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errEmptyPassword = errors.New("password must not be empty")

// GetSimpleText prints prompt and reads one trimmed line. A final line
// without a newline is still returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetChoice reads a value from options, case-insensitively, asking again
// until the answer matches. The canonical spelling from options is returned.
func GetChoice(reader *bufio.Reader, prompt string, options []string, w io.Writer) (string, error) {
	full := fmt.Sprintf("%s (%s)", prompt, strings.Join(options, ", "))
	for {
		v, err := GetSimpleText(reader, full, w)
		if err != nil {
			return "", err
		}
		if i := slices.IndexFunc(options, func(o string) bool { return strings.EqualFold(o, v) }); i >= 0 {
			return options[i], nil
		}
		fmt.Fprintf(w, "%q is not one of %s\n", v, strings.Join(options, ", "))
	}
}

// GetPassword reads a password without echo when stdin is a terminal.
// Piped input (scripts, CI) is read as a plain line from reader. The
// caller wipes the returned slice.
func GetPassword(reader *bufio.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	var pw []byte
	if fd := int(os.Stdin.Fd()); isTerminal(fd) {
		b, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return nil, err
		}
		pw = b
	} else {
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return nil, err
		}
		pw = []byte(strings.TrimRight(line, "\r\n"))
	}

	if len(pw) == 0 {
		return nil, errEmptyPassword
	}
	return pw, nil
}

// GetMultiline collects lines until an empty one, for case descriptions
// and long chat messages.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// wipe zeroes a password buffer once it has been sent.
func wipe(b []byte) {
	clear(b)
}
