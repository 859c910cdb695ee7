package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault is GetSimpleText with a pre-populated value: the
// current value is shown and an empty answer keeps it.
func GetTextWithDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	text, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

// GetRequiredText re-prompts until a non-blank answer is given. With a
// non-empty current value an empty answer keeps it.
func GetRequiredText(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	for {
		text, err := GetTextWithDefault(reader, prompt, current, w)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
		fmt.Fprintln(w, "This field is required.")
	}
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal (the process stdin) without echo. A newline is printed
// after the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
//
// When current is non-empty it is printed first and an immediately empty
// answer keeps it.
func GetMultiline(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		fmt.Fprintf(w, "%s (current value below, empty line keeps it)\n%s\n", prompt, indent(current))
	} else {
		fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n")
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 && current == "" {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return current, nil
	}
	return text, nil
}

// Confirm asks a yes/no question; only "y" or "yes" count as consent.
func Confirm(reader *bufio.Reader, question string, w io.Writer) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", question)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(w)
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ParseIDList parses a comma or space separated list of positive ids.
// "-" means an explicitly empty list.
func ParseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return []int64{}, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	ids := make([]int64, 0, len(fields))
	seen := make(map[int64]struct{}, len(fields))
	for _, f := range fields {
		id, err := common.ParseID(f)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatIDList(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
