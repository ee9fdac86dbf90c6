package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads one trimmed line from reader.
// If EOF occurs after some input was read, the partial line is returned.
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

// GetPassword reads a password from the terminal without echo. The caller
// should clear the returned slice when done.
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

// GetKeyValues reads "name=value" lines until an empty line or EOF. The raw
// lines are returned; parsing is up to the caller.
func GetKeyValues(reader *bufio.Reader, prompt string, w io.Writer) ([]string, error) {
	if _, err := fmt.Fprintln(w, prompt+" (empty line to finish)"); err != nil {
		return nil, err
	}

	lines := make([]string, 0)
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
	return lines, nil
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// getInt64 prompts until a positive integer is entered. With optional set an
// empty answer returns (nil, nil).
func getInt64(reader *bufio.Reader, prompt string, w io.Writer, optional bool) (*int64, error) {
	for {
		s, err := getSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		if s == "" && optional {
			return nil, nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil && v > 0 {
			return &v, nil
		}
		fmt.Fprintln(w, "Please enter a positive number")
	}
}

// getAmount prompts until a positive decimal is entered. With optional set
// an empty answer returns (nil, nil).
func getAmount(reader *bufio.Reader, prompt string, w io.Writer, optional bool) (*decimal.Decimal, error) {
	for {
		s, err := getSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		if s == "" && optional {
			return nil, nil
		}
		v, err := decimal.NewFromString(s)
		if err == nil && v.IsPositive() {
			return &v, nil
		}
		fmt.Fprintln(w, "Please enter a positive amount, e.g. 12.50")
	}
}
