package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is attached to a terminal, i.e. whether a user can answer prompts.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompter asks questions on one stream and reads answers, one per line, from another.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and reads an answer, repeating until validate accepts it.
// Leading & trailing whitespace is trimmed from answers.
// If input ends before a valid answer is given, the last validation error (or io.ErrUnexpectedEOF) is returned.
func (p *Prompter) Ask(question string, validate func(string) error) (string, error) {
	var lastErr error
	for {
		fmt.Fprint(p.out, question+" ")
		line, readErr := p.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return "", readErr
		}

		answer := strings.TrimSpace(line)
		if readErr != nil && answer == "" {
			fmt.Fprintln(p.out)
			if lastErr != nil {
				return "", lastErr
			}
			return "", io.ErrUnexpectedEOF
		}

		if err := validate(answer); err != nil {
			lastErr = err
			fmt.Fprintln(p.out, "✗", err.Error())
			if readErr != nil {
				return "", err
			}
			continue
		}
		return answer, nil
	}
}
