// Package prompt asks yes/no questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks question and waits for a yes/no answer. An empty answer or
// end of input selects the default. Anything else asks again.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	for {
		if _, err := fmt.Fprintf(p.out, "%s %s ", question, hint); err != nil {
			return false, err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer, ok := parseAnswer(line, defaultYes)
		if ok {
			return answer, nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return defaultYes, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

func parseAnswer(line string, defaultYes bool) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
