package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads menu input line by line.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Line prompts for one line of input and returns it trimmed. io.EOF is
// returned when input is exhausted (user aborted).
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Int prompts until a valid integer is entered.
func (p *Prompter) Int(label string) (int, error) {
	for {
		text, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Please enter a number.")
	}
}

// Float prompts until a valid number is entered.
func (p *Prompter) Float(label string) (float64, error) {
	for {
		text, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Please enter a number.")
	}
}

// YesNo prompts until the user answers y or n.
func (p *Prompter) YesNo(label string) (bool, error) {
	for {
		text, err := p.Line(label + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(text) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Say writes a line to the user.
func (p *Prompter) Say(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
