// internal/console/prompter.go
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"diet-manager/internal/models"
)

// Prompter asks questions one line at a time. Numeric prompts repeat until
// the answer parses. Every method returns io.EOF once input is exhausted.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// String returns the answer with surrounding whitespace removed.
func (p *Prompter) String(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *Prompter) Int(prompt string) (int, error) {
	for {
		answer, err := p.String(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
	}
}

func (p *Prompter) Float(prompt string) (float64, error) {
	for {
		answer, err := p.String(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(answer, 64)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
	}
}

// Confirm treats "y" and "yes" (any case) as agreement.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.String(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Keywords splits a comma separated answer, dropping empty items.
func (p *Prompter) Keywords(prompt string) ([]string, error) {
	answer, err := p.String(prompt)
	if err != nil {
		return nil, err
	}
	return models.SplitKeywords(answer), nil
}
