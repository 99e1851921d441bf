// Package prompt asks the operator to pick one of several options.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	// ErrCancelled is returned when the operator aborts the prompt.
	ErrCancelled = errors.New("selection cancelled")
	// ErrUnavailable is returned when no one can be asked.
	ErrUnavailable = errors.New("no interactive terminal to prompt on")
)

// Option is one selectable entry. Label is shown, Value is returned.
type Option struct {
	Label string
	Value string
}

// Resolver picks one option's Value.
type Resolver interface {
	Choose(title string, options []Option) (string, error)
}

// Func adapts a plain function to a Resolver.
type Func func(title string, options []Option) (string, error)

func (f Func) Choose(title string, options []Option) (string, error) {
	return f(title, options)
}

// Disabled never prompts.
var Disabled Resolver = Func(func(string, []Option) (string, error) {
	return "", ErrUnavailable
})

// Auto returns the best resolver for the given streams: the arrow-key picker
// when both ends are terminals, a numbered line prompt otherwise.
func Auto(in, out *os.File) Resolver {
	if isTerminal(in) && isTerminal(out) {
		return &Picker{In: in, Out: out}
	}
	return &Line{In: in, Out: out}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Line prints a numbered list and reads the choice from In.
type Line struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

const maxAttempts = 3

func (l *Line) Choose(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("nothing to choose from")
	}
	if l.scanner == nil {
		l.scanner = bufio.NewScanner(l.In)
	}

	fmt.Fprintf(l.Out, "  %s\n", title)
	for i, o := range options {
		fmt.Fprintf(l.Out, "    %d) %s\n", i+1, o.Label)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(l.Out, "  Select [1-%d]: ", len(options))
		if !l.scanner.Scan() {
			if err := l.scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrUnavailable
		}
		input := strings.TrimSpace(l.scanner.Text())
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
			return options[n-1].Value, nil
		}
		for _, o := range options {
			if strings.EqualFold(input, o.Value) {
				return o.Value, nil
			}
		}
		fmt.Fprintf(l.Out, "  invalid choice %q\n", input)
	}
	return "", fmt.Errorf("no valid choice after %d attempts", maxAttempts)
}
