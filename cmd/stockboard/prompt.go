package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// linePrompter asks questions on out and reads one answer per line from in.
// End of input cancels.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) readLine(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", false, nil
	}
	if err != nil && err != io.EOF {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (p *linePrompter) RequestText(ctx context.Context, prompt, initial string) (string, bool, error) {
	if initial != "" {
		fmt.Fprintf(p.out, "%s [%s] ", prompt, initial)
	} else {
		fmt.Fprintf(p.out, "%s ", prompt)
	}
	return p.readLine(ctx)
}

func (p *linePrompter) RequestConfirmation(ctx context.Context, message string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	answer, ok, err := p.readLine(ctx)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *linePrompter) RequestChoice(ctx context.Context, prompt string, options []string) (int, bool, error) {
	fmt.Fprintln(p.out, prompt)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "Choice: ")
	answer, ok, err := p.readLine(ctx)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 1 || n > len(options) {
		return 0, false, nil
	}
	return n - 1, true, nil
}
