package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

const ansiReset = "\x1b[0m"

// statusPrinter writes aligned "label: [KIND] detail" lines grouped under
// section headers, coloured only on a terminal.
type statusPrinter struct {
	w          io.Writer
	colorize   bool
	labelWidth int
	counts     map[statusKind]int
}

func newStatusPrinter(w io.Writer) *statusPrinter {
	return &statusPrinter{
		w:          w,
		colorize:   shouldColorize(w),
		labelWidth: 28,
		counts:     make(map[statusKind]int),
	}
}

func (p *statusPrinter) section(title string) {
	if len(p.counts) > 0 {
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w, p.paint(statusInfo, "== "+title+" =="))
}

func (p *statusPrinter) line(label string, kind statusKind, detail string) {
	p.counts[kind]++
	status := "[" + statusStyles[kind].label + "]"
	if detail != "" {
		status += " " + detail
	}
	fmt.Fprintln(p.w, p.paint(kind, fmt.Sprintf("  %-*s %s", p.labelWidth, label+":", status)))
}

// summary prints the tally of check lines; info lines are not counted.
func (p *statusPrinter) summary() {
	fmt.Fprintf(p.w, "\n%d ok, %d warnings, %d errors\n",
		p.counts[statusOK], p.counts[statusWarn], p.counts[statusError])
}

func (p *statusPrinter) paint(kind statusKind, text string) string {
	if !p.colorize {
		return text
	}
	return statusStyles[kind].color + text + ansiReset
}

func shouldColorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
