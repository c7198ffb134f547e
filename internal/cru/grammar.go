// Package cru parses CRU schedule text into courses and time slots.
//
// A CRU source is line oriented. Two line shapes are recognised:
//
//	+AP03
//	1,D1,P=25,H=V 9:00-12:00,F1,S=B103//
//
// The first opens a course, the second adds a weekly time slot to it. The
// accepted shapes are described by the rule table returned by Rules.
package cru

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/cru-schedule/internal/model"
)

// LineKind classifies a raw line.
type LineKind int

const (
	BlankLine LineKind = iota
	HeaderLine
	DataLine
	UnknownLine
)

func (k LineKind) String() string {
	switch k {
	case BlankLine:
		return "blank"
	case HeaderLine:
		return "header"
	case DataLine:
		return "data"
	}
	return "unknown"
}

// Fields holds the values extracted from a data line. Times are kept as text;
// range checking happens in the parser.
type Fields struct {
	Kind     string
	Capacity int
	Day      model.Day
	Start    string
	End      string
	Group    string
	Room     string
}

// Line is one classified source line.
type Line struct {
	Num    int
	Text   string
	Kind   LineKind
	Course string // header lines only
	Fields Fields // data lines only
	Reason string // why a line is UnknownLine
}

// Rule describes one comma-separated field of a data line.
type Rule struct {
	Name    string
	Pattern string
	re      *regexp.Regexp
	assign  func(f *Fields, m []string) error
}

const (
	headerMarker   = "+"
	dataTerminator = "//"
	fieldSeparator = ","
)

var headerRegex = regexp.MustCompile(`^\+([A-Z0-9]+)$`)

var dataRules = []Rule{
	{
		Name:    "count",
		Pattern: `1`,
		assign:  func(*Fields, []string) error { return nil },
	},
	{
		Name:    "kind",
		Pattern: `([CDT][0-9]+)`,
		assign: func(f *Fields, m []string) error {
			f.Kind = m[1]
			return nil
		},
	},
	{
		Name:    "capacity",
		Pattern: `P=([0-9]+)`,
		assign: func(f *Fields, m []string) error {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return fmt.Errorf("capacity %q: %w", m[1], err)
			}
			f.Capacity = n
			return nil
		},
	},
	{
		Name:    "schedule",
		Pattern: `H=(L|MA|ME|J|V|S|D) ([0-9]{1,2}:[0-9]{2})-([0-9]{1,2}:[0-9]{2})`,
		assign: func(f *Fields, m []string) error {
			f.Day = model.Day(m[1])
			f.Start, f.End = m[2], m[3]
			return nil
		},
	},
	{
		Name:    "group",
		Pattern: `(F[0-9A-Z])`,
		assign: func(f *Fields, m []string) error {
			f.Group = m[1]
			return nil
		},
	},
	{
		Name:    "room",
		Pattern: `S=([A-Z]+[0-9]*)`,
		assign: func(f *Fields, m []string) error {
			f.Room = m[1]
			return nil
		},
	},
}

func init() {
	for i := range dataRules {
		dataRules[i].re = regexp.MustCompile("^" + dataRules[i].Pattern + "$")
	}
}

// Rules returns the data line field rules in order.
func Rules() []Rule {
	out := make([]Rule, len(dataRules))
	copy(out, dataRules)
	return out
}

// Classify tokenizes a single line. Whitespace-only lines are blank.
func Classify(text string) Line {
	l := Line{Text: text}

	if strings.TrimSpace(text) == "" {
		l.Kind = BlankLine
		return l
	}

	if strings.HasPrefix(text, headerMarker) {
		m := headerRegex.FindStringSubmatch(text)
		if m == nil {
			l.Kind = UnknownLine
			l.Reason = "course name must be uppercase letters and digits"
			return l
		}
		l.Kind = HeaderLine
		l.Course = m[1]
		return l
	}

	fields, reason := tokenizeData(text)
	if reason != "" {
		l.Kind = UnknownLine
		l.Reason = reason
		return l
	}
	l.Kind = DataLine
	l.Fields = fields
	return l
}

func tokenizeData(text string) (Fields, string) {
	var f Fields
	if !strings.HasSuffix(text, dataTerminator) {
		return f, "missing " + dataTerminator + " terminator"
	}
	parts := strings.Split(strings.TrimSuffix(text, dataTerminator), fieldSeparator)
	if len(parts) != len(dataRules) {
		return f, fmt.Sprintf("expected %d fields, got %d", len(dataRules), len(parts))
	}
	for i, r := range dataRules {
		m := r.re.FindStringSubmatch(parts[i])
		if m == nil {
			return f, fmt.Sprintf("field %s: %q does not match %s", r.Name, parts[i], r.Pattern)
		}
		if err := r.assign(&f, m); err != nil {
			return f, fmt.Sprintf("field %s: %v", r.Name, err)
		}
	}
	return f, ""
}
