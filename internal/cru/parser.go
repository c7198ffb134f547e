package cru

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/cru-schedule/internal/model"
)

const maxLineSize = 1 << 20

// Logger receives human-readable diagnostics.
type Logger interface {
	Warnf(format string, args ...any)
}

// Options configures a Parser.
type Options struct {
	// Diagnostics enables the Report counters, Index.Issues and Logger output.
	// It never changes which courses and slots are accepted.
	Diagnostics bool
	Logger      Logger
}

// Source is one named CRU text blob, typically a file.
type Source struct {
	Name string
	Text string
}

// Report holds advisory counts for a parse run. MalformedLines, InvalidFiles
// and OverlapsRejected only move when diagnostics are enabled.
type Report struct {
	Sources          int `json:"sources"`
	MalformedLines   int `json:"malformed_lines"`
	InvalidFiles     int `json:"invalid_files"`
	OverlapsRejected int `json:"overlaps_rejected"`
}

// Clean reports whether nothing was dropped or skipped.
func (r Report) Clean() bool {
	return r.MalformedLines == 0 && r.InvalidFiles == 0 && r.OverlapsRejected == 0
}

// Index is the schedule built by a Parser.
type Index struct {
	Courses []*model.Course  `json:"courses"`
	Rooms   RoomSet          `json:"rooms"`
	Slots   []model.TimeSlot `json:"-"`
	Report  Report           `json:"report"`
	Issues  []error          `json:"-"`
}

// Course returns the first course with the given name, or nil.
func (x *Index) Course(name string) *model.Course {
	for _, c := range x.Courses {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Parser turns CRU lines into an Index.
//
// A Parser accumulates: every Parse call adds to the same Index, so courses,
// slots, rooms and counters from earlier sources stay and later slots are
// checked for overlap against them. Call Reset to start from an empty Index.
// A Parser is not safe for concurrent use.
type Parser struct {
	opts Options
	idx  *Index

	source  string
	pending *model.Course // nil while idle
	opened  int           // line of the pending course header
}

// NewParser returns a Parser with an empty Index.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts, idx: &Index{}}
}

// Index returns the accumulated schedule. Treat it as read-only.
func (p *Parser) Index() *Index {
	return p.idx
}

// Reset discards everything parsed so far.
func (p *Parser) Reset() {
	p.idx = &Index{}
	p.pending = nil
	p.source = ""
	p.opened = 0
}

// ParseAll parses sources in order.
func (p *Parser) ParseAll(sources ...Source) error {
	for _, s := range sources {
		if err := p.ParseString(s.Name, s.Text); err != nil {
			return err
		}
	}
	return nil
}

// ParseString parses one in-memory source.
func (p *Parser) ParseString(name, text string) error {
	return p.Parse(name, strings.NewReader(text))
}

// Parse reads one source line by line. Bad lines are dropped, never fatal;
// only a read error is returned. Each source starts with no open course.
func (p *Parser) Parse(name string, r io.Reader) error {
	p.source = name
	p.pending = nil
	p.idx.Report.Sources++

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	num := 0
	for sc.Scan() {
		num++
		l := Classify(sc.Text())
		l.Num = num
		p.handle(l)
	}
	p.closeCourse()

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// SkipFile records a source that discovery judged ineligible.
func (p *Parser) SkipFile(path string) {
	if !p.opts.Diagnostics {
		return
	}
	p.idx.Report.InvalidFiles++
	p.warn(fmt.Errorf("%s is not a valid file", path))
}

func (p *Parser) handle(l Line) {
	switch l.Kind {
	case HeaderLine:
		p.closeCourse()
		p.pending = model.NewCourse(l.Course)
		p.opened = l.Num
	case DataLine:
		if p.pending == nil {
			return
		}
		p.addSlot(l)
	case UnknownLine:
		if p.pending == nil {
			return
		}
		p.malformed(&MalformedLineError{Source: p.source, Line: l.Num, Text: l.Text, Reason: l.Reason})
	}
}

func (p *Parser) addSlot(l Line) {
	f := l.Fields
	start, err := model.ParseTimeOfDay(f.Start)
	if err != nil {
		p.malformed(&MalformedLineError{Source: p.source, Line: l.Num, Text: l.Text, Reason: "invalid hours", Err: err})
		return
	}
	end, err := model.ParseTimeOfDay(f.End)
	if err != nil {
		p.malformed(&MalformedLineError{Source: p.source, Line: l.Num, Text: l.Text, Reason: "invalid hours", Err: err})
		return
	}
	if !end.After(start) {
		p.malformed(&MalformedLineError{
			Source: p.source, Line: l.Num, Text: l.Text,
			Reason: fmt.Sprintf("end %s is not later than start %s", end, start),
		})
		return
	}
	p.commit(l, model.TimeSlot{
		Kind:     f.Kind,
		Capacity: f.Capacity,
		Day:      f.Day,
		Start:    start,
		End:      end,
		Group:    f.Group,
		Room:     f.Room,
	})
}

func (p *Parser) commit(l Line, s model.TimeSlot) {
	for _, existing := range p.idx.Slots {
		if s.Overlaps(existing) {
			if p.opts.Diagnostics {
				p.idx.Report.OverlapsRejected++
				p.warn(&OverlapConflict{
					Source: p.source, Line: l.Num, Course: p.pending.Name,
					Slot: s, Existing: existing,
				})
			}
			return
		}
	}
	p.pending.AddTimeSlot(s)
	p.idx.Slots = append(p.idx.Slots, s)
	p.idx.Rooms.Add(s.Room)
}

// closeCourse commits the pending course if it holds at least one slot.
func (p *Parser) closeCourse() {
	c := p.pending
	p.pending = nil
	if c == nil {
		return
	}
	if len(c.Slots) > 0 {
		p.idx.Courses = append(p.idx.Courses, c)
		return
	}
	if p.opts.Diagnostics {
		p.idx.Report.MalformedLines++
		p.warn(&EmptyCourseDiscarded{Source: p.source, Line: p.opened, Course: c.Name})
	}
}

func (p *Parser) malformed(err *MalformedLineError) {
	if !p.opts.Diagnostics {
		return
	}
	p.idx.Report.MalformedLines++
	p.warn(err)
}

func (p *Parser) warn(err error) {
	p.idx.Issues = append(p.idx.Issues, err)
	if p.opts.Logger != nil {
		p.opts.Logger.Warnf("%v", err)
	}
}
