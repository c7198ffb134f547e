// Package calendar renders calendar selections as an iCalendar (RFC 5545) file.
package calendar

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rcliao/cru-schedule/internal/model"
)

const prodID = "-//cru-schedule//EN"

// Options controls event generation.
type Options struct {
	// TermStart is any date in the first week of classes. Each event starts on
	// the first matching weekday on or after it.
	TermStart time.Time
	// Weeks bounds the recurrence. 0 means open-ended.
	Weeks int
	// Now stamps DTSTAMP. Zero means time.Now.
	Now time.Time
}

var weekday = map[model.Day]time.Weekday{
	model.Monday:    time.Monday,
	model.Tuesday:   time.Tuesday,
	model.Wednesday: time.Wednesday,
	model.Thursday:  time.Thursday,
	model.Friday:    time.Friday,
	model.Saturday:  time.Saturday,
	model.Sunday:    time.Sunday,
}

// FirstOccurrence returns the first date on or after start falling on day.
func FirstOccurrence(start time.Time, day model.Day) time.Time {
	wd, ok := weekday[day]
	if !ok {
		return start
	}
	diff := (int(wd) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, diff)
}

// Summary is the event title for one selected slot.
func Summary(sel model.Selection) string {
	return fmt.Sprintf("%s %s in room %s", sel.Slot.Category(), sel.Course, sel.Slot.Room)
}

// Write emits one weekly recurring VEVENT per selection, with CRLF line
// endings and long properties folded at 75 octets.
func Write(w io.Writer, selections []model.Selection, opts Options) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	cal := ics.NewCalendarFor("cru-schedule")
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")
	for _, sel := range selections {
		if !sel.Slot.Day.Valid() {
			return fmt.Errorf("selection %s: invalid day %q", sel.ID, sel.Slot.Day)
		}
		date := FirstOccurrence(opts.TermStart, sel.Slot.Day).Format("20060102")
		rrule := "FREQ=WEEKLY;BYDAY=" + sel.Slot.Day.ICal()
		if opts.Weeks > 0 {
			rrule += fmt.Sprintf(";COUNT=%d", opts.Weeks)
		}

		ev := cal.AddEvent(sel.ID + "@cru-schedule")
		ev.SetDtStampTime(now)
		// floating local time: the schedule has no zone
		ev.SetProperty(ics.ComponentPropertyDtStart, date+"T"+sel.Slot.Start.ICal())
		ev.SetProperty(ics.ComponentPropertyDtEnd, date+"T"+sel.Slot.End.ICal())
		ev.AddRrule(rrule)
		ev.SetSummary(Summary(sel))
		ev.SetLocation(sel.Slot.Room)
		ev.SetDescription(fmt.Sprintf("%s group %s, %d students", sel.Slot.Kind, sel.Slot.Group, sel.Slot.Capacity))
	}

	return cal.SerializeTo(w, ics.WithNewLineWindows)
}
