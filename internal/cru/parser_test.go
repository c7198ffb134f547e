package cru

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/cru-schedule/internal/model"
)

type recorder struct {
	msgs []string
}

func (r *recorder) Warnf(format string, args ...any) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func parse(t *testing.T, diagnostics bool, texts ...string) (*Index, *recorder) {
	t.Helper()
	rec := &recorder{}
	p := NewParser(Options{Diagnostics: diagnostics, Logger: rec})
	for i, text := range texts {
		require.NoError(t, p.ParseString(fmt.Sprintf("src%d.cru", i), text))
	}
	return p.Index(), rec
}

func tod(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParse_SingleCourse(t *testing.T) {
	idx, _ := parse(t, false, "+AP03\r\n1,D1,P=25,H=V 9:00-12:00,F1,S=B103//")

	want := &model.Course{
		Name: "AP03",
		Slots: []model.TimeSlot{{
			Kind: "D1", Capacity: 25, Day: model.Friday,
			Start: tod("9:00"), End: tod("12:00"),
			Group: "F1", Room: "B103",
		}},
	}
	require.Len(t, idx.Courses, 1)
	assert.Equal(t, want, idx.Courses[0])
	assert.Equal(t, []string{"B103"}, idx.Rooms.Items())
	assert.Len(t, idx.Slots, 1)
}

func TestParse_EmptyCourseDiscarded(t *testing.T) {
	idx, rec := parse(t, true, "+AP03\r\n \r\n")

	assert.Empty(t, idx.Courses)
	assert.Equal(t, 1, idx.Report.MalformedLines)
	require.Len(t, idx.Issues, 1)
	var empty *EmptyCourseDiscarded
	require.True(t, errors.As(idx.Issues[0], &empty))
	assert.Equal(t, "AP03", empty.Course)
	assert.Len(t, rec.msgs, 1)
}

func TestParse_EmptyCourseBeforeNextHeader(t *testing.T) {
	idx, _ := parse(t, true, "+EMPTY\n+FULL\n1,C1,P=10,H=L 8:00-10:00,F1,S=A1//\n")

	require.Len(t, idx.Courses, 1)
	assert.Equal(t, "FULL", idx.Courses[0].Name)
	assert.Equal(t, 1, idx.Report.MalformedLines)
}

func TestParse_SkipsCorruptedLines(t *testing.T) {
	input := "+LO02\r\n" +
		"1,C1,P=200,H=V 8:00-10:00,F1,S=N101//\r\n" +
		"?? 1,D3,P=24,H=L 8:00-10:00,F1,S=P203//\r\n" +
		"** 1,D1,P=24,H=V 10:00-12:00,F1,S=B204//\r\n" +
		"\r\n" + "Page generee en : 1.1899800300598 sec"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 1)
	assert.Len(t, idx.Courses[0].Slots, 1)
	assert.Equal(t, 3, idx.Report.MalformedLines)
	for _, err := range idx.Issues {
		var mle *MalformedLineError
		assert.True(t, errors.As(err, &mle), "unexpected issue %v", err)
	}
}

func TestParse_OverlapRejected(t *testing.T) {
	input := "+LO02\n" +
		"1,D1,P=24,H=V 10:00-12:00,F1,S=B204//\n" +
		"1,D2,P=24,H=V 10:00-11:00,F2,S=B204//\n"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 1)
	require.Len(t, idx.Courses[0].Slots, 1)
	assert.Equal(t, "D1", idx.Courses[0].Slots[0].Kind)
	assert.Equal(t, 1, idx.Report.OverlapsRejected)
	assert.Equal(t, 0, idx.Report.MalformedLines)

	var oc *OverlapConflict
	require.Len(t, idx.Issues, 1)
	require.True(t, errors.As(idx.Issues[0], &oc))
	assert.Equal(t, "D2", oc.Slot.Kind)
	assert.Equal(t, "D1", oc.Existing.Kind)
	assert.Equal(t, 3, oc.Line)
}

func TestParse_OverlapAcrossCourses(t *testing.T) {
	input := "+AAA\n1,C1,P=50,H=L 8:00-10:00,F1,S=B101//\n" +
		"+BBB\n1,C1,P=30,H=L 9:00-11:00,F1,S=B101//\n"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 1)
	assert.Equal(t, "AAA", idx.Courses[0].Name)
	assert.Equal(t, 1, idx.Report.OverlapsRejected)
	// BBB lost its only slot and is discarded at end of input.
	assert.Equal(t, 1, idx.Report.MalformedLines)
}

func TestParse_BackToBackAccepted(t *testing.T) {
	input := "+AAA\n" +
		"1,C1,P=50,H=L 9:00-10:00,F1,S=B101//\n" +
		"1,C2,P=50,H=L 10:00-11:00,F1,S=B101//\n"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 1)
	assert.Len(t, idx.Courses[0].Slots, 2)
	assert.True(t, idx.Report.Clean())
}

func TestParse_ExemptRoomNeverConflicts(t *testing.T) {
	input := "+AAA\n" +
		"1,C1,P=50,H=L 9:00-12:00,F1,S=EXT1//\n" +
		"1,C2,P=50,H=L 10:00-11:00,F2,S=EXT1//\n" +
		"+BBB\n" +
		"1,C1,P=80,H=L 9:00-12:00,F1,S=EXT1//\n"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 2)
	assert.Len(t, idx.Slots, 3)
	assert.Equal(t, 0, idx.Report.OverlapsRejected)
	assert.Equal(t, []string{model.ExemptRoom}, idx.Rooms.Items())
}

func TestParse_InvalidHours(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"hour out of range", "1,C1,P=10,H=L 25:00-26:00,F1,S=A1//"},
		{"minutes out of range", "1,C1,P=10,H=L 8:75-9:00,F1,S=A1//"},
		{"end before start", "1,C1,P=10,H=L 10:00-9:00,F1,S=A1//"},
		{"end equals start", "1,C1,P=10,H=L 10:00-10:00,F1,S=A1//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, _ := parse(t, true, "+AAA\n"+tt.line+"\n1,C2,P=10,H=J 8:00-9:00,F1,S=A2//\n")

			require.Len(t, idx.Courses, 1)
			assert.Len(t, idx.Courses[0].Slots, 1)
			assert.Equal(t, 1, idx.Report.MalformedLines)
			assert.False(t, idx.Rooms.Has("A1"))
		})
	}
}

func TestParse_InvalidHoursWrapsTimeError(t *testing.T) {
	idx, _ := parse(t, true, "+AAA\n1,C1,P=10,H=L 24:00-25:00,F1,S=A1//\n")

	var ite *model.InvalidTimeError
	found := false
	for _, err := range idx.Issues {
		if errors.As(err, &ite) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_LinesOutsideCourseIgnored(t *testing.T) {
	input := "header text\n" +
		"1,C1,P=10,H=L 8:00-9:00,F1,S=A1//\n" +
		"+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=A2//\n"

	idx, _ := parse(t, true, input)

	require.Len(t, idx.Courses, 1)
	assert.Len(t, idx.Slots, 1)
	assert.Equal(t, []string{"A2"}, idx.Rooms.Items())
	assert.True(t, idx.Report.Clean())
}

func TestParse_DiagnosticsDoNotChangeData(t *testing.T) {
	input := "+LO02\n" +
		"1,C1,P=200,H=V 8:00-10:00,F1,S=N101//\n" +
		"1,C2,P=200,H=V 9:00-10:00,F1,S=N101//\n" +
		"garbage\n" +
		"1,C1,P=200,H=V 11:00-10:00,F1,S=N101//\n" +
		"+EMPTY\n"

	quiet, quietRec := parse(t, false, input)
	loud, loudRec := parse(t, true, input)

	assert.Equal(t, loud.Courses, quiet.Courses)
	assert.Equal(t, loud.Slots, quiet.Slots)
	assert.Equal(t, loud.Rooms.Items(), quiet.Rooms.Items())

	assert.Equal(t, Report{Sources: 1}, quiet.Report)
	assert.Empty(t, quiet.Issues)
	assert.Empty(t, quietRec.msgs)

	assert.Equal(t, Report{Sources: 1, MalformedLines: 3, OverlapsRejected: 1}, loud.Report)
	assert.Len(t, loudRec.msgs, 4)
}

func TestParse_MultipleSources(t *testing.T) {
	a := "+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=B103//\n"
	b := "+BBB\n1,C1,P=20,H=MA 8:00-9:00,F1,S=B103//\n"

	idx, _ := parse(t, true, a, b)

	require.Len(t, idx.Courses, 2)
	assert.Equal(t, "AAA", idx.Courses[0].Name)
	assert.Equal(t, "BBB", idx.Courses[1].Name)
	assert.Equal(t, 1, idx.Rooms.Len())
	assert.Equal(t, []string{"B103"}, idx.Rooms.Items())
	assert.Equal(t, 2, idx.Report.Sources)
}

func TestParse_CourseDoesNotSpanSources(t *testing.T) {
	a := "+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=B103//\n"
	b := "1,C2,P=10,H=L 10:00-11:00,F1,S=B103//\n"

	idx, _ := parse(t, true, a, b)

	require.Len(t, idx.Courses, 1)
	assert.Len(t, idx.Courses[0].Slots, 1)
}

func TestParse_OverlapAcrossSources(t *testing.T) {
	a := "+AAA\n1,C1,P=10,H=L 8:00-10:00,F1,S=B103//\n"
	b := "+BBB\n1,C1,P=20,H=L 9:00-10:00,F1,S=B103//\n1,C2,P=20,H=L 10:00-11:00,F1,S=B103//\n"

	idx, _ := parse(t, true, a, b)

	require.Len(t, idx.Courses, 2)
	assert.Len(t, idx.Courses[1].Slots, 1)
	assert.Equal(t, 1, idx.Report.OverlapsRejected)
}

func TestParser_Accumulates(t *testing.T) {
	text := "+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=B103//\n"
	p := NewParser(Options{Diagnostics: true})

	require.NoError(t, p.ParseString("a.cru", text))
	require.NoError(t, p.ParseString("a.cru", text))

	idx := p.Index()
	assert.Len(t, idx.Courses, 1)
	assert.Equal(t, 1, idx.Report.OverlapsRejected)
	assert.Equal(t, 1, idx.Report.MalformedLines)
	assert.Equal(t, 2, idx.Report.Sources)
}

func TestParser_Reset(t *testing.T) {
	text := "+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=B103//\n"
	p := NewParser(Options{Diagnostics: true})
	require.NoError(t, p.ParseString("a.cru", text))

	p.Reset()
	assert.Empty(t, p.Index().Courses)
	assert.Equal(t, 0, p.Index().Rooms.Len())

	require.NoError(t, p.ParseString("a.cru", text))
	assert.Len(t, p.Index().Courses, 1)
	assert.True(t, p.Index().Report.Clean())
}

func TestParser_ParseAll(t *testing.T) {
	p := NewParser(Options{})
	err := p.ParseAll(
		Source{Name: "a.cru", Text: "+AAA\n1,C1,P=10,H=L 8:00-9:00,F1,S=B1//\n"},
		Source{Name: "b.cru", Text: "+BBB\n1,C1,P=10,H=L 8:00-9:00,F1,S=B2//\n"},
	)
	require.NoError(t, err)
	assert.Len(t, p.Index().Courses, 2)
	assert.NotNil(t, p.Index().Course("BBB"))
	assert.Nil(t, p.Index().Course("CCC"))
}

func TestParser_ReadError(t *testing.T) {
	p := NewParser(Options{})
	err := p.Parse("broken.cru", iotest.ErrReader(errors.New("disk gone")))
	assert.ErrorContains(t, err, "broken.cru")
}

func TestParser_SkipFile(t *testing.T) {
	rec := &recorder{}
	p := NewParser(Options{Diagnostics: true, Logger: rec})
	p.SkipFile("notes.txt")
	assert.Equal(t, 1, p.Index().Report.InvalidFiles)
	require.Len(t, rec.msgs, 1)
	assert.True(t, strings.Contains(rec.msgs[0], "notes.txt"))

	quiet := NewParser(Options{})
	quiet.SkipFile("notes.txt")
	assert.Equal(t, 0, quiet.Index().Report.InvalidFiles)
}
