package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/query"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "room [name]",
		Short: "Show the weekly bookings of one room",
		Long:  "Print every booking of a room as chart-ready data: day, fractional start and end hour, students.",
		Args:  cobra.ExactArgs(1),
		Run:   runRoom,
	}

	RootCmd.AddCommand(cmd)
}

func runRoom(cmd *cobra.Command, args []string) {
	room := args[0]

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)
	if !idx.Rooms.Has(room) {
		exitErr("room", fmt.Errorf("unknown room %q", room))
	}

	bookings := query.RoomWeek(idx.Courses, room)
	emit(cmd, bookings, func(w io.Writer) {
		for _, b := range bookings {
			fmt.Fprintf(w, "%-10s %-6s %5.2f-%5.2f  %d students\n", b.Day, b.Course, b.Start, b.End, b.Students)
		}
	})
}
