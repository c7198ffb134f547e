package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/rcliao/cru-schedule/internal/query"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rooms [day] [start] [end]",
		Short: "List rooms free during a time window",
		Long:  "List every known room with no committed slot colliding with the window, e.g. `rooms V 10:00 12:00`.",
		Args:  cobra.ExactArgs(3),
		Run:   runRooms,
	}

	RootCmd.AddCommand(cmd)
}

func parseWindow(day, start, end string) (query.Window, error) {
	d, err := model.ParseDay(day)
	if err != nil {
		return query.Window{}, err
	}
	s, err := model.ParseTimeOfDay(start)
	if err != nil {
		return query.Window{}, err
	}
	e, err := model.ParseTimeOfDay(end)
	if err != nil {
		return query.Window{}, err
	}
	w := query.Window{Day: d, Start: s, End: e}
	return w, w.Validate()
}

func runRooms(cmd *cobra.Command, args []string) {
	w, err := parseWindow(args[0], args[1], args[2])
	if err != nil {
		exitErr("window", err)
	}

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)

	res, err := query.AvailableRooms(idx.Slots, idx.Rooms.Items(), w)
	if err != nil {
		exitErr("rooms", err)
	}

	emit(cmd, res, func(out io.Writer) {
		fmt.Fprintf(out, "%d of %d rooms free on %s from %s to %s\n",
			len(res.Available), res.Total, w.Day.Name(), w.Start, w.End)
		for _, r := range res.Available {
			fmt.Fprintf(out, "  %s\n", r)
		}
	})
}
