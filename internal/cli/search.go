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
		Use:   "search [course]",
		Short: "Filter the slots of one course",
		Long:  "Print the slots of a course matching every given filter. Times use H:MM.",
		Args:  cobra.ExactArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("kind", "t", "", "Slot kind, e.g. C1, D2, T1")
	cmd.Flags().IntP("capacity", "p", 0, "Exact enrolment (P=)")
	cmd.Flags().StringP("day", "w", "", "Day code: L, MA, ME, J, V, S, D")
	cmd.Flags().StringP("start", "s", "", "Keep slots starting at or after this time")
	cmd.Flags().StringP("end", "e", "", "Keep slots ending at or before this time")
	cmd.Flags().StringP("group", "g", "", "Group, e.g. F1")
	cmd.Flags().StringP("room", "r", "", "Room, e.g. B103")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	p := query.SearchParams{Course: args[0]}
	p.Kind, _ = cmd.Flags().GetString("kind")
	p.Group, _ = cmd.Flags().GetString("group")
	p.Room, _ = cmd.Flags().GetString("room")

	if cmd.Flags().Changed("capacity") {
		c, _ := cmd.Flags().GetInt("capacity")
		p.Capacity = &c
	}
	if day, _ := cmd.Flags().GetString("day"); day != "" {
		d, err := model.ParseDay(day)
		if err != nil {
			exitErr("search", err)
		}
		p.Day = d
	}
	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := model.ParseTimeOfDay(start)
		if err != nil {
			exitErr("search", err)
		}
		p.StartAfter = &t
	}
	if end, _ := cmd.Flags().GetString("end"); end != "" {
		t, err := model.ParseTimeOfDay(end)
		if err != nil {
			exitErr("search", err)
		}
		p.EndBefore = &t
	}

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)

	res, err := query.Search(idx.Courses, p)
	if err != nil {
		exitErr("search", err)
	}

	emit(cmd, res, func(w io.Writer) {
		fmt.Fprintf(w, "+%s\n", res.Course)
		for _, s := range res.Slots {
			fmt.Fprintf(w, "  %s\n", s)
		}
	})
}
