package cli

import (
	"fmt"

	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/rcliao/cru-schedule/internal/query"
	"github.com/rcliao/cru-schedule/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [course] [kind] [day] [start]",
		Short: "Select a course slot for the personal calendar",
		Long: "Look up the slot of a course by kind, day and start time and store it as a selection, " +
			"e.g. `add LO02 D1 V 14:00`. Selections are turned into an iCalendar by `calendar`.",
		Args: cobra.ExactArgs(4),
		Run:  runAdd,
	}

	cmd.Flags().StringP("group", "g", "", "Group, when several groups share kind, day and start")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	group, _ := cmd.Flags().GetString("group")

	day, err := model.ParseDay(args[2])
	if err != nil {
		exitErr("add", err)
	}
	start, err := model.ParseTimeOfDay(args[3])
	if err != nil {
		exitErr("add", err)
	}

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)

	res, err := query.Search(idx.Courses, query.SearchParams{
		Course:     args[0],
		Kind:       args[1],
		Day:        day,
		StartAfter: &start,
		Group:      group,
	})
	if err != nil {
		exitErr("add", err)
	}
	var slot *model.TimeSlot
	for i, s := range res.Slots {
		if s.Start == start {
			slot = &res.Slots[i]
			break
		}
	}
	if slot == nil {
		exitErr("add", fmt.Errorf("no %s slot of %s on %s at %s", args[1], args[0], day.Name(), start))
	}

	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sel, err := s.Add(cmd.Context(), store.AddParams{Course: res.Course, Slot: *slot})
	if err != nil {
		exitErr("add", err)
	}

	emit(cmd, sel, nil)
}
