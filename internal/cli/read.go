package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "List every course and its slots",
		Long:  "Parse all .cru files under --dir and print the accepted courses in source order.",
		Run:   runRead,
	}

	cmd.Flags().Bool("rooms", false, "Only list known rooms")

	RootCmd.AddCommand(cmd)
}

func runRead(cmd *cobra.Command, args []string) {
	roomsOnly, _ := cmd.Flags().GetBool("rooms")

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)

	if roomsOnly {
		rooms := idx.Rooms.Items()
		emit(cmd, rooms, func(w io.Writer) {
			for _, r := range rooms {
				fmt.Fprintln(w, r)
			}
		})
		return
	}

	courses := idx.Courses
	if courses == nil {
		courses = []*model.Course{}
	}
	emit(cmd, courses, func(w io.Writer) {
		for _, c := range courses {
			fmt.Fprintf(w, "+%s\n", c.Name)
			for _, s := range c.Slots {
				fmt.Fprintf(w, "  %s\n", s)
			}
		}
	})
}
