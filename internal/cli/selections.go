package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/rcliao/cru-schedule/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "selections",
		Short: "List selected slots",
		Run:   runSelections,
	}

	cmd.Flags().String("course", "", "Filter by course")
	cmd.Flags().StringP("day", "w", "", "Filter by day code")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runSelections(cmd *cobra.Command, args []string) {
	course, _ := cmd.Flags().GetString("course")
	dayStr, _ := cmd.Flags().GetString("day")
	limit, _ := cmd.Flags().GetInt("limit")

	var day model.Day
	if dayStr != "" {
		d, err := model.ParseDay(dayStr)
		if err != nil {
			exitErr("selections", err)
		}
		day = d
	}

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	selections, err := s.List(cmd.Context(), store.ListParams{Course: course, Day: day, Limit: limit})
	if err != nil {
		exitErr("list", err)
	}
	if selections == nil {
		selections = []model.Selection{}
	}

	emit(cmd, selections, func(w io.Writer) {
		for _, sel := range selections {
			fmt.Fprintf(w, "%s  %s %s\n", sel.ID, sel.Course, sel.Slot)
		}
	})
}
