package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/query"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "occupation",
		Short: "Show weekly occupied hours per room",
		Run:   runOccupation,
	}

	RootCmd.AddCommand(cmd)
}

func runOccupation(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)
	hours := query.OccupiedHours(idx.Slots, idx.Rooms.Items())

	emit(cmd, hours, func(w io.Writer) {
		for _, h := range hours {
			fmt.Fprintf(w, "%-8s %6.2f\n", h.Room, h.Hours)
		}
	})
}
