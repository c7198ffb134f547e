package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rcliao/cru-schedule/internal/query"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Group rooms by their largest enrolment",
		Long:  "Group rooms by the largest P= seen in any of their slots, smallest capacity first.",
		Run:   runCapacity,
	}

	cmd.Flags().BoolP("save", "o", false, "Also write the result to <out>/sorted_rooms.json")

	RootCmd.AddCommand(cmd)
}

func runCapacity(cmd *cobra.Command, args []string) {
	save, _ := cmd.Flags().GetBool("save")

	cfg := loadConfig()
	idx, _ := loadSchedule(cfg, false)
	groups := query.RoomsByCapacity(idx.Slots)

	if save {
		if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
			exitErr("create out dir", err)
		}
		path := filepath.Join(cfg.Out, "sorted_rooms.json")
		b, _ := json.MarshalIndent(groups, "", "  ")
		if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
			exitErr("write", err)
		}
		newLogger(cfg, "cli").Infof("wrote %s", path)
	}

	emit(cmd, groups, func(w io.Writer) {
		for _, g := range groups {
			fmt.Fprintf(w, "%4d  %v\n", g.Capacity, g.Rooms)
		}
	})
}
