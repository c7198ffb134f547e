package cli

import (
	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export selections as JSON",
		Long:  "Export selections as a JSON array. Filter by course with --course.",
		Run:   runExport,
	}

	cmd.Flags().String("course", "", "Filter by course")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	course, _ := cmd.Flags().GetString("course")

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	selections, err := s.ExportAll(cmd.Context(), course)
	if err != nil {
		exitErr("export", err)
	}
	if selections == nil {
		selections = []model.Selection{}
	}

	emit(cmd, selections, nil)
}
