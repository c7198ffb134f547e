package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/cru-schedule/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import selections from JSON",
		Long:  "Import selections from JSON on stdin. Expects the format produced by export. Duplicates are skipped.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var selections []model.Selection
	if err := json.Unmarshal(data, &selections); err != nil {
		exitErr("parse json", err)
	}

	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, skipped, err := s.Import(cmd.Context(), selections)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, skipped)
}
