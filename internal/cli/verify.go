package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rcliao/cru-schedule/internal/cru"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check .cru files and report dropped lines",
		Long: "Parse all .cru files with diagnostics on. Every malformed line, empty course, " +
			"rejected overlap and non-.cru file is logged and counted.",
		Run: runVerify,
	}

	cmd.Flags().Bool("strict", false, "Exit with status 2 when anything was dropped")

	RootCmd.AddCommand(cmd)
}

type verifyResult struct {
	Dir     string     `json:"dir"`
	Files   []string   `json:"files"`
	Skipped []string   `json:"skipped"`
	Courses int        `json:"courses"`
	Rooms   int        `json:"rooms"`
	Slots   int        `json:"slots"`
	Report  cru.Report `json:"report"`
	Issues  []string   `json:"issues"`
	Clean   bool       `json:"clean"`
}

func runVerify(cmd *cobra.Command, args []string) {
	strict, _ := cmd.Flags().GetBool("strict")

	cfg := loadConfig()
	idx, res := loadSchedule(cfg, true)

	out := verifyResult{
		Dir:     cfg.Dir,
		Files:   res.Files,
		Skipped: res.Skipped,
		Courses: len(idx.Courses),
		Rooms:   idx.Rooms.Len(),
		Slots:   len(idx.Slots),
		Report:  idx.Report,
		Issues:  []string{},
		Clean:   idx.Report.Clean(),
	}
	for _, issue := range idx.Issues {
		out.Issues = append(out.Issues, issue.Error())
	}

	emit(cmd, out, func(w io.Writer) {
		fmt.Fprintf(w, "sources:           %d\n", out.Report.Sources)
		fmt.Fprintf(w, "courses:           %d\n", out.Courses)
		fmt.Fprintf(w, "slots:             %d\n", out.Slots)
		fmt.Fprintf(w, "rooms:             %d\n", out.Rooms)
		fmt.Fprintf(w, "malformed lines:   %d\n", out.Report.MalformedLines)
		fmt.Fprintf(w, "invalid files:     %d\n", out.Report.InvalidFiles)
		fmt.Fprintf(w, "overlaps rejected: %d\n", out.Report.OverlapsRejected)
	})

	if strict && !out.Clean {
		os.Exit(2)
	}
}
