package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/cru-schedule/internal/calendar"
	"github.com/rcliao/cru-schedule/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Write selected slots as an iCalendar file",
		Long: "Render every selection as a weekly recurring event starting the week of calendar.term_start, " +
			"write it to <out>/calendar.ics and clear the selections. Use --output - for stdout.",
		Run: runCalendar,
	}

	cmd.Flags().StringP("output", "o", "", "Output path (default: <out>/calendar.ics)")
	cmd.Flags().Int("weeks", 0, "Number of weekly occurrences (0 = open-ended)")
	cmd.Flags().Bool("keep", false, "Keep selections after writing")

	RootCmd.AddCommand(cmd)
}

func runCalendar(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")
	weeks, _ := cmd.Flags().GetInt("weeks")
	keep, _ := cmd.Flags().GetBool("keep")

	cfg := loadConfig()
	termStart, err := cfg.Calendar.Start()
	if err != nil {
		exitErr("config", err)
	}

	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	selections, err := s.List(cmd.Context(), store.ListParams{})
	if err != nil {
		exitErr("list selections", err)
	}
	if len(selections) == 0 {
		exitErr("calendar", fmt.Errorf("no selections, use `add` first"))
	}

	var buf bytes.Buffer
	if err := calendar.Write(&buf, selections, calendar.Options{TermStart: termStart, Weeks: weeks}); err != nil {
		exitErr("render calendar", err)
	}

	if output == "-" {
		cmd.OutOrStdout().Write(buf.Bytes())
	} else {
		if output == "" {
			output = filepath.Join(cfg.Out, "calendar.ics")
		}
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			exitErr("create out dir", err)
		}
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			exitErr("write calendar", err)
		}
	}

	cleared := 0
	if !keep {
		if cleared, err = s.Clear(cmd.Context()); err != nil {
			exitErr("clear selections", err)
		}
	}

	log := newLogger(cfg, "cli")
	log.Infof("wrote %d events to %s, cleared %d selections", len(selections), output, cleared)
	if output != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q,"events":%d,"cleared":%d}`+"\n", output, len(selections), cleared)
	}
}
