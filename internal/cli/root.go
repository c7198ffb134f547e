// Package cli implements the cru-schedule CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rcliao/cru-schedule/internal/config"
	"github.com/rcliao/cru-schedule/internal/cru"
	"github.com/rcliao/cru-schedule/internal/logger"
	"github.com/rcliao/cru-schedule/internal/source"
	"github.com/rcliao/cru-schedule/internal/store"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	dirPath    string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "cru-schedule",
	Short: "Query CRU course schedules",
	Long: "Parse directories of .cru schedule files, search courses, find free rooms " +
		"and build a personal iCalendar from selected slots.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (yaml or json)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Selection database path (default: config db or ~/.cru-schedule/selections.db)")
	RootCmd.PersistentFlags().StringVar(&dirPath, "dir", "", "Directory holding .cru files (default: config dir)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}
	if dirPath != "" {
		cfg.Dir = dirPath
	}
	return cfg
}

func newLogger(cfg *config.Config, component string) logger.Logger {
	l, err := logger.New(component, logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		exitErr("create logger", err)
	}
	return l
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DB)
}

// loadSchedule parses every .cru file under the configured directory.
func loadSchedule(cfg *config.Config, diagnostics bool) (*cru.Index, *source.Result) {
	log := newLogger(cfg, "parser")
	p := cru.NewParser(cru.Options{Diagnostics: diagnostics, Logger: parserSink(log, diagnostics)})
	res, err := source.Load(p, cfg.Dir)
	if err != nil {
		exitErr("load schedule", err)
	}
	log.Debugf("parsed %d files from %s: %d courses, %d rooms",
		len(res.Files), cfg.Dir, len(p.Index().Courses), p.Index().Rooms.Len())
	return p.Index(), res
}

// parserSink returns log when diagnostics are on and a no-op logger otherwise.
func parserSink(log logger.Logger, diagnostics bool) logger.Logger {
	if !diagnostics {
		return logger.NopLogger{}
	}
	return log
}

func textOutput() bool {
	return formatFlag == "text"
}

// emit writes v as indented JSON, or calls text when --format text is set
// and a text renderer exists.
func emit(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	if textOutput() && text != nil {
		text(w)
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
