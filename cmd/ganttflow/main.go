// ganttflow converts tabular event/task records (CSV, XLSX) into
// Mermaid Gantt diagrams or interactive time-synced HTML visualizations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ganttflow/ganttflow/pkg/config"
	"github.com/ganttflow/ganttflow/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	outputFile       string
	titleFlag        string
	widthFlag        int
	combineThreshold int
	verbose          bool
	profileName      string

	htmlFlag    bool
	noTimeline  bool
	noHistogram bool
	noLineGraph bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ganttflow [input-file...]",
	Short: "Convert CSV event logs and task lists to Gantt charts",
	Long: `ganttflow converts CSV (or XLSX) event/task records to Mermaid Gantt
charts or interactive time-synced HTML visualizations.

Reads from stdin when no input file is given. Multiple input files can
be combined into one HTML output.

Supported inputs:
  Name,start_timestamp,end_timestamp        (digital forensics logs)
  task_name,start_date,duration,status      (legacy task lists)
  task_name,start_date,end_date,status`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	RunE:          runConvert,
}

var watchCmd = &cobra.Command{
	Use:   "watch [input-file...]",
	Short: "Re-render the output whenever an input file changes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

var logcsvCmd = &cobra.Command{
	Use:   "logcsv [input-file]",
	Short: "Convert a network connection log to standard task CSV",
	Long: `logcsv matches Added/Removed connection events
(Date,Time,Action,Process,Protocol,LocalAddr,RemoteAddr) into intervals
and emits Name,start_timestamp,end_timestamp rows ready for conversion.
Columns are auto-detected when the log has no header row.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogCSV,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved conversion profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := config.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), tui.MutedStyle.Render("no saved profiles"))
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	pf.StringVarP(&titleFlag, "title", "t", "", "title for the chart (default \"Gantt Chart\")")
	pf.IntVarP(&widthFlag, "width", "w", 0, "diagram width in pixels (100-10000)")
	pf.IntVarP(&combineThreshold, "combine-threshold", "c", 60,
		"threshold in seconds for combining same-name tasks (0 disables)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&profileName, "profile", "", "named global profile to apply")

	pf.BoolVar(&htmlFlag, "html", false, "generate interactive HTML instead of Mermaid")
	pf.BoolVar(&noTimeline, "no-timeline", false, "disable timeline chart in HTML output")
	pf.BoolVar(&noHistogram, "no-histogram", false, "disable histogram in HTML output")
	pf.BoolVar(&noLineGraph, "no-line-graph", false, "disable line graph in HTML output")

	rootCmd.AddCommand(watchCmd, logcsvCmd, profilesCmd)
}

// writeOutput writes the rendered text to -o or stdout. Output is
// written in one step so a failed conversion never leaves a partial
// artifact behind.
func writeOutput(content string) error {
	if outputFile == "" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(outputFile, []byte(content), 0o644)
}
