package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ganttflow/ganttflow/pkg/logproc"
	"github.com/ganttflow/ganttflow/pkg/tui"
	"github.com/ganttflow/ganttflow/pkg/util"
)

// runLogCSV converts a connection log to standard task CSV, which can
// then be fed back through the normal conversion path.
func runLogCSV(cmd *cobra.Command, args []string) error {
	log := tui.NewLogger(verbose)

	var content []byte
	if len(args) == 0 {
		log.Debugf("reading log from stdin")
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = data
	} else {
		log.Debugf("reading log from file: %s", args[0])
		r, cleanup, err := util.OpenFile(args[0])
		if err != nil {
			return err
		}
		data, err := io.ReadAll(r)
		cleanup()
		if err != nil {
			return err
		}
		content = data
	}

	out, err := logproc.Convert(string(content), log)
	if err != nil {
		return err
	}
	return writeOutput(out)
}
