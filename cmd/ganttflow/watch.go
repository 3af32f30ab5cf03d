package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ganttflow/ganttflow/pkg/tui"
	"github.com/ganttflow/ganttflow/pkg/watch"
)

// runWatch renders once, then re-renders whenever an input changes.
// Stops on SIGINT/SIGTERM.
func runWatch(cmd *cobra.Command, args []string) error {
	if outputFile == "" {
		return errors.New("watch requires -o/--output")
	}
	log := tui.NewLogger(verbose)

	rerender := func() error {
		if err := runConvert(cmd, args); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.SuccessStyle.Render("✓ ")+"wrote "+outputFile)
		return nil
	}

	if err := rerender(); err != nil {
		return err
	}

	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range args {
		if err := w.Watch(path); err != nil {
			return err
		}
	}

	w.OnChange = func(path string) error {
		log.Debugf("change detected: %s", path)
		return rerender()
	}
	w.OnError = func(path string, err error) {
		log.Errorf("%s: %v", path, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), tui.MutedStyle.Render("watching for changes, ctrl-c to stop"))
	if err := w.Run(ctx); errors.Is(err, context.Canceled) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}
