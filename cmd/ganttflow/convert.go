package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ganttflow/ganttflow/internal/model"
	"github.com/ganttflow/ganttflow/pkg/combine"
	"github.com/ganttflow/ganttflow/pkg/config"
	"github.com/ganttflow/ganttflow/pkg/parser"
	"github.com/ganttflow/ganttflow/pkg/render"
	"github.com/ganttflow/ganttflow/pkg/tui"
)

// settings is the merged result of defaults, profile, and flags.
type settings struct {
	Title     string
	Width     int
	Threshold time.Duration
	HTML      bool
	Timeline  bool
	Histogram bool
	LineGraph bool
	Synonyms  map[string][]string
}

// resolveSettings applies the profile under the flags: a flag set on
// the command line always wins over a profile value.
func resolveSettings(cmd *cobra.Command, inputPath string, log *tui.Logger) (settings, error) {
	// Title stays empty unless given explicitly so each renderer can
	// fall back to its own default.
	s := settings{
		Width:     widthFlag,
		Threshold: time.Duration(combineThreshold) * time.Second,
		HTML:      htmlFlag,
		Timeline:  !noTimeline,
		Histogram: !noHistogram,
		LineGraph: !noLineGraph,
	}
	if cmd.Flags().Changed("title") {
		s.Title = titleFlag
	}

	prof, err := config.Load(inputPath, profileName)
	if errors.Is(err, config.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	log.Debugf("applying profile %s", prof.Path)

	changed := cmd.Flags().Changed
	if prof.Title != "" && s.Title == "" {
		s.Title = prof.Title
	}
	if prof.Width != 0 && !changed("width") {
		s.Width = prof.Width
	}
	if prof.CombineThreshold != nil && !changed("combine-threshold") {
		s.Threshold = time.Duration(*prof.CombineThreshold) * time.Second
	}
	if prof.HTML && !changed("html") {
		s.HTML = true
	}
	if prof.Timeline != nil && !changed("no-timeline") {
		s.Timeline = *prof.Timeline
	}
	if prof.Histogram != nil && !changed("no-histogram") {
		s.Histogram = *prof.Histogram
	}
	if prof.LineGraph != nil && !changed("no-line-graph") {
		s.LineGraph = *prof.LineGraph
	}
	s.Synonyms = prof.Synonyms
	return s, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := tui.NewLogger(verbose)

	first := ""
	if len(args) > 0 {
		first = args[0]
	}
	s, err := resolveSettings(cmd, first, log)
	if err != nil {
		return err
	}

	if s.HTML {
		return convertHTML(args, s, log)
	}
	return convertMermaid(args, s, log)
}

// convertMermaid renders a single input as a Mermaid gantt block.
func convertMermaid(args []string, s settings, log *tui.Logger) error {
	if len(args) > 1 {
		log.Warnf("Mermaid output uses a single input; ignoring %d extra file(s)", len(args)-1)
	}

	var (
		tasks []model.Task
		kind  model.FormatKind
		err   error
	)
	if len(args) == 0 {
		log.Debugf("reading input from stdin")
		tasks, kind, err = parseStdin(s, log)
	} else {
		log.Debugf("reading input from file: %s", args[0])
		tasks, kind, err = parser.File(args[0], parser.Options{Synonyms: s.Synonyms, Log: log})
	}
	if err != nil {
		return err
	}

	log.Debugf("combining with threshold %s", s.Threshold)
	tasks = combine.Tasks(tasks, s.Threshold)

	out, err := render.Mermaid(tasks, kind, render.MermaidOptions{Title: s.Title, Width: s.Width})
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// convertHTML parses every input independently, concatenates the
// tagged task lists, combines once, and renders a single document.
func convertHTML(args []string, s settings, log *tui.Logger) error {
	if len(args) == 0 {
		tasks, _, err := parseStdin(s, log)
		if err != nil {
			return err
		}
		return renderHTML([]string{"stdin"}, combine.Tasks(tasks, s.Threshold), s)
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 && !verbose {
		bar = progressbar.Default(int64(len(args)), "parsing")
	}

	perFile := make([][]model.Task, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			tasks, _, err := parser.File(path, parser.Options{
				SourceFile: parser.DisplayName(path),
				Synonyms:   s.Synonyms,
				Log:        log,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			perFile[i] = tasks
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []model.Task
	names := make([]string, len(args))
	for i, path := range args {
		names[i] = parser.DisplayName(path)
		all = append(all, perFile[i]...)
	}

	return renderHTML(names, combine.Tasks(all, s.Threshold), s)
}

// renderHTML partitions the combined list back into per-source series
// for the file filter, preserving input order.
func renderHTML(names []string, tasks []model.Task, s settings) error {
	bySource := make(map[string][]model.Task, len(names))
	for _, t := range tasks {
		key := t.SourceFile
		if key == "" {
			key = names[0]
		}
		bySource[key] = append(bySource[key], t)
	}

	sources := make([]render.Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, render.Source{Name: name, Tasks: bySource[name]})
	}

	out, err := render.HTML(sources, render.HTMLOptions{
		Title:     s.Title,
		Timeline:  s.Timeline,
		Histogram: s.Histogram,
		LineGraph: s.LineGraph,
	})
	if err != nil {
		return err
	}
	return writeOutput(out)
}

func parseStdin(s settings, log *tui.Logger) ([]model.Task, model.FormatKind, error) {
	return parser.Tasks(os.Stdin, parser.Options{
		SourceFile: "stdin",
		Synonyms:   s.Synonyms,
		Log:        log,
	})
}
