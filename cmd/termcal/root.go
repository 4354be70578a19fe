package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"termcal/internal/calendar"
	"termcal/internal/config"
	"termcal/internal/ics"
	appLog "termcal/internal/log"
	"termcal/internal/render"
	"termcal/internal/theme"
)

// options holds CLI flag values. Flags override the config file and the
// environment.
type options struct {
	configPath string
	debug      bool

	one       bool
	three     bool
	months    int
	monthsSet bool
	year      bool

	sunday bool
	monday bool
	julian bool

	theme          string
	themeStyleType string

	showCalendar bool
	showAgenda   bool
	showProgress bool
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "termcal [year [month [day]]]",
		Short:         "Display a calendar",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				appLog.SetLevel(appLog.LevelDebug)
			} else {
				appLog.SetLevel(appLog.LevelInfo)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.monthsSet = cmd.Flags().Changed("months")
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args, calendar.Today())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to config file")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	f := rootCmd.Flags()
	f.BoolVarP(&opts.one, "one", "1", false, "show only current month (default)")
	f.BoolVarP(&opts.three, "three", "3", false, "show previous, current and next month")
	f.IntVarP(&opts.months, "months", "n", 0, "show current and following months, in total `NUMBER` months")
	f.BoolVarP(&opts.year, "year", "y", false, "show whole current year")
	f.BoolVarP(&opts.sunday, "sunday", "s", false, "Sunday as first day of week")
	f.BoolVarP(&opts.monday, "monday", "m", false, "Monday as first day of week")
	f.BoolVarP(&opts.julian, "julian", "j", false, "output Julian dates")
	f.StringVar(&opts.theme, "theme", "", "select theme by name")
	f.StringVar(&opts.themeStyleType, "themestyletype", "", "select dark or light theme styles")
	f.BoolVarP(&opts.showCalendar, "calendar", "c", false, "show calendar (default)")
	f.BoolVarP(&opts.showAgenda, "agenda", "a", false, "show agenda")
	f.BoolVar(&opts.showProgress, "year-progress", false, "show year progress")

	rootCmd.MarkFlagsMutuallyExclusive("one", "three", "months", "year")
	rootCmd.MarkFlagsMutuallyExclusive("sunday", "monday")

	rootCmd.AddCommand(newInitCmd(opts))

	return rootCmd
}

func (o *options) span() (calendar.Span, error) {
	switch {
	case o.three:
		return calendar.Span{Kind: calendar.SpanThree}, nil
	case o.year:
		return calendar.Span{Kind: calendar.SpanYear}, nil
	case o.monthsSet:
		if o.months < 1 {
			return calendar.Span{}, fmt.Errorf("invalid value for --months: %d (use 1 or more)", o.months)
		}
		return calendar.Span{Kind: calendar.SpanMonths, Months: o.months}, nil
	default:
		return calendar.Span{Kind: calendar.SpanOne}, nil
	}
}

// applyFlags layers CLI overrides on top of the loaded config.
func (o *options) applyFlags(cfg *config.Config) error {
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.themeStyleType != "" {
		v := strings.ToLower(o.themeStyleType)
		if v != "dark" && v != "light" {
			return fmt.Errorf("invalid value for --themestyletype: %q (use dark or light)", o.themeStyleType)
		}
		cfg.ThemeStyleType = v
	}
	if o.sunday {
		cfg.WeekStart = "sunday"
	}
	if o.monday {
		cfg.WeekStart = "monday"
	}
	cfg.Normalize()
	return nil
}

func run(ctx context.Context, out io.Writer, opts *options, args []string, today civil.Date) error {
	ref, err := calendar.ParseReferenceDate(args, today)
	switch {
	case errors.Is(err, calendar.ErrAmbiguousDate):
		appLog.Info("could not parse date, showing today", "args", strings.Join(args, " "))
	case err != nil:
		return err
	}

	span, err := opts.span()
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := opts.applyFlags(cfg); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		appLog.Error("invalid timezone, using local time", err)
	}

	begin, end := span.Range(ref)
	appLog.Debug("effective config",
		"reference", ref.String(),
		"begin", begin.String(),
		"end", end.String(),
		"theme", cfg.Theme,
		"theme_style_type", cfg.ThemeStyleType,
		"week_start", cfg.WeekConvention(),
		"ics_count", len(cfg.ICS),
	)

	events := ics.LoadEvents(ctx, ics.NewFetcher(), cfg.Sources(), loc)
	occurrences, err := ics.ExpandOccurrences(events, ics.ExpandConfig{Location: loc, Begin: begin, End: end})
	if err != nil {
		return err
	}

	th := theme.Load(cfg.Theme, cfg.ThemeDir)
	res := theme.NewResolver(th, ref, cfg.Variant(), occurrences)

	r := render.NewRenderer(lipgloss.NewRenderer(out), render.Options{
		Convention: cfg.WeekConvention(),
		Julian:     opts.julian,
		YearView:   span.Kind == calendar.SpanYear,
	})

	showCalendar := opts.showCalendar || (!opts.showAgenda && !opts.showProgress)
	if showCalendar {
		months := calendar.Generate(begin, end, cfg.WeekConvention())
		if _, err := io.WriteString(out, r.Calendar(render.BuildCalendar(months, span.Columns(), res))); err != nil {
			return err
		}
	}
	if opts.showAgenda {
		if _, err := io.WriteString(out, r.Agenda(occurrences, res)); err != nil {
			return err
		}
	}
	if opts.showProgress {
		if _, err := io.WriteString(out, r.YearProgress(ref)); err != nil {
			return err
		}
	}
	return nil
}
