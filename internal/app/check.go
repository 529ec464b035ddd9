package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/keypad/internal/grid"
	"github.com/dshills/keypad/internal/layout"
	"github.com/dshills/keypad/internal/watch"
)

type reportStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
}

// newReportStyles styles for w; colours are dropped when w is not a
// terminal.
func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		title: r.NewStyle().Bold(true).Underline(true),
		label: r.NewStyle().Width(10),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Check loads, builds, validates and analyzes the configured layout without
// starting a renderer, and writes a report to w. The returned error is the
// first failing stage, or nil when the layout is usable. Warnings alone do
// not fail the check.
func (app *Application) Check(w io.Writer) error {
	st := newReportStyles(w)
	ref := app.opts.Config.Layout

	var b strings.Builder
	fmt.Fprintln(&b, st.title.Render("Layout "+ref))

	f, table, err := app.load()
	if err != nil {
		fmt.Fprintf(&b, "%s %s\n", st.label.Render("status"), st.fail.Render("invalid"))
		for _, p := range problems(err) {
			fmt.Fprintf(&b, "  %s %s\n", st.fail.Render("error"), p)
		}
		_, werr := io.WriteString(w, b.String())
		return errors.Join(err, werr)
	}

	spec := f.Spec()
	fmt.Fprintf(&b, "%s %s\n", st.label.Render("source"), f.Source)
	fmt.Fprintf(&b, "%s %s\n", st.label.Render("grid"), describeSpec(spec))
	fmt.Fprintf(&b, "%s %d\n", st.label.Render("keys"), table.Len())

	report := grid.Analyze(spec, table)
	if report.Clean() {
		fmt.Fprintf(&b, "%s %s\n", st.label.Render("status"), st.ok.Render("ok"))
	} else {
		fmt.Fprintf(&b, "%s %s\n", st.label.Render("status"), st.warn.Render("ok with warnings"))
	}
	for _, o := range report.Overlaps {
		fmt.Fprintf(&b, "  %s %s and %s share %s\n", st.warn.Render("overlap"), o.First, o.Second, o.Shared)
	}
	if report.Uncovered > 0 {
		fmt.Fprintf(&b, "  %s %d of %d grid cells have no key\n", st.warn.Render("gap"), report.Uncovered, report.Total)
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// Watch runs Check, then runs it again every time the layout file is
// written, until ctx is done. Builtin layouts cannot be watched.
func (app *Application) Watch(ctx context.Context, w io.Writer) error {
	ref := app.opts.Config.Layout
	if layout.IsBuiltin(ref) {
		return fmt.Errorf("%w: %s", ErrBuiltinLayout, ref)
	}

	watcher, err := watch.New(ref, watch.WithLogger(app.log))
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := app.Check(w); err != nil && !errors.Is(err, grid.ErrConfig) {
		return err
	}

	err = watcher.Run(ctx, func() {
		fmt.Fprintln(w)
		if err := app.Check(w); err != nil && !errors.Is(err, grid.ErrConfig) {
			app.log.Error().Err(err).Msg("check failed")
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Print writes an ASCII diagram of the configured layout to w.
func (app *Application) Print(w io.Writer) error {
	f, table, err := app.load()
	if err != nil {
		return err
	}
	spec := f.Spec()
	_, err = fmt.Fprintf(w, "%s: %s, %d keys\n%s", f.Source, describeSpec(spec), table.Len(),
		layout.Diagram(table, spec, layout.DefaultDiagramOptions(spec)))
	return err
}

// ListBuiltins writes the builtin layout names with their sizes to w.
func ListBuiltins(w io.Writer) error {
	for _, name := range layout.BuiltinNames() {
		f, err := layout.Builtin(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-8s %2d keys  %s\n", name, len(f.Keys), describeSpec(f.Spec())); err != nil {
			return err
		}
	}
	return nil
}

func describeSpec(s grid.Spec) string {
	out := fmt.Sprintf("%d x %d", s.Denominator, s.Denominator)
	if s.Columns > 0 || s.Rows > 0 {
		out += fmt.Sprintf(" (%d columns, %d rows)", s.Columns, s.Rows)
	}
	return out
}

// problems flattens err into one line per problem.
func problems(err error) []string {
	var verr *grid.ValidationError
	if errors.As(err, &verr) {
		out := make([]string, len(verr.Violations))
		for i, v := range verr.Violations {
			out[i] = v.String()
		}
		return out
	}

	var perr *layout.ParseError
	if errors.As(err, &perr) && len(perr.Problems) > 0 {
		return perr.Problems
	}

	if stage, ok := err.(*StageError); ok {
		err = stage.Err
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, problems(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
