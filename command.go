package spc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BTBurke/spc/pkg/input"
	"github.com/BTBurke/spc/pkg/stat"
)

// Renderer draws analyzed sessions, in order, as an image
type Renderer interface {
	Render(w io.Writer, title string, sessions []*Session) error
}

// Loader reads a measurement series from a file, selecting the named columns
type Loader func(path string, columns []string) (stat.Data, error)

// Command is one analysis run: load the input, build the sessions, write the report and
// optionally render the chart
type Command struct {
	Config   *Config
	Sessions []*Session
	Report   *Report

	log      *slog.Logger
	load     Loader
	renderer Renderer
	reporter Reporter
	out      io.Writer
}

// NewCommand validates the configuration and prepares a run that reports to stdout.  A renderer
// must be set with SetRenderer before a PNG can be written.
func NewCommand(options ...ConfigOption) (*Command, []error) {
	cfg, errs := NewConfig(options...)
	if len(errs) > 0 {
		return nil, errs
	}
	reporter, err := NewReporter(cfg.Format)
	if err != nil {
		return nil, []error{err}
	}
	return &Command{
		Config:   cfg,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		load:     input.Load,
		reporter: reporter,
		out:      os.Stdout,
	}, nil
}

func (c *Command) SetLogger(l *slog.Logger) {
	c.log = l
}

func (c *Command) SetRenderer(r Renderer) {
	c.renderer = r
}

func (c *Command) SetLoader(l Loader) {
	c.load = l
}

// SetOutput redirects the report
func (c *Command) SetOutput(w io.Writer) {
	c.out = w
}

// Exec runs the analysis and writes the report, then the PNG if one was requested
func (c *Command) Exec() error {
	if c.Config.PNG != "" && c.renderer == nil {
		return ErrNoRenderer
	}

	data, err := c.load(c.Config.Input, c.Config.Columns)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.Config.Input, err)
	}
	c.log.Debug("loaded input", "path", c.Config.Input, "len", data.Len(), "grouped", data.IsGrouped())

	opts := c.Config.sessionOptions()
	if c.Config.Extra != "" {
		extra, err := c.load(c.Config.Extra, c.Config.Columns)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", c.Config.Extra, err)
		}
		c.log.Debug("loaded extra data", "path", c.Config.Extra, "len", extra.Len())
		opts = append(opts, WithExtraData(extra))
	}

	var boundaries []int
	switch {
	case len(c.Config.Changepoints) > 0:
		boundaries = c.Config.Changepoints
		c.Sessions, err = Segment(data, c.Config.Chart, boundaries, opts...)
	default:
		var s *Session
		s, err = New(data, c.Config.Chart, opts...)
		c.Sessions = []*Session{s}
	}
	if err != nil {
		c.Sessions = nil
		return err
	}

	c.Report, err = NewReport(c.Config.Title, c.Sessions, boundaries)
	if err != nil {
		return err
	}
	c.log.Info("analysis complete",
		"chart", c.Config.Chart.Slug(),
		"segments", len(c.Sessions),
		"rules", c.Config.Rules.String(),
		"violations", c.Report.Violations())

	if err := c.reporter.Write(c.out, c.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if c.Config.PNG != "" {
		return c.render()
	}
	return nil
}

func (c *Command) render() error {
	f, err := os.Create(c.Config.PNG)
	if err != nil {
		return err
	}
	if err := c.renderer.Render(f, c.Config.Title, c.Sessions); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", c.Config.PNG, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.log.Info("chart written", "path", c.Config.PNG)
	return nil
}
