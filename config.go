package spc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
)

// Config describes one analysis run
type Config struct {
	Chart        stat.Chart
	Rules        rule.Set
	SubgroupSize int
	Target       stat.Optional
	Center       stat.Optional
	Lower        stat.Optional
	Upper        stat.Optional
	Changepoints []int
	Input        string
	Columns      []string
	Extra        string
	Format       string
	PNG          string
	Title        string
	Verbose      bool
}

type ConfigOption func(c *Config) error

// NewConfig applies the options over the defaults and validates the result.  All option and
// validation errors are returned together.
func NewConfig(options ...ConfigOption) (*Config, []error) {
	c := &Config{
		Format: "logfmt",
	}

	var errors []error
	for _, option := range options {
		if err := option(c); err != nil {
			errors = append(errors, err)
		}
	}
	if len(c.Rules) == 0 {
		c.Rules = rule.Basic()
	}
	if !c.Chart.Valid() {
		errors = append(errors, fmt.Errorf("chart type is required, use --chart with one of: %s", chartSlugs()))
	}
	if c.Input == "" {
		errors = append(errors, fmt.Errorf("no input file, use --input or pass the file as an argument"))
	}
	if (c.Lower.Valid() || c.Upper.Valid()) && !c.Center.Valid() {
		errors = append(errors, fmt.Errorf("custom limits require a center line, use --center"))
	}
	if len(c.Changepoints) > 0 && c.Extra != "" {
		errors = append(errors, ErrExtraDataSegmented)
	}
	if c.Title == "" && c.Chart.Valid() {
		c.Title = c.Chart.String()
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return c, nil
}

// CustomLimits reports whether the run overrides the calculated limits
func (c *Config) CustomLimits() bool {
	return c.Center.Valid()
}

// sessionOptions translates the run configuration into session options
func (c *Config) sessionOptions() []Option {
	opts := []Option{WithRules(c.Rules)}
	if c.SubgroupSize > 0 {
		opts = append(opts, WithSubgroupSize(c.SubgroupSize))
	}
	if t, ok := c.Target.Get(); ok {
		opts = append(opts, WithTarget(t))
	}
	if c.CustomLimits() {
		opts = append(opts, WithLimits(stat.Limits{Center: c.Center, Lower: c.Lower, Upper: c.Upper}))
	}
	return opts
}

func chartSlugs() string {
	var s []string
	for _, c := range stat.Charts() {
		s = append(s, c.Slug())
	}
	return strings.Join(s, ", ")
}

func Chart(name string) ConfigOption {
	return func(c *Config) error {
		chart, err := stat.ParseChart(name)
		if err != nil {
			return err
		}
		c.Chart = chart
		return nil
	}
}

// Rules adds a preset (basic, pmi, weco, nelson, all) or a comma separated list of rules
func Rules(rules string) ConfigOption {
	return func(c *Config) error {
		set, err := rule.ParseSet(rules)
		if err != nil {
			return err
		}
		c.Rules = c.Rules.Union(set)
		return nil
	}
}

func SubgroupSize(n string) ConfigOption {
	return func(c *Config) error {
		size, err := strconv.Atoi(n)
		if err != nil || size < 1 {
			return fmt.Errorf("could not convert subgroup-size to a positive integer: %s", n)
		}
		c.SubgroupSize = size
		return nil
	}
}

func parseOptional(name string, value string, dst *stat.Optional) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("could not convert %s to a number: %s", name, value)
	}
	*dst = stat.Some(v)
	return nil
}

// Target sets the CUSUM target
func Target(t string) ConfigOption {
	return func(c *Config) error {
		return parseOptional("target", t, &c.Target)
	}
}

func Center(v string) ConfigOption {
	return func(c *Config) error {
		return parseOptional("center", v, &c.Center)
	}
}

func Lower(v string) ConfigOption {
	return func(c *Config) error {
		return parseOptional("lower", v, &c.Lower)
	}
}

func Upper(v string) ConfigOption {
	return func(c *Config) error {
		return parseOptional("upper", v, &c.Upper)
	}
}

// Changepoints adds a comma separated list of segment end indices
func Changepoints(points string) ConfigOption {
	return func(c *Config) error {
		for _, p := range strings.Split(points, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			i, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("could not convert changepoint to integer: %s", p)
			}
			c.Changepoints = append(c.Changepoints, i)
		}
		return nil
	}
}

func Input(path string) ConfigOption {
	return func(c *Config) error {
		c.Input = path
		return nil
	}
}

// Columns adds a comma separated list of input columns.  More than one column reads each row as
// a subgroup.
func Columns(columns string) ConfigOption {
	return func(c *Config) error {
		for _, col := range strings.Split(columns, ",") {
			if col = strings.TrimSpace(col); col != "" {
				c.Columns = append(c.Columns, col)
			}
		}
		return nil
	}
}

// Extra sets a file of observations charted against the limits of the input
func Extra(path string) ConfigOption {
	return func(c *Config) error {
		c.Extra = path
		return nil
	}
}

func Format(f string) ConfigOption {
	return func(c *Config) error {
		switch f = strings.ToLower(f); f {
		case "logfmt", "json":
			c.Format = f
			return nil
		default:
			return fmt.Errorf("unknown report format %s, use logfmt or json", f)
		}
	}
}

func PNG(path string) ConfigOption {
	return func(c *Config) error {
		c.PNG = path
		return nil
	}
}

func Title(t string) ConfigOption {
	return func(c *Config) error {
		c.Title = t
		return nil
	}
}

func Verbose() ConfigOption {
	return func(c *Config) error {
		c.Verbose = true
		return nil
	}
}
