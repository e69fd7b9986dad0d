package spc

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-yaml/yaml"
	"github.com/spf13/pflag"
)

type parsed struct {
	options []ConfigOption
	err     error
}

// ParseCommandLine configures a run from command line options or from a YAML configuration file
// passed with the -c flag.  Returns any positional arguments and a slice of functional options
// that can be applied to the configuration.
func ParseCommandLine() ([]string, []ConfigOption, error) {
	pf := createFlagSet()
	return parse(os.Args[1:], pf)
}

func parse(args []string, pf *pflag.FlagSet) ([]string, []ConfigOption, error) {
	p := parsed{}
	if err := pf.ParseAll(args, parseFlag(&p)); err != nil {
		return pf.Args(), p.options, err
	}
	return pf.Args(), p.options, p.err
}

func createFlagSet() *pflag.FlagSet {
	pf := pflag.NewFlagSet("spc", pflag.ContinueOnError)
	pf.Usage = func() {
		fmt.Printf("Usage of spc:\nspc --chart <chart> <options> data.csv\nspc -c config.yml\n")
		fmt.Printf("\n%s", pf.FlagUsagesWrapped(10))
		fmt.Printf("\nCharts: %s\nRule presets: basic, pmi, weco, nelson, all\n", chartSlugs())
	}

	pf.StringP("config", "c", "", "Use yaml configuration file")
	pf.StringP("chart", "k", "", "Chart type (e.g. x-mr-x, xbar-r-x, p, cusum)")
	pf.StringP("rules", "r", "", "Rule preset or comma separated rules (e.g. weco, or beyond-3sigma,6-trending).  Default: basic")
	pf.StringP("subgroup-size", "n", "", "Observations per subgroup, or units inspected per sample for p, np and u charts")
	pf.String("target", "", "CUSUM target.  Default: sample mean")
	pf.String("center", "", "Use a fixed center line instead of calculating one")
	pf.String("lower", "", "Use a fixed lower control limit")
	pf.String("upper", "", "Use a fixed upper control limit")
	pf.String("changepoints", "", "Comma separated segment end indices.  Each segment is analyzed on its own.")
	pf.StringP("input", "i", "", "CSV or xlsx file with a header row")
	pf.String("columns", "", "Comma separated columns to read.  More than one column reads each row as a subgroup.  Default: first column")
	pf.String("extra", "", "File of additional observations charted against the limits of the input")
	pf.StringP("format", "f", "logfmt", "Report format, logfmt or json")
	pf.StringP("png", "o", "", "Write the chart as a PNG image to this path")
	pf.String("title", "", "Chart title.  Default: chart name")
	pf.BoolP("verbose", "v", false, "Log progress to stderr")

	return pf
}

func parseFlag(p *parsed) func(*pflag.Flag, string) error {
	return func(flag *pflag.Flag, value string) error {
		switch flag.Name {
		case "config":
			opts, err := parseFromFile(value)
			if err != nil {
				p.err = err
				return err
			}
			p.options = append(p.options, opts...)
		default:
			option, err := handleOption(flag.Name, value)
			if err != nil {
				p.err = err
				return err
			}
			p.options = append(p.options, option)
		}
		return nil
	}
}

func handleOption(name string, value string) (ConfigOption, error) {
	switch name {
	case "chart":
		return Chart(value), nil
	case "rules":
		return Rules(value), nil
	case "subgroup-size":
		return SubgroupSize(value), nil
	case "target":
		return Target(value), nil
	case "center":
		return Center(value), nil
	case "lower":
		return Lower(value), nil
	case "upper":
		return Upper(value), nil
	case "changepoints":
		return Changepoints(value), nil
	case "input":
		return Input(value), nil
	case "columns":
		return Columns(value), nil
	case "extra":
		return Extra(value), nil
	case "format":
		return Format(value), nil
	case "png":
		return PNG(value), nil
	case "title":
		return Title(value), nil
	case "verbose":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("verbose must be true or false: %w", err)
		}
		if !on {
			return func(*Config) error { return nil }, nil
		}
		return Verbose(), nil
	default:
		return nil, fmt.Errorf("Unknown option: %s", name)
	}
}

func parseFromFile(fpath string) ([]ConfigOption, error) {
	var options []ConfigOption
	data, err := os.ReadFile(fpath)
	if err != nil {
		return options, err
	}

	cfg := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return options, err
	}
	for k, v := range cfg {
		switch val := v.(type) {
		case string:
			opt, err := handleOption(k, val)
			if err != nil {
				return options, err
			}
			options = append(options, opt)
		case int:
			opt, err := handleOption(k, strconv.Itoa(val))
			if err != nil {
				return options, err
			}
			options = append(options, opt)
		case float64:
			opt, err := handleOption(k, strconv.FormatFloat(val, 'g', -1, 64))
			if err != nil {
				return options, err
			}
			options = append(options, opt)
		case bool:
			opt, err := handleOption(k, strconv.FormatBool(val))
			if err != nil {
				return options, err
			}
			options = append(options, opt)
		// handles the case of a list of changepoints, columns or rules
		case []interface{}:
			alt := listFieldsYAML{}
			if err := yaml.Unmarshal(data, &alt); err != nil {
				return options, fmt.Errorf("Could not unmarshal config value for key: %s", k)
			}
			var values []string
			switch k {
			case "changepoints":
				for _, cp := range alt.Changepoints {
					values = append(values, strconv.Itoa(cp))
				}
			case "columns":
				values = alt.Columns
			case "rules":
				values = alt.Rules
			default:
				return options, fmt.Errorf("Unknown option: %s", k)
			}
			for _, val := range values {
				opt, err := handleOption(k, val)
				if err != nil {
					return options, err
				}
				options = append(options, opt)
			}
		default:
			return options, fmt.Errorf("Could not process config key %s, unknown type", k)
		}
	}
	return options, nil
}

type listFieldsYAML struct {
	Changepoints []int    `yaml:"changepoints"`
	Columns      []string `yaml:"columns"`
	Rules        []string `yaml:"rules"`
}
