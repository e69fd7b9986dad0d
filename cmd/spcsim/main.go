// Command spcsim estimates the false alarm rate of a rule set by charting simulated in-control
// processes.  Every run that flags at least one point is a false alarm.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/BTBurke/spc"
	"github.com/BTBurke/spc/pkg/rng"
	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
	"github.com/go-logfmt/logfmt"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

type simulation struct {
	chart  stat.Chart
	rules  rule.Set
	runs   int
	points int
	size   int
	seed   uint64
}

type results struct {
	mu      sync.Mutex
	alarms  int
	perRule map[rule.Rule]int
}

func (r *results) record(v rule.Violations) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(v) > 0 {
		r.alarms++
	}
	for rl := range v {
		r.perRule[rl]++
	}
}

func main() {
	pf := pflag.NewFlagSet("spcsim", pflag.ContinueOnError)
	chartName := pf.StringP("chart", "k", "x-mr-x", "Chart type")
	ruleNames := pf.StringP("rules", "r", "weco", "Rule preset or comma separated rules")
	runs := pf.Int("runs", 10000, "Number of simulated processes")
	points := pf.Int("points", 50, "Points (or subgroups) per process")
	size := pf.IntP("subgroup-size", "n", 5, "Subgroup size, or units per sample for p, np and u charts")
	procs := pf.Int("procs", 4, "Concurrent simulations")
	seed := pf.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	if err := pf.Parse(os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Println(err)
		}
		os.Exit(1)
	}

	chart, err := stat.ParseChart(*chartName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	rules, err := rule.ParseSet(*ruleNames)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	sim := simulation{chart: chart, rules: rules, runs: *runs, points: *points, size: *size, seed: *seed}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log.Info("start", "chart", chart.Slug(), "rules", rules.String(), "runs", sim.runs, "points", sim.points)
	start := time.Now()

	res, err := sim.run(*procs)
	if err != nil {
		log.Error("simulation failed", "err", err)
		os.Exit(1)
	}
	log.Info("done", "elapsed", time.Since(start))

	enc := logfmt.NewEncoder(os.Stdout)
	_ = enc.EncodeKeyvals("chart", chart.String(), "rules", rules.String(), "runs", sim.runs,
		"false_alarm_rate", float64(res.alarms)/float64(sim.runs))
	_ = enc.EndRecord()
	for _, r := range rules {
		_ = enc.EncodeKeyvals("rule", r.String(), "false_alarm_rate", float64(res.perRule[r])/float64(sim.runs))
		_ = enc.EndRecord()
	}
}

func (s simulation) run(procs int) (*results, error) {
	res := &results{perRule: make(map[rule.Rule]int)}
	var g errgroup.Group
	g.SetLimit(procs)
	for i := 0; i < s.runs; i++ {
		g.Go(func() error {
			data := s.generate(s.seed + uint64(i))
			session, err := spc.New(data, s.chart, spc.WithRules(s.rules), spc.WithSubgroupSize(s.size))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			res.record(session.Violations())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// generate draws one in-control process for the chart
func (s simulation) generate(seed uint64) stat.Data {
	switch s.chart {
	case stat.XBarRX, stat.XBarRR, stat.XBarSX, stat.XBarSS:
		return stat.Grouped(rng.Subgroups(rng.NewNormalRNG(10, 1, rng.WithSeed(seed)), s.points, s.size)...)
	case stat.P, stat.NP:
		return stat.Flat(rng.Series(rng.NewBinomialRNG(s.size, 0.1, rng.WithSeed(seed)), s.points)...)
	case stat.C:
		return stat.Flat(rng.Series(rng.NewPoissonRNG(4, rng.WithSeed(seed)), s.points)...)
	case stat.U:
		return stat.Flat(rng.Series(rng.NewPoissonRNG(0.5*float64(s.size), rng.WithSeed(seed)), s.points)...)
	default:
		return stat.Flat(rng.Series(rng.NewNormalRNG(10, 1, rng.WithSeed(seed)), s.points)...)
	}
}
