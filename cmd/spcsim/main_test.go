package main

import (
	"testing"

	"github.com/BTBurke/spc/pkg/rule"
	"github.com/BTBurke/spc/pkg/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulation(t *testing.T) {
	tt := []struct {
		name  string
		chart stat.Chart
		size  int
	}{
		{name: "individuals", chart: stat.XMRX, size: 1},
		{name: "x-bar", chart: stat.XBarRX, size: 5},
		{name: "p", chart: stat.P, size: 50},
		{name: "c", chart: stat.C, size: 1},
		{name: "u", chart: stat.U, size: 10},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			sim := simulation{chart: tc.chart, rules: rule.Basic(), runs: 50, points: 30, size: tc.size, seed: 1}
			res, err := sim.run(4)
			require.NoError(t, err)
			assert.LessOrEqual(t, res.alarms, sim.runs)
			for r, n := range res.perRule {
				assert.True(t, sim.rules.Contains(r))
				assert.LessOrEqual(t, n, res.alarms)
			}
		})
	}
}

func TestSimulationDeterministic(t *testing.T) {
	sim := simulation{chart: stat.XMRX, rules: rule.WECO(), runs: 40, points: 40, size: 1, seed: 99}
	a, err := sim.run(2)
	require.NoError(t, err)
	b, err := sim.run(8)
	require.NoError(t, err)
	assert.Equal(t, a.alarms, b.alarms)
	assert.Equal(t, a.perRule, b.perRule)
}
