package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulnticket/vulnticket/internal/types"
)

func TestFilter(t *testing.T) {
	recs := []types.VulnerabilityRecord{
		{Hostname: "a", Environment: "PRD", Severity: types.SevHigh},
		{Hostname: "b", Environment: "Dev", Severity: types.SevLow},
		{Hostname: "c", Environment: "4. Development", Severity: types.SevCritical},
		{Hostname: "d", Environment: " PRD ", Severity: types.SevLow},
	}
	envMap := map[string]string{"Dev": "4. Development", "PRD": "1. Production"}

	tests := []struct {
		name  string
		envs  []string
		sevs  []string
		hosts []string
	}{
		{"single env all severities", []string{"PRD"}, nil, []string{"a", "d"}},
		{"code and display name", []string{"Dev"}, nil, []string{"b", "c"}},
		{"severity subset", []string{"PRD", "Dev"}, []string{"Low"}, []string{"b", "d"}},
		{"blank severity entries ignored", []string{"PRD"}, []string{" "}, []string{"a", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(recs, envMap, tt.envs, tt.sevs)
			require.NoError(t, err)
			var hosts []string
			for _, r := range got {
				hosts = append(hosts, r.Hostname)
			}
			assert.Equal(t, tt.hosts, hosts)
		})
	}
}

func TestFilter_Empty(t *testing.T) {
	_, err := Filter([]types.VulnerabilityRecord{{Environment: "PRD", Severity: types.SevHigh}}, nil, []string{"PRD"}, []string{"Low"})
	var empty *EmptyResultError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, []string{"Low"}, empty.Severities)

	_, err = Filter(nil, nil, nil, nil)
	assert.ErrorAs(t, err, &empty)
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	in := []types.VulnerabilityRecord{{Hostname: "h", Environment: "XYZ"}}
	out := Enrich(in, map[string]string{"h": "App"}, nil, map[string]string{"PRD": "1. Production"})
	assert.Equal(t, "", in[0].Application)
	assert.Equal(t, "App", out[0].Application)
	assert.Equal(t, "XYZ", out[0].EnvironmentName, "unknown code falls back to raw value")
}

func TestSortAndGroup_KeepsUnrankedLabelsTogether(t *testing.T) {
	recs := []types.VulnerabilityRecord{
		{Finding: "B", Severity: "Foo", Hostname: "1"},
		{Finding: "A", Severity: types.SevLow, Hostname: "2"},
		{Finding: "B", Severity: "Bar", Hostname: "3"},
		{Finding: "B", Severity: "Foo", Hostname: "4"},
		{Finding: "B", Severity: types.SevCritical, Hostname: "5"},
		{Finding: "A", Severity: types.SevLow, Hostname: "6"},
	}
	Sort(recs, types.DefaultSeverityOrder())
	groups := Group(recs)

	var keys []types.GroupKey
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []types.GroupKey{
		{Finding: "A", Severity: types.SevLow},
		{Finding: "B", Severity: types.SevCritical},
		{Finding: "B", Severity: "Bar"},
		{Finding: "B", Severity: "Foo"},
	}, keys)
	assert.Equal(t, "2", groups[0].Records[0].Hostname, "stable within group")
	assert.Equal(t, "6", groups[0].Records[1].Hostname)
	assert.Equal(t, "1", groups[3].Records[0].Hostname)
	assert.Equal(t, "4", groups[3].Records[1].Hostname)
}

func TestProcess_TrimsGroupingFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SelectedEnvironments = []string{"PRD"}
	recs := []types.VulnerabilityRecord{
		{Hostname: "H1", Environment: "PRD", Finding: "X", Severity: "High"},
		{Hostname: "H2", Environment: "PRD", Finding: "X ", Severity: " High"},
		{Hostname: "H3", Environment: "PRD", Finding: " X", Severity: "High "},
	}
	res, err := Process(cfg, recs)
	require.NoError(t, err)
	require.Len(t, res.Tickets, 1)
	assert.Equal(t, "N/A - High - X", res.Tickets[0].Title)
	assert.Equal(t, []string{"H1", "H2", "H3"}, res.Tickets[0].Hosts)
	assert.Equal(t, " High", string(recs[1].Severity), "input is left untouched")
}
