package coremain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pmkol/dlist/pkg/scenario"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const mainConfig = `
log:
  level: error
include:
  - %s
scenarios:
  - name: basic
    steps:
      - {op: push_back, value: 1}
      - {op: push_back, value: 2}
      - {op: push_back, value: 3, want: [1, 2, 3]}
      - {op: pop_front, expect: "found && result == 1"}
      - {op: move_next, expect: "index == 0 && current == 2"}
      - {op: move_next, expect: "index == 1 && current == 3"}
      - {op: move_prev}
      - {op: split_after, slot: tail, expect: "slot_len == 1"}
`

const subConfig = `
scenarios:
  - name: empty
    steps:
      - op: pop_front
        expect: "!found && len == 0"
      - op: push_front
        value: "5"
      - op: back
        expect: "result == 5 && front == back"
`

func Test_loadConfig(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.yaml", subConfig)
	main := writeFile(t, dir, "config.yaml", fmt.Sprintf(mainConfig, sub))

	cfg, fileUsed, err := loadConfig(main)
	require.NoError(t, err)
	require.Equal(t, main, fileUsed)
	require.Equal(t, "error", cfg.Log.Level)
	require.Len(t, cfg.Scenarios, 1)

	files := []string{fileUsed}
	require.NoError(t, mergeInclude(cfg, 0, []string{fileUsed}, &files))
	require.Equal(t, []string{main, sub}, files)
	require.Len(t, cfg.Scenarios, 2)

	// included scenarios come first
	empty := cfg.Scenarios[0]
	assert.Equal(t, "empty", empty.Name)
	assert.Equal(t, 5, empty.Steps[1].Value)
	assert.Equal(t, "basic", cfg.Scenarios[1].Name)
	assert.Equal(t, []int{1, 2, 3}, cfg.Scenarios[1].Steps[2].Want)
	assert.Equal(t, "tail", cfg.Scenarios[1].Steps[7].Slot)
}

func Test_loadConfig_unused(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", "scenarios:\n  - name: x\n    stepz: []\n")
	_, _, err := loadConfig(p)
	require.Error(t, err)
}

func Test_mergeInclude_loop(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	writeFile(t, dir, "config.yaml", "include: ["+p+"]\n")

	cfg, fileUsed, err := loadConfig(p)
	require.NoError(t, err)
	files := []string{fileUsed}
	require.ErrorContains(t, mergeInclude(cfg, 0, []string{fileUsed}, &files), "maximum include depth")
}

func TestStartRun(t *testing.T) {
	dir := t.TempDir()
	sub := writeFile(t, dir, "sub.yaml", subConfig)
	main := writeFile(t, dir, "config.yaml", fmt.Sprintf(mainConfig, sub))

	out := new(bytes.Buffer)
	require.NoError(t, StartRun(&runFlags{c: main, output: outputText}, out))
	assert.Equal(t,
		"empty: [5] index=ghost steps=3\n"+
			"basic: [2] index=0 steps=8 tail=[3]\n",
		out.String())

	out.Reset()
	require.NoError(t, StartRun(&runFlags{c: main, output: outputYAML}, out))
	var reports []scenario.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, []int{2}, reports[1].Final)
	assert.Equal(t, map[string][]int{"tail": {3}}, reports[1].Slots)
}

func TestStartRun_failures(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
log: {level: error}
scenarios:
  - name: good
    init: [1, 2]
  - name: bad
    init: [1, 2]
    steps:
      - {op: pop_back, expect: "result == 1"}
`)
	out := new(bytes.Buffer)
	err := StartRun(&runFlags{c: p, output: outputText}, out)
	require.ErrorIs(t, err, scenario.ErrExpectation)
	require.ErrorContains(t, err, "bad")
	assert.Equal(t, "good: [1 2] index=ghost steps=0\n", out.String())

	require.Error(t, StartRun(&runFlags{c: p, output: "xml"}, out))
	require.Error(t, StartRun(&runFlags{c: filepath.Join(dir, "missing.yaml"), output: outputText}, out))

	empty := writeFile(t, dir, "empty.yaml", "log: {level: error}\n")
	require.ErrorContains(t, StartRun(&runFlags{c: empty, output: outputText}, out), "no scenario")
}
