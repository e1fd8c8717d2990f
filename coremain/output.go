package coremain

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pmkol/dlist/pkg/scenario"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type reportWriter struct {
	m      sync.Mutex
	format string
	out    io.Writer
	enc    *yaml.Encoder
}

func newReportWriter(format string, out io.Writer) (*reportWriter, error) {
	w := &reportWriter{format: format, out: out}
	switch format {
	case outputText:
	case outputYAML:
		w.enc = yaml.NewEncoder(out)
		w.enc.SetIndent(2)
	default:
		return nil, fmt.Errorf("invalid output format %q", format)
	}
	return w, nil
}

func (w *reportWriter) Write(reports []*scenario.Report) error {
	w.m.Lock()
	defer w.m.Unlock()

	if w.enc != nil {
		if reports == nil {
			reports = []*scenario.Report{}
		}
		return w.enc.Encode(reports)
	}

	for _, rp := range reports {
		if _, err := io.WriteString(w.out, formatText(rp)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatText renders a report on a single line, e.g.
// "basic: [2] index=0 steps=9 tail=[3]".
func formatText(rp *scenario.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %v", rp.Name, rp.Final)
	if rp.Index != nil {
		fmt.Fprintf(&sb, " index=%d", *rp.Index)
	} else {
		sb.WriteString(" index=ghost")
	}
	fmt.Fprintf(&sb, " steps=%d", rp.Steps)

	names := make([]string, 0, len(rp.Slots))
	for name := range rp.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, " %s=%v", name, rp.Slots[name])
	}
	return sb.String()
}
