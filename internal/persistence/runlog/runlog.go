package runlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/plan"
)

// Entry is one run-log line. Kind discriminates: "header", "action",
// "result".
type Entry struct {
	Kind string `json:"kind"`
	At   string `json:"at"`

	Scenario       string `json:"scenario,omitempty"`
	ScenarioDigest string `json:"scenario_digest,omitempty"`

	Iteration int                 `json:"iteration,omitempty"`
	Seq       int                 `json:"seq,omitempty"`
	Action    *plan.PlannedAction `json:"action,omitempty"`

	ReachedGoal   bool      `json:"reached_goal,omitempty"`
	Iterations    int       `json:"iterations,omitempty"`
	Actions       int       `json:"actions,omitempty"`
	FinalAgentPos grid.Vec3 `json:"final_agent_pos,omitempty"`
}

// RunLogger writes one compressed JSONL entry per planner event.
type RunLogger struct{ w *entryWriter }

func NewRunLogger(baseDir string) *RunLogger {
	return &RunLogger{w: newEntryWriter(filepath.Join(baseDir, "runs"))}
}

func (l *RunLogger) WriteHeader(scenario, digest string) error {
	return l.w.Write(Entry{Kind: "header", At: now(), Scenario: scenario, ScenarioDigest: digest})
}

func (l *RunLogger) WriteAction(iteration, seq int, a plan.PlannedAction) error {
	return l.w.Write(Entry{Kind: "action", At: now(), Iteration: iteration, Seq: seq, Action: &a})
}

func (l *RunLogger) WriteResult(res plan.RunResult) error {
	return l.w.Write(Entry{
		Kind:          "result",
		At:            now(),
		ReachedGoal:   res.ReachedGoal,
		Iterations:    res.Iterations,
		Actions:       len(res.Actions),
		FinalAgentPos: res.FinalAgentPos,
	})
}

func (l *RunLogger) Close() error { return l.w.Close() }

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// ReadEntries decodes every entry under a run-log directory in file order.
// Used by batch tooling and tests.
func ReadEntries(baseDir string) ([]Entry, error) {
	dir := filepath.Join(baseDir, "runs")
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".jsonl.zst") {
			continue
		}
		files = append(files, filepath.Join(dir, de.Name()))
	}
	sort.Strings(files)

	var out []Entry
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		sc := bufio.NewScanner(dec)
		sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		for sc.Scan() {
			var e Entry
			if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
				dec.Close()
				_ = f.Close()
				return nil, err
			}
			out = append(out, e)
		}
		err = sc.Err()
		dec.Close()
		_ = f.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
