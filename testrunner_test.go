package dither

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseScriptYAML(t *testing.T) {
	r, err := ParseScript([]byte(`
steps:
  - {action: move, x: 10, y: 20}
  - {action: wait, frames: 3}
  - {action: screenshot, label: center}
`))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
}

func TestParseScriptJSON(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps":[{"action":"leave"},{"action":"resize","width":100,"height":50}]}`))
	if err != nil {
		t.Fatalf("ParseScript JSON: %v", err)
	}
	if r.steps[1].Width != 100 || r.steps[1].Height != 50 {
		t.Errorf("resize step = %+v", r.steps[1])
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := map[string]string{
		"empty":   "steps: []\n",
		"unknown": "steps:\n  - {action: click}\n",
		"syntax":  "steps: [\n",
	}
	for name, data := range tests {
		if _, err := ParseScript([]byte(data)); err == nil {
			t.Errorf("%s: want error", name)
		}
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadScript missing file: want error")
	}
}

func TestScriptRunnerSequence(t *testing.T) {
	s := newTestSurface(FullWindow, 200, 200)
	tr := NewPointerTracker()
	tr.Bind(s)
	shots := NewScreenshotter(t.TempDir())

	r, err := ParseScript([]byte(`
steps:
  - {action: move, x: 100, y: 100}
  - {action: wait, frames: 2}
  - {action: screenshot, label: center}
  - {action: path, fromX: 100, fromY: 100, toX: 150, toY: 100, frames: 3}
  - {action: leave}
`))
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	for frame := 0; frame < 50 && !r.Done(); frame++ {
		r.Step(s, shots)
		if shots.Pending() > 0 {
			labels = append(labels, shots.queue...)
			shots.queue = shots.queue[:0]
			if got := ComputeGrid(tr.Snapshot(), DefaultGridRange); got != 20 {
				t.Errorf("grid at screenshot = %v, want 20", got)
			}
		}
		s.Poll()
	}

	if !r.Done() {
		t.Fatal("script did not finish")
	}
	if strings.Join(labels, ",") != "center" {
		t.Errorf("screenshots = %v, want [center]", labels)
	}
	st := tr.Snapshot()
	if st.InsideSurface {
		t.Error("pointer should have left")
	}
	if st.Position != (Vec2{150, 100}) {
		t.Errorf("last position = %+v, want {150 100}", st.Position)
	}
}

func TestScriptRunnerResize(t *testing.T) {
	s := newTestSurface(FullWindow, 200, 200)
	r, err := ParseScript([]byte("steps:\n  - {action: resize, width: 320, height: 240}\n"))
	if err != nil {
		t.Fatal(err)
	}
	r.Step(s, nil)
	s.Poll()
	r.Step(s, nil)
	if !r.Done() {
		t.Error("runner should be done")
	}
	if b := s.Bounds(); b.Width != 320 || b.Height != 240 {
		t.Errorf("bounds = %+v, want 320x240", b)
	}
}
