package debug

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Recorder keeps everything it receives. It is meant for tests and tooling that
// inspect a single resolution.
type Recorder struct {
	Stages []RecordedStage
	Paths  map[string][]mgl64.Vec3
}

// RecordedStage is a single Stage call kept by a Recorder.
type RecordedStage struct {
	Name string
	Data *orderedmap.OrderedMap[string, any]
}

// Stage ...
func (r *Recorder) Stage(name string, data *orderedmap.OrderedMap[string, any]) {
	r.Stages = append(r.Stages, RecordedStage{Name: name, Data: data})
}

// Path ...
func (r *Recorder) Path(name string, points []mgl64.Vec3) {
	if r.Paths == nil {
		r.Paths = make(map[string][]mgl64.Vec3)
	}
	r.Paths[name] = append([]mgl64.Vec3(nil), points...)
}

// Value returns the last value recorded under key for the stage name.
func (r *Recorder) Value(stage, key string) (any, bool) {
	for i := len(r.Stages) - 1; i >= 0; i-- {
		if r.Stages[i].Name != stage {
			continue
		}
		return r.Stages[i].Data.Get(key)
	}
	return nil, false
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.Stages = r.Stages[:0]
	r.Paths = nil
}
