// Package debug carries observational data out of the teleport pipeline. Nothing
// written to a Sink ever influences a result.
package debug

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// Sink receives debug data.
type Sink interface {
	// Stage is called once per pipeline stage with the values that stage settled on.
	Stage(name string, data *orderedmap.OrderedMap[string, any])
	// Path is called with a named polyline, such as arc samples or step positions.
	Path(name string, points []mgl64.Vec3)
}

// Data returns an empty ordered payload for Stage.
func Data() *orderedmap.OrderedMap[string, any] {
	return orderedmap.NewOrderedMap[string, any]()
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Stage(string, *orderedmap.OrderedMap[string, any]) {}
func (NopSink) Path(string, []mgl64.Vec3)                         {}

// LogSink writes everything to a logrus logger at debug level.
type LogSink struct {
	Log *logrus.Logger
}

// Stage ...
func (s LogSink) Stage(name string, data *orderedmap.OrderedMap[string, any]) {
	s.Log.Debugf("%s %s", name, String(data))
}

// Path ...
func (s LogSink) Path(name string, points []mgl64.Vec3) {
	s.Log.WithField("points", len(points)).Debugf("%s %v", name, points)
}

// String formats an ordered payload as [key=value ...].
func String(data *orderedmap.OrderedMap[string, any]) string {
	if data == nil {
		return "[]"
	}
	dataString := "["
	count := data.Len()
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		dataString += fmt.Sprintf("%s=%v", key, v)

		count--
		if count > 0 {
			dataString += " "
		}
	}
	return dataString + "]"
}
