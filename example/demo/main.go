package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/lvrc/debug"
	"github.com/oomph-ac/lvrc/locomotion"
	"github.com/oomph-ac/lvrc/settings"
	"github.com/oomph-ac/lvrc/teleport"
	"github.com/oomph-ac/lvrc/vr"
	"github.com/oomph-ac/lvrc/worker"
	"github.com/oomph-ac/lvrc/world"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var CLI struct {
	Config    string `help:"Settings file, TOML or YAML. It is created with defaults if missing." default:"lvrc.toml" type:"path"`
	Debug     bool   `help:"Log every stage of each teleport."`
	Stats     bool   `help:"Serve runtime statistics on localhost:8080."`
	SentryDSN string `name:"sentry-dsn" env:"SENTRY_DSN" help:"Report panics to this Sentry DSN."`

	Aim struct {
		Yaw   float64 `help:"Aim heading in degrees." default:"0"`
		Pitch float64 `help:"Aim pitch above horizontal in degrees." default:"10"`
	} `cmd:"" default:"withargs" help:"Resolve and confirm a single teleport."`

	Fan struct {
		Count int     `help:"Number of directions to resolve." default:"16"`
		Pitch float64 `help:"Aim pitch above horizontal in degrees." default:"10"`
	} `cmd:"" help:"Resolve teleports in a full circle around the player in parallel."`

	Walk struct {
		Seconds float64 `help:"How long to hold the stick." default:"2"`
		X       float64 `help:"Stick X, strafing right." default:"0"`
		Y       float64 `help:"Stick Y, walking forward." default:"1"`
	} `cmd:"" help:"Walk with continuous locomotion."`
}

const headHeight = 165

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("lvrc-demo"),
		kong.Description("Teleport and walk a VR player around a small sample level."),
		kong.UsageOnError(),
	)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	if CLI.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: CLI.SentryDSN}); err != nil {
			log.Fatalf("sentry init: %v", err)
		}
		defer sentry.Flush(time.Second * 2)
		defer sentry.Recover()
	}

	if CLI.Stats {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := loadSettings(CLI.Config, log)
	if err != nil {
		log.Fatal(err)
	}
	level, err := s.LogLevel()
	if err != nil {
		log.Fatal(errors.Wrap(err, "log level"))
	}
	if CLI.Debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	params, err := s.TeleportParams()
	if err != nil {
		log.Fatal(errors.Wrap(err, "teleport parameters"))
	}
	w := world.New(log)
	buildScene(w)

	resolver := teleport.NewResolver(w, params, log)
	if CLI.Debug {
		resolver.Debug = debug.LogSink{Log: log}
	}
	tracker := vr.NewStaticTracker(vr.Pose{Orientation: mgl32.QuatIdent(), Position: mgl32.Vec3{0, 0, headHeight}})
	c := locomotion.New(s.LocomotionConfig(), resolver, tracker, mgl64.Vec3{0, 0, teleport.FloorFloatOffset}, log)
	if err := c.UpdateCapsuleHeightToHMD(); err != nil {
		log.Fatal(err)
	}

	switch ctx.Command() {
	case "aim":
		err = aim(c, CLI.Aim.Yaw, CLI.Aim.Pitch, log)
	case "fan":
		err = fan(c, resolver, CLI.Fan.Count, CLI.Fan.Pitch, log)
	case "walk":
		walk(c, CLI.Walk.Seconds, mgl64.Vec2{CLI.Walk.X, CLI.Walk.Y}, log)
	default:
		err = errors.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// loadSettings loads the settings file at path, writing the defaults there first if it does not exist.
func loadSettings(path string, log *logrus.Logger) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warnf("settings file %s not found, writing defaults", path)
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

// direction returns the unit vector for a heading and pitch in degrees.
func direction(yaw, pitch float64) mgl64.Vec3 {
	y, p := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	return mgl64.Vec3{math.Cos(p) * math.Cos(y), math.Cos(p) * math.Sin(y), math.Sin(p)}
}

func aim(c *locomotion.Component, yaw, pitch float64, log *logrus.Logger) error {
	eye, _ := c.HMD()
	c.BeginTeleport()
	out, err := c.ConfirmTeleport(eye, direction(yaw, pitch))
	if err != nil {
		return err
	}
	printOutcome(log, yaw, out)
	log.WithField("feet", c.Feet()).Info("player moved")
	return nil
}

func fan(c *locomotion.Component, resolver *teleport.Resolver, count int, pitch float64, log *logrus.Logger) error {
	c.BeginTeleport()
	stance, err := c.Stance()
	if err != nil {
		return err
	}

	pool := worker.New(0)
	defer pool.Close()

	outcomes := make([]teleport.Outcome, count)
	for i := range outcomes {
		i := i
		yaw := 360 * float64(i) / float64(count)
		pool.Submit(func() {
			outcomes[i] = resolver.Calculate(stance, teleport.Query{TraceStart: stance.Eye, TraceDirection: direction(yaw, pitch)})
		})
	}
	pool.Wait()

	for i, out := range outcomes {
		printOutcome(log, 360*float64(i)/float64(count), out)
	}
	return nil
}

func walk(c *locomotion.Component, seconds float64, input mgl64.Vec2, log *logrus.Logger) {
	const dt = 1.0 / 90
	for t := 0.0; t < seconds; t += dt {
		if c.Tick(dt, input) {
			log.Info("continuous locomotion started")
		}
	}
	c.Tick(dt, mgl64.Vec2{})
	log.WithField("feet", c.Feet()).Info("walk finished")
}

func printOutcome(log *logrus.Logger, yaw float64, out teleport.Outcome) {
	log.WithFields(logrus.Fields{
		"yaw":         yaw,
		"method":      out.Method,
		"destination": fmt.Sprintf("%.1f", out.Destination),
		"arcEnd":      fmt.Sprintf("%.1f", out.ArcEnd),
		"steps":       len(out.Steps),
		"drop":        out.DropAfterArc,
		"lethal":      out.Lethal,
		"crouch":      fmt.Sprintf("%.2f", out.HeightAdjustRatio),
	}).Info("teleport")
}
