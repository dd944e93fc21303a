package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/lvrc/locomotion"
	"github.com/oomph-ac/lvrc/physics"
	"github.com/oomph-ac/lvrc/teleport"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Settings contains everything about locomotion that can be configured.
type Settings struct {
	Log struct {
		// Level is a logrus level name.
		Level string
	}
	Player struct {
		CapsuleRadius       float64
		CapsuleHalfHeight   float64
		CapsuleHeightOffset float64
		TopOfHeadOffset     float64
		WalkSpeed           float64
	}
	Arc struct {
		MaxVerticalAngle float64
		InitialSpeed     float64
		Drag             float64
		GravityZ         float64
		MaxSimTime       float64
		Substeps         uint8
	}
	Step struct {
		Length                  float64
		ProbeRadius             float64
		ProbeHalfHeight         float64
		MaxDropDistance         float64
		MaxMantleHeight         float64
		MaxStepHeight           float64
		LedgeClosenessThreshold float64
	}
	Policy struct {
		// Backoff is one of camera2d, arc-tangent or none.
		Backoff           string
		WallBackoffMargin float64
		// Sight is one of head, center or feet.
		Sight string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Log.Level = logrus.InfoLevel.String()

	conf := locomotion.DefaultConfig()
	s.Player.CapsuleRadius = conf.CapsuleRadius
	s.Player.CapsuleHalfHeight = conf.CapsuleHalfHeight
	s.Player.CapsuleHeightOffset = conf.CapsuleHeightOffset
	s.Player.TopOfHeadOffset = conf.TopOfHeadOffset
	s.Player.WalkSpeed = conf.WalkSpeed

	p := teleport.DefaultParams()
	s.Arc.MaxVerticalAngle = p.ArcMaxVerticalAngle
	s.Arc.InitialSpeed = p.ArcInitialSpeed
	s.Arc.Drag = p.ArcDrag
	s.Arc.GravityZ = p.GravityZ
	s.Arc.MaxSimTime = p.MaxSimTime
	s.Arc.Substeps = p.Substeps

	s.Step.Length = p.StepLength
	s.Step.ProbeRadius = p.StepCapsule.Radius
	s.Step.ProbeHalfHeight = p.StepCapsule.HalfHeight
	s.Step.MaxDropDistance = p.MaxDropDistance
	s.Step.MaxMantleHeight = p.MaxMantleHeight
	s.Step.MaxStepHeight = p.MaxStepHeight
	s.Step.LedgeClosenessThreshold = p.LedgeClosenessThreshold

	s.Policy.Backoff = p.Backoff.String()
	s.Policy.WallBackoffMargin = p.WallBackoffMargin
	s.Policy.Sight = p.Sight.String()
	return s
}

// LocomotionConfig returns the locomotion.Config described by the settings.
func (s Settings) LocomotionConfig() locomotion.Config {
	return locomotion.Config{
		CapsuleRadius:       s.Player.CapsuleRadius,
		CapsuleHalfHeight:   s.Player.CapsuleHalfHeight,
		CapsuleHeightOffset: s.Player.CapsuleHeightOffset,
		TopOfHeadOffset:     s.Player.TopOfHeadOffset,
		WalkSpeed:           s.Player.WalkSpeed,
	}
}

// TeleportParams returns the teleport.Params described by the settings.
func (s Settings) TeleportParams() (teleport.Params, error) {
	backoff, err := teleport.ParseBackoffPolicy(s.Policy.Backoff)
	if err != nil {
		return teleport.Params{}, err
	}
	sight, err := teleport.ParseSightTarget(s.Policy.Sight)
	if err != nil {
		return teleport.Params{}, err
	}
	return teleport.Params{
		ArcMaxVerticalAngle: s.Arc.MaxVerticalAngle,
		ArcInitialSpeed:     s.Arc.InitialSpeed,
		ArcDrag:             s.Arc.Drag,
		GravityZ:            s.Arc.GravityZ,
		MaxSimTime:          s.Arc.MaxSimTime,
		Substeps:            s.Arc.Substeps,

		StepLength:  s.Step.Length,
		StepCapsule: physics.Capsule{Radius: s.Step.ProbeRadius, HalfHeight: s.Step.ProbeHalfHeight},

		MaxDropDistance:         s.Step.MaxDropDistance,
		MaxMantleHeight:         s.Step.MaxMantleHeight,
		MaxStepHeight:           s.Step.MaxStepHeight,
		LedgeClosenessThreshold: s.Step.LedgeClosenessThreshold,

		Backoff:           backoff,
		WallBackoffMargin: s.Policy.WallBackoffMargin,
		Sight:             sight,
	}, nil
}

// LogLevel returns the configured logrus level.
func (s Settings) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(s.Log.Level)
}

// Validate checks that the settings describe a usable configuration.
func (s Settings) Validate() error {
	if _, err := s.LogLevel(); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	if s.Player.CapsuleRadius <= 0 || s.Player.WalkSpeed < 0 {
		return errors.Errorf("invalid player capsule radius %v or walk speed %v", s.Player.CapsuleRadius, s.Player.WalkSpeed)
	}
	p, err := s.TeleportParams()
	if err != nil {
		return err
	}
	player := physics.Capsule{Radius: s.Player.CapsuleRadius, HalfHeight: s.Player.CapsuleHalfHeight}
	return errors.Wrap(p.Validate(player), "invalid teleport settings")
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.Errorf("settings file %s already exists", path)
	}
	return Save(path, DefaultSettings())
}

// Save encodes the settings to path, as YAML if the path ends in .yaml or .yml and as TOML otherwise.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return errors.Wrap(err, "failed encoding settings")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed creating settings file")
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist. Keys
// missing from the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.Errorf("settings file %s doesn't exist", path)
		}
		return Settings{}, errors.Wrap(err, "error reading settings")
	}

	s := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, errors.Wrap(err, "error decoding settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
