package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"go.uber.org/multierr"

	"github.com/san-kum/diffbot/internal/drive"
)

func TestDefaultConfig(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()

	g.Expect(cfg.Robot).To(Equal("epuck"))
	g.Expect(cfg.Dt).To(BeNumerically(">", 0))
	g.Expect(cfg.Duration).To(BeNumerically(">", 0))
	g.Expect(cfg.Validate()).To(Succeed())
}

func TestGetPreset(t *testing.T) {
	g := NewWithT(t)

	cfg := GetPreset("turtle")
	g.Expect(cfg).NotTo(BeNil())
	g.Expect(cfg.Geometry.WheelRadius).To(Equal(0.033))
	g.Expect(cfg.Validate()).To(Succeed())

	cfg.Dt = 99
	g.Expect(GetPreset("turtle").Dt).To(Equal(0.05), "presets must be copied")
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ListPresets()).To(Equal([]string{"epuck", "turtle"}))
}

func TestLoadYAML(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "robot.yaml")
	data := []byte(`
mode: goal
dt: 0.02
geometry:
  wheel_radius: 0.03
  wheel_base: 0.1
goal:
  x: 1.5
  y: -0.5
`)
	g.Expect(os.WriteFile(path, data, 0644)).To(Succeed())

	cfg, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Mode).To(Equal("goal"))
	g.Expect(cfg.Dt).To(Equal(0.02))
	g.Expect(cfg.Geometry).To(Equal(drive.Geometry{WheelRadius: 0.03, WheelBase: 0.1}))
	g.Expect(cfg.Goal.X).To(Equal(1.5))
	g.Expect(cfg.Goal.Kp).To(Equal(DefaultKp), "unset fields keep defaults")
}

func TestLoadTOML(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "robot.toml")
	data := []byte(`
mode = "wall"
log_level = "debug"

[wall]
behavior = "parallel"
side = "right"
`)
	g.Expect(os.WriteFile(path, data, 0644)).To(Succeed())

	cfg, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.LogLevel).To(Equal("debug"))
	g.Expect(cfg.Wall.Behavior).To(Equal("parallel"))
	g.Expect(cfg.Wall.Side).To(Equal("right"))
	g.Expect(cfg.Wall.Desired).To(Equal(DefaultDesired))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			g := NewWithT(t)
			path := filepath.Join(t.TempDir(), name)
			want := GetPreset("turtle")
			want.Goal.X = 2

			g.Expect(Save(path, want)).To(Succeed())
			got, err := Load(path)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(got).To(Equal(want))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	g := NewWithT(t)
	t.Setenv("DIFFBOT_MODE", "goal")
	t.Setenv("DIFFBOT_GOAL_X", "3.25")
	t.Setenv("DIFFBOT_MQTT_ENABLED", "true")

	cfg := DefaultConfig()
	g.Expect(cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env"))).To(Succeed())
	g.Expect(cfg.Mode).To(Equal("goal"))
	g.Expect(cfg.Goal.X).To(Equal(3.25))
	g.Expect(cfg.Telemetry.Enabled).To(BeTrue())
}

func TestApplyEnvFile(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "test.env")
	g.Expect(os.WriteFile(path, []byte("DIFFBOT_WALL_SIDE=right\n"), 0644)).To(Succeed())
	t.Cleanup(func() { os.Unsetenv("DIFFBOT_WALL_SIDE") })

	cfg := DefaultConfig()
	g.Expect(cfg.ApplyEnv(path)).To(Succeed())
	g.Expect(cfg.Wall.Side).To(Equal("right"))
}

func TestApplyEnvBadValues(t *testing.T) {
	g := NewWithT(t)
	t.Setenv("DIFFBOT_DT", "fast")
	t.Setenv("DIFFBOT_WHEEL_BASE", "wide")

	cfg := DefaultConfig()
	err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env"))
	g.Expect(err).To(HaveOccurred())
	g.Expect(multierr.Errors(err)).To(HaveLen(2))
	g.Expect(cfg.Dt).To(Equal(DefaultDt))
}

func TestValidate(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()
	cfg.Geometry.WheelBase = 0
	cfg.Dt = -1
	cfg.Mode = "dance"
	cfg.Wall.Side = "up"

	err := cfg.Validate()
	g.Expect(err).To(HaveOccurred())
	g.Expect(err).To(MatchError(drive.ErrInvalidGeometry))
	g.Expect(err).To(MatchError(drive.ErrInvalidTimeStep))
	g.Expect(multierr.Errors(err)).To(HaveLen(4))
	g.Expect(err).To(MatchError(ContainSubstring(`mode must be wall or goal, got "dance"`)))
	g.Expect(err).To(MatchError(ContainSubstring("unknown wall side: up")))
}

func TestParams(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()

	g.Expect(cfg.SetParam("wall.kp2", 4)).To(Succeed())
	g.Expect(cfg.Wall.Kp2).To(Equal(4.0))

	v, err := cfg.GetParam("goal.kd")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal(DefaultKd))

	g.Expect(cfg.SetParam("goal.gain", 1)).To(MatchError(ContainSubstring("goal.gain")))
	g.Expect(ParamNames()).To(ContainElements("goal.kp", "wall.desired"))
}

func TestLoadOverPreset(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "override.yaml")
	g.Expect(os.WriteFile(path, []byte("mode: goal\n"), 0644)).To(Succeed())

	base := GetPreset("turtle")
	cfg, err := LoadOver(path, base)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Mode).To(Equal("goal"))
	g.Expect(cfg.Geometry.WheelBase).To(Equal(0.16))
	g.Expect(base.Mode).To(Equal("wall"))
}
