package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/reflekt-labs/reflekt/internal/config"
	"github.com/reflekt-labs/reflekt/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad_Defaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		os.Unsetenv("REFLEKT_CONFIG")
		os.Unsetenv("REFLEKT_ADDR")

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.UpdateDeadBand, ShouldEqual, 3)
				So(len(cfg.TierBins), ShouldEqual, 6)
				So(cfg.Weights["dao_participation"], ShouldEqual, 20)
				So(cfg.RefreshWorkerCount, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestLoad_EnvOverride(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		os.Setenv("REFLEKT_ADDR", ":8080")
		os.Setenv("REFLEKT_LOG_LEVEL", "debug")
		os.Setenv("REFLEKT_UPDATE_DEAD_BAND", "5")
		defer func() {
			os.Unsetenv("REFLEKT_ADDR")
			os.Unsetenv("REFLEKT_LOG_LEVEL")
			os.Unsetenv("REFLEKT_UPDATE_DEAD_BAND")
		}()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then the environment wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.UpdateDeadBand, ShouldEqual, 5)
			})
		})
	})
}

func TestLoad_File(t *testing.T) {
	Convey("Given a YAML configuration file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "reflekt.yaml")
		yaml := []byte("addr: \":7070\"\nlog_level: warn\nsubmit_retries: 4\n")
		So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)

		os.Setenv("REFLEKT_CONFIG", path)
		defer os.Unsetenv("REFLEKT_CONFIG")

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "warn")
				So(cfg.SubmitRetries, ShouldEqual, 4)
			})
		})

		Convey("And the environment still wins over the file", func() {
			os.Setenv("REFLEKT_ADDR", ":6060")
			defer os.Unsetenv("REFLEKT_ADDR")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	Convey("Given a default configuration", t, func() {
		Convey("Then it validates", func() {
			So(config.New().Validate(), ShouldBeNil)
		})

		Convey("When the listen address is empty", func() {
			cfg := config.New()
			cfg.Addr = ""
			So(cfg.Validate(), ShouldEqual, config.ErrEmptyAddr)
		})

		Convey("When the queue size is non-positive", func() {
			cfg := config.New()
			cfg.RefreshQueueSize = 0
			So(cfg.Validate(), ShouldEqual, config.ErrBadQueueSize)
		})

		Convey("When the worker count is non-positive", func() {
			cfg := config.New()
			cfg.RefreshWorkerCount = -1
			So(cfg.Validate(), ShouldEqual, config.ErrBadWorkerCount)
		})

		Convey("When the dead band is negative", func() {
			cfg := config.New()
			cfg.UpdateDeadBand = -1
			So(cfg.Validate(), ShouldEqual, config.ErrBadDeadBand)
		})

		Convey("When the tier ladder has a gap", func() {
			cfg := config.New()
			cfg.TierBins[2].Min = 45
			So(cfg.Validate(), ShouldWrap, tier.ErrInvalidTierConfig)
		})
	})
}
