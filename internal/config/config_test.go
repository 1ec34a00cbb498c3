package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/playrank/ranked/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := config.New()

		Convey("Then the rating defaults match the production calibration", func() {
			So(cfg.InitialRating, ShouldEqual, 500)
			So(cfg.BasePool, ShouldEqual, 50.0)
			So(cfg.PoolGamma, ShouldEqual, 25.0)
			So(cfg.PoolMin, ShouldEqual, 25.0)
			So(cfg.PoolMax, ShouldEqual, 400.0)
			So(cfg.RefSeconds, ShouldEqual, 5400)
			So(cfg.MeritWeight, ShouldEqual, 0.8)
			So(cfg.Formula, ShouldEqual, config.FormulaRanked)
			So(cfg.ImpactEnabled, ShouldBeTrue)
		})

		Convey("Then it validates cleanly", func() {
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("RANKED_POOL_MAX", "300")
		t.Setenv("RANKED_FORMULA", "simple")
		t.Setenv("RANKED_INPUT_PATH", "ladder.txt")

		cfg, err := config.Load(context.Background())

		Convey("Then they override the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.PoolMax, ShouldEqual, 300.0)
			So(cfg.Formula, ShouldEqual, config.FormulaSimple)
			So(cfg.InputPath, ShouldEqual, "ladder.txt")
			So(cfg.PoolMin, ShouldEqual, 25.0)
		})
	})

	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ranked.yaml")
		So(os.WriteFile(path, []byte("merit_weight: 0.5\noutput_dir: out\n"), 0o600), ShouldBeNil)
		t.Setenv("RANKED_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.MeritWeight, ShouldEqual, 0.5)
			So(cfg.OutputDir, ShouldEqual, "out")
		})
	})

	Convey("Given an invalid configuration", t, func() {
		cases := map[string]string{
			"RANKED_POOL_MAX":     "-1",
			"RANKED_MERIT_WEIGHT": "1.5",
			"RANKED_FORMULA":      "glicko",
			"RANKED_WIN_DELTA":    "0",
		}
		for key, val := range cases {
			Convey("Then loading fails fast for "+key+"="+val, func() {
				t.Setenv(key, val)
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}
