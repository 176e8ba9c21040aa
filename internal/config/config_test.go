package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/k12lms/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.GradingWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.GradingQueueSize, convey.ShouldEqual, 1000)
			convey.So(cfg.RecordGradeHistory, convey.ShouldBeTrue)
			convey.So(cfg.DueSoonDays, convey.ShouldEqual, 2)
			convey.So(cfg.RosterPath, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the log level is unknown", func() {
			cfg.LogLevel = "loud"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When there are no workers", func() {
			cfg.GradingWorkers = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the queue has no room", func() {
			cfg.GradingQueueSize = -1
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the due-soon window is negative", func() {
			cfg.DueSoonDays = -1
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a log file has no size limit", func() {
			cfg.LogFile = "k12lms.log"
			cfg.LogMaxSizeMB = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
