package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/toplist/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DefaultTopVotedLimit, convey.ShouldEqual, 10)
				convey.So(cfg.MaxTopVotedLimit, convey.ShouldEqual, 100)
				convey.So(cfg.CategoryLockWaitMS, convey.ShouldEqual, 250)
				convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TOPLIST_ADDR", ":8080")
			_ = os.Setenv("TOPLIST_DEFAULT_TOP_VOTED_LIMIT", "5")
			_ = os.Setenv("TOPLIST_MAX_TOP_VOTED_LIMIT", "50")
			_ = os.Setenv("TOPLIST_CATEGORY_LOCK_WAIT_MS", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DefaultTopVotedLimit, convey.ShouldEqual, 5)
				convey.So(cfg.MaxTopVotedLimit, convey.ShouldEqual, 50)
				convey.So(cfg.CategoryLockWaitMS, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
log_level: "debug"
default_top_voted_limit: 20
max_top_voted_limit: 200
category_lock_wait_ms: 500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TOPLIST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefaultTopVotedLimit, convey.ShouldEqual, 20)
				convey.So(cfg.MaxTopVotedLimit, convey.ShouldEqual, 200)
				convey.So(cfg.CategoryLockWaitMS, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
default_top_voted_limit: 20
max_top_voted_limit: 200
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("TOPLIST_CONFIG", tmpFile)
			_ = os.Setenv("TOPLIST_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")             // Overridden by env
				convey.So(cfg.DefaultTopVotedLimit, convey.ShouldEqual, 20)  // From file
				convey.So(cfg.MaxTopVotedLimit, convey.ShouldEqual, 200)     // From file
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("TOPLIST_CATEGORY_LOCK_WAIT_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with an invalid-config kind", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"TOPLIST_CONFIG",
		"TOPLIST_ADDR",
		"TOPLIST_LOG_LEVEL",
		"TOPLIST_DEFAULT_TOP_VOTED_LIMIT",
		"TOPLIST_MAX_TOP_VOTED_LIMIT",
		"TOPLIST_CATEGORY_LOCK_WAIT_MS",
		"TOPLIST_METRICS_ENABLED",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "toplist-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
