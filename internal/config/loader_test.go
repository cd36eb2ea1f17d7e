package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/pitwall/pitwall/internal/config"
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
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.UpstreamURL, convey.ShouldEqual, "http://localhost:8000")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 10_000)
				convey.So(cfg.DefaultYear, convey.ShouldEqual, 2025)
				convey.So(cfg.MaxCustomDrivers, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITWALL_ADDR", ":8080")
			_ = os.Setenv("PITWALL_UPSTREAM_URL", "http://predictions:9000")
			_ = os.Setenv("PITWALL_UPSTREAM_TIMEOUT_MS", "2500")
			_ = os.Setenv("PITWALL_DEFAULT_YEAR", "2024")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.UpstreamURL, convey.ShouldEqual, "http://predictions:9000")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.DefaultYear, convey.ShouldEqual, 2024)
				convey.So(cfg.MaxCustomDrivers, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
upstream_url: "http://model-server:8000"
upstream_timeout_ms: 5000
default_year: 2023
max_custom_drivers: 22
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITWALL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.UpstreamURL, convey.ShouldEqual, "http://model-server:8000")
				convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.DefaultYear, convey.ShouldEqual, 2023)
				convey.So(cfg.MaxCustomDrivers, convey.ShouldEqual, 22)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITWALL_CONFIG", tmpFile)
			_ = os.Setenv("PITWALL_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env should take precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PITWALL_CONFIG", "/nonexistent/pitwall.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail with a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the upstream URL is invalid", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PITWALL_UPSTREAM_URL", "not a url")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the upstream timeout is not positive", func() {
			clearConfigEnvVars()
			_ = os.Setenv("PITWALL_UPSTREAM_TIMEOUT_MS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"PITWALL_CONFIG",
		"PITWALL_LOG_LEVEL",
		"PITWALL_ADDR",
		"PITWALL_UPSTREAM_URL",
		"PITWALL_UPSTREAM_TIMEOUT_MS",
		"PITWALL_DEFAULT_YEAR",
		"PITWALL_MAX_CUSTOM_DRIVERS",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "pitwall-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
