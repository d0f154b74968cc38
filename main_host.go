//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tftkeypad/app"
	"tftkeypad/hal"
	"tftkeypad/internal/config"
)

func main() {
	var cfg hal.HeadlessConfig
	var win hal.WindowConfig
	var configPath, record string
	var mask bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 0, "Tick rate (default from config, 60).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Func("tap", "Scripted tap x,y in headless mode (repeatable).", func(s string) error {
		tap, err := hal.ParseTap(s)
		if err != nil {
			return err
		}
		cfg.Taps = append(cfg.Taps, tap)
		return nil
	})
	flag.StringVar(&configPath, "config", "", "TOML config file.")
	flag.StringVar(&record, "passcode", "", "Passcode record from mkpasscode (overrides config).")
	flag.BoolVar(&mask, "mask", false, "Echo '*' instead of digits.")
	flag.IntVar(&win.Scale, "scale", 0, "Window scale (default from config, 2).")
	flag.Parse()

	file, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if record != "" {
		file.Lock.Passcode = record
		if err := file.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if mask {
		file.Lock.Mask = true
	}
	if cfg.Hz <= 0 {
		cfg.Hz = file.Window.Hz
	}
	if win.Scale <= 0 {
		win.Scale = file.Window.Scale
	}
	win.Hz = cfg.Hz

	appCfg := file.AppConfig()
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, win); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
