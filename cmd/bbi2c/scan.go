package main

import (
	"errors"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/bbi2c"
	"github.com/mklimuk/bbi2c/cmd/bbi2c/console"
	"github.com/mklimuk/bbi2c/master"
)

const scanFirst = 0x08
const scanLast = 0x77

var scanCmd = &cli.Command{
	Name:  "scan",
	Usage: "probe the bus for responding devices",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("config"))
		if err != nil {
			return console.Exit(1, "could not load config: %v", err)
		}
		lines, err := openLines(cfg)
		if err != nil {
			return console.Exit(1, "could not open bus lines: %v", err)
		}
		reg := master.NewRegistry(scanLast - scanFirst + 1)
		found := 0
		for addr := byte(scanFirst); addr <= scanLast; addr++ {
			dev, err := reg.Register(lines, bbi2c.SlaveConfig{Addr: addr, AddrBytes: 1})
			if err != nil {
				return console.Exit(1, "could not register device %#02x: %v", addr, err)
			}
			_, err = dev.Transfer(nil, master.ActionStart|master.ActionWrite)
			if _, stopErr := dev.Transfer(nil, master.ActionStop); stopErr != nil {
				return console.Exit(1, "could not release the bus: %v", stopErr)
			}
			switch {
			case err == nil:
				console.PInfof(console.PictoPin, "device at %#02x", addr)
				found++
			case errors.Is(err, bbi2c.ErrNoSuchDevice):
				slog.Debug("no answer", "address", addr)
			default:
				return console.Exit(1, "bus error while probing %#02x: %v", addr, err)
			}
		}
		console.PInfof(console.PictoFinish, "scan complete, %d device(s) found", found)
		return nil
	},
}
