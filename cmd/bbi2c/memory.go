package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/bbi2c/cmd/bbi2c/console"
	"github.com/mklimuk/bbi2c/master"
	"github.com/mklimuk/bbi2c/memory/eeprom24"
)

var memCmd = &cli.Command{
	Name:    "memory",
	Aliases: []string{"mem"},
	Usage:   "EEPROM memory operations",
	Subcommands: []*cli.Command{
		memReadCmd,
		memWriteCmd,
		memDumpCmd,
	},
}

func openDevice(c *cli.Context) (*master.Device, *config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	lines, err := openLines(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open bus lines: %w", err)
	}
	dev, err := master.NewRegistry(1).Register(lines, cfg.Slave)
	if err != nil {
		return nil, nil, fmt.Errorf("could not register device: %w", err)
	}
	return dev, cfg, nil
}

var memReadCmd = &cli.Command{
	Name:  "read",
	Usage: "read EEPROM memory",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "address", Usage: "memory address to read", Required: true},
		&cli.IntFlag{Name: "length", Usage: "number of bytes to read", Value: 16},
	},
	Action: func(c *cli.Context) error {
		dev, cfg, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%v", err)
		}
		addr := c.Int("address")
		length := c.Int("length")
		if addr < 0 || uint(addr) >= cfg.EEPROM.Size {
			return console.Exit(1, "address out of range: %#x", addr)
		}
		if length <= 0 || length > 256 {
			return console.Exit(1, "length out of range: %d", length)
		}
		buf := make([]byte, length)
		if err = dev.ReadFromAddr(uint32(addr), buf); err != nil {
			return console.Exit(1, "read failed: %v", err)
		}
		console.Printf("%s", hex.Dump(buf))
		return nil
	},
}

var memWriteCmd = &cli.Command{
	Name:  "write",
	Usage: "write EEPROM memory",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "address", Usage: "memory address to write", Required: true},
		&cli.StringFlag{Name: "data", Usage: "hex bytes to write (e.g. '01FF23')", Required: true},
	},
	Action: func(c *cli.Context) error {
		data, err := hex.DecodeString(c.String("data"))
		if err != nil {
			return console.Exit(1, "invalid data hex string: %v", err)
		}
		addr := c.Int("address")
		dev, cfg, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%v", err)
		}
		answer, err := console.YesOrNo(fmt.Sprintf("write %d byte(s) at %#05x?", len(data), addr))
		if err != nil {
			return console.Exit(1, "could not read answer: %v", err)
		}
		if answer == console.No {
			console.PInfof(console.PictoStop, "aborted")
			return nil
		}
		mem, err := eeprom24.New(dev, cfg.EEPROM)
		if err != nil {
			return console.Exit(1, "invalid EEPROM geometry: %v", err)
		}
		if _, err = mem.Seek(int64(addr), io.SeekStart); err != nil {
			return console.Exit(1, "%v", err)
		}
		n, err := mem.Write(data)
		if err != nil {
			return console.Exit(1, "wrote %d byte(s), then: %v", n, err)
		}
		console.PInfof(console.PictoFinish, "wrote %d byte(s) at %#05x", n, addr)
		return nil
	},
}

var memDumpCmd = &cli.Command{
	Name:  "dump",
	Usage: "dump the whole EEPROM array",
	Action: func(c *cli.Context) error {
		dev, cfg, err := openDevice(c)
		if err != nil {
			return console.Exit(1, "%v", err)
		}
		mem, err := eeprom24.New(dev, cfg.EEPROM)
		if err != nil {
			return console.Exit(1, "invalid EEPROM geometry: %v", err)
		}
		data, err := io.ReadAll(mem)
		if err != nil {
			return console.Exit(1, "dump failed: %v", err)
		}
		console.Printf("%s", hex.Dump(data))
		return nil
	},
}
