package main

import (
	"fmt"
	"os"

	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/bbi2c"
	"github.com/mklimuk/bbi2c/gpio"
	"github.com/mklimuk/bbi2c/memory/eeprom24"
)

type config struct {
	// Driver selects the line backend: "periph" (default) drives host
	// pins through periph.io, "nanopi" goes through the gobot NanoPi
	// adaptor.
	Driver string            `yaml:"driver"`
	Bus    bbi2c.BusConfig   `yaml:"bus"`
	Slave  bbi2c.SlaveConfig `yaml:"slave"`
	EEPROM eeprom24.Config   `yaml:"eeprom"`
}

func loadConfig(path string) (*config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	cfg := config{
		Driver: "periph",
		EEPROM: eeprom24.Conf24C256,
	}
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	if cfg.Slave.AddrBytes == 0 {
		cfg.Slave.AddrBytes = 2
	}
	return &cfg, nil
}

func openLines(cfg *config) (bbi2c.Lines, error) {
	switch cfg.Driver {
	case "", "periph":
		return gpio.NewPeriphLines(cfg.Bus)
	case "nanopi":
		adaptor := nanopi.NewNeoAdaptor()
		if err := adaptor.Connect(); err != nil {
			return nil, fmt.Errorf("could not connect adaptor: %w", err)
		}
		return gpio.NewGobotLines(adaptor, cfg.Bus), nil
	default:
		return nil, fmt.Errorf("unknown line driver %q", cfg.Driver)
	}
}
