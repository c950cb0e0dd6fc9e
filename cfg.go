package main

import (
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/sim"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const configFile = "stealth.yaml"

// Load reads the mission from stealth.yaml next to the binary and falls
// back to the default mission when the file is missing or broken.
func Load() sim.Config {
	file, err := ebitenutil.OpenFile(configFile)
	if err != nil {
		log.WithError(err).Debug("no config file, using defaults")
		return sim.DefaultConfig()
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		log.WithError(err).Warn("failed reading config")
		return sim.DefaultConfig()
	}
	cfg, err := sim.ParseConfig(raw)
	if err != nil {
		log.WithError(err).Warn("bad config, using defaults")
		return sim.DefaultConfig()
	}
	return cfg
}

func loadFace(points float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return truetype.NewFace(tt, &truetype.Options{
		Size:       points,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	}), nil
}
