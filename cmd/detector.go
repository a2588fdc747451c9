package cmd

import (
	"github.com/S2G-Investments/headshot-processor/internal/config"
	"github.com/S2G-Investments/headshot-processor/internal/detector"
	"github.com/S2G-Investments/headshot-processor/internal/detector/haar"
	"github.com/S2G-Investments/headshot-processor/internal/detector/pigo"
)

// newDetector loads the configured face detector backend.
func newDetector(cfg config.DetectorConfig) (detector.Detector, error) {
	params := cfg.Params()
	if cfg.Backend == detector.BackendPigo {
		d, err := pigo.New(params)
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	d, err := haar.New(params)
	if err != nil {
		return nil, err
	}
	return d, nil
}
