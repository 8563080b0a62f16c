package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmhobi7/apds9960"
)

// profile is a yaml sensor configuration applied on top of the power-on
// defaults. Sections left out of the file are not touched.
type profile struct {
	Rotation  *int              `yaml:"rotation"`
	Gesture   *gestureProfile   `yaml:"gesture"`
	Proximity *proximityProfile `yaml:"proximity"`
	Light     *lightProfile     `yaml:"light"`
}

type gestureProfile struct {
	Gain           byte `yaml:"gain"`
	LedDrive       byte `yaml:"led_drive"`
	WaitTime       byte `yaml:"wait_time"`
	EntryThreshold byte `yaml:"entry_threshold"`
	ExitThreshold  byte `yaml:"exit_threshold"`
	PulseCount     byte `yaml:"pulse_count"`
	PulseLength    byte `yaml:"pulse_length"`
}

type proximityProfile struct {
	Gain          byte `yaml:"gain"`
	LowThreshold  byte `yaml:"low_threshold"`
	HighThreshold byte `yaml:"high_threshold"`
	PulseCount    byte `yaml:"pulse_count"`
	PulseLength   byte `yaml:"pulse_length"`
}

type lightProfile struct {
	Gain            byte `yaml:"gain"`
	IntegrationTime byte `yaml:"integration_time"`
}

func loadProfile(path string) (*profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read profile %s: %w", path, err)
	}
	var p profile
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("could not parse profile %s: %w", path, err)
	}
	return &p, nil
}

func (p *profile) apply(ctx context.Context, d *apds9960.Device) error {
	if p.Rotation != nil {
		if err := d.SetRotation(*p.Rotation); err != nil {
			return err
		}
	}
	if g := p.Gesture; g != nil {
		if err := d.SetGestureGain(ctx, apds9960.GestureGain(g.Gain)); err != nil {
			return err
		}
		if err := d.SetGestureLedDrive(ctx, apds9960.LedDrive(g.LedDrive)); err != nil {
			return err
		}
		if err := d.SetGestureWaitTime(ctx, g.WaitTime); err != nil {
			return err
		}
		if err := d.SetGestureProximityEntryThreshold(ctx, g.EntryThreshold); err != nil {
			return err
		}
		if err := d.SetGestureProximityExitThreshold(ctx, g.ExitThreshold); err != nil {
			return err
		}
		if err := d.SetGesturePulse(ctx, g.PulseCount, g.PulseLength); err != nil {
			return err
		}
	}
	if pr := p.Proximity; pr != nil {
		if err := d.SetProximityGain(ctx, apds9960.ProximityGain(pr.Gain)); err != nil {
			return err
		}
		if err := d.SetProximityLowThreshold(ctx, pr.LowThreshold); err != nil {
			return err
		}
		if err := d.SetProximityHighThreshold(ctx, pr.HighThreshold); err != nil {
			return err
		}
		if err := d.SetProximityPulse(ctx, pr.PulseCount, pr.PulseLength); err != nil {
			return err
		}
	}
	if l := p.Light; l != nil {
		if err := d.SetLightGain(ctx, apds9960.LightGain(l.Gain)); err != nil {
			return err
		}
		if err := d.SetLightIntegrationTime(ctx, l.IntegrationTime); err != nil {
			return err
		}
	}
	return nil
}
