package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/herlein/govalon/pkg/valon"
)

// ChannelConfig holds everything needed to reproduce one synthesizer
// channel: the output settings plus the tuning options they were reached
// with.
type ChannelConfig struct {
	Label        string         `json:"label" yaml:"label"`
	FrequencyMHz float64        `json:"frequency_mhz" yaml:"frequency_mhz"`
	RFLevelDBm   int            `json:"rf_level_dbm" yaml:"rf_level_dbm"`
	Options      valon.Options  `json:"options" yaml:"options"`
	VCORange     valon.VCORange `json:"vco_range" yaml:"vco_range"`

	// PhaseLocked records whether the channel had lock at dump time. It
	// is informational and never written back.
	PhaseLocked bool `json:"phase_locked" yaml:"phase_locked"`
}

// DeviceConfig is a full snapshot of a synthesizer.
type DeviceConfig struct {
	Timestamp   time.Time     `json:"timestamp" yaml:"timestamp"`
	ReferenceHz uint32        `json:"reference_hz" yaml:"reference_hz"`
	ExternalRef bool          `json:"external_ref" yaml:"external_ref"`
	ChannelA    ChannelConfig `json:"channel_a" yaml:"channel_a"`
	ChannelB    ChannelConfig `json:"channel_b" yaml:"channel_b"`
}

// DumpFromDevice reads the complete configuration of a synthesizer.
func DumpFromDevice(synth *valon.Synth) (*DeviceConfig, error) {
	referenceHz, err := synth.GetReference()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference: %w", err)
	}
	external, err := synth.GetRefSelect()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference select: %w", err)
	}

	channelA, err := dumpChannel(synth, valon.ChannelA)
	if err != nil {
		return nil, fmt.Errorf("channel A: %w", err)
	}
	channelB, err := dumpChannel(synth, valon.ChannelB)
	if err != nil {
		return nil, fmt.Errorf("channel B: %w", err)
	}

	return &DeviceConfig{
		Timestamp:   time.Now(),
		ReferenceHz: referenceHz,
		ExternalRef: external,
		ChannelA:    *channelA,
		ChannelB:    *channelB,
	}, nil
}

func dumpChannel(synth *valon.Synth, ch valon.Channel) (*ChannelConfig, error) {
	label, err := synth.GetLabel(ch)
	if err != nil {
		return nil, err
	}
	frequencyMHz, err := synth.GetFrequency(ch)
	if err != nil {
		return nil, err
	}
	levelDBm, err := synth.GetRFLevel(ch)
	if err != nil {
		return nil, err
	}
	options, err := synth.GetOptions(ch)
	if err != nil {
		return nil, err
	}
	vcoRange, err := synth.GetVCORange(ch)
	if err != nil {
		return nil, err
	}
	locked, err := synth.GetPhaseLock(ch)
	if err != nil {
		return nil, err
	}

	return &ChannelConfig{
		Label:        trimLabel(label),
		FrequencyMHz: frequencyMHz,
		RFLevelDBm:   levelDBm,
		Options:      options,
		VCORange:     vcoRange,
		PhaseLocked:  locked,
	}, nil
}

// ApplyToDevice writes a snapshot back to a synthesizer. The frequency is
// programmed last on each channel because the tuning solution depends on
// the reference, the options and the VCO range already being in place.
func ApplyToDevice(synth *valon.Synth, configuration *DeviceConfig) error {
	if err := synth.SetRefSelect(configuration.ExternalRef); err != nil {
		return fmt.Errorf("failed to set reference select: %w", err)
	}
	if err := synth.SetReference(configuration.ReferenceHz); err != nil {
		return fmt.Errorf("failed to set reference: %w", err)
	}

	if err := applyChannel(synth, valon.ChannelA, &configuration.ChannelA); err != nil {
		return fmt.Errorf("channel A: %w", err)
	}
	if err := applyChannel(synth, valon.ChannelB, &configuration.ChannelB); err != nil {
		return fmt.Errorf("channel B: %w", err)
	}

	return nil
}

func applyChannel(synth *valon.Synth, ch valon.Channel, channel *ChannelConfig) error {
	if err := synth.SetVCORange(ch, channel.VCORange); err != nil {
		return err
	}
	if err := synth.SetOptions(ch, channel.Options); err != nil {
		return err
	}
	if err := synth.SetLabel(ch, channel.Label); err != nil {
		return err
	}
	if err := synth.SetRFLevel(ch, channel.RFLevelDBm); err != nil {
		return err
	}
	if err := synth.SetFrequency(ch, channel.FrequencyMHz); err != nil {
		return err
	}
	return nil
}

// Channel returns the snapshot for one channel.
func (c *DeviceConfig) Channel(ch valon.Channel) *ChannelConfig {
	if ch == valon.ChannelB {
		return &c.ChannelB
	}
	return &c.ChannelA
}

// ReferenceMHz returns the configured reference frequency in MHz.
func (c *DeviceConfig) ReferenceMHz() float64 {
	return float64(c.ReferenceHz) / 1e6
}

// ReferenceSourceString returns a human-readable reference source.
func (c *DeviceConfig) ReferenceSourceString() string {
	if c.ExternalRef {
		return "external"
	}
	return "internal"
}

// trimLabel strips the zero and space padding the device stores after
// short labels.
func trimLabel(raw string) string {
	return strings.TrimRight(raw, "\x00 ")
}
