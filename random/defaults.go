package random

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/safing/securerandom/config"
	"github.com/safing/securerandom/generator"
	"github.com/safing/securerandom/log"
	"github.com/safing/securerandom/rng"
)

// Candidate is a named constructor for a default entropy source.
type Candidate struct {
	Name string
	New  func() generator.Generator
}

// DefaultGenerators lists the entropy sources New probes, in order, when no
// generator is given. The first supported one is used.
var DefaultGenerators = []Candidate{
	{
		Name: "internal",
		New:  func() generator.Generator { return generator.NewInternal() },
	},
	{
		Name: "getrandom",
		New:  func() generator.Generator { return generator.NewGetrandom(false) },
	},
	{
		Name: "device",
		New:  func() generator.Generator { return generator.NewDeviceReader(devicePath()) },
	},
	{
		Name: "fortuna",
		New:  func() generator.Generator { return rng.NewSource() },
	},
	{
		Name: "chacha20",
		New:  func() generator.Generator { return generator.NewChaCha20() },
	},
}

var (
	disabledGenerators config.StringArrayOption
	devicePath         config.StringOption
)

func init() {
	err := config.Register(&config.Option{
		Name:            "Disabled Generators",
		Key:             "random/disabled_generators",
		Description:     "Default entropy sources that must not be used, by name.",
		ExpertiseLevel:  config.ExpertiseLevelExpert,
		OptType:         config.OptTypeStringArray,
		DefaultValue:    []string{},
		ValidationRegex: "^[a-z0-9]+$",
	})
	if err != nil {
		log.Errorf("random: failed to register option: %s", err)
	}
	disabledGenerators = config.Concurrent.GetAsStringArray("random/disabled_generators", []string{})

	err = config.Register(&config.Option{
		Name:            "Random Device",
		Key:             "random/device_path",
		Description:     "Device file read by the device entropy source.",
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		OptType:         config.OptTypeString,
		DefaultValue:    generator.DevURandom,
		ValidationRegex: "^/.+$",
	})
	if err != nil {
		log.Errorf("random: failed to register option: %s", err)
	}
	devicePath = config.Concurrent.GetAsString("random/device_path", generator.DevURandom)
}

func defaultGenerator() (generator.Generator, error) {
	disabled := disabledGenerators()

	var result *multierror.Error
	for _, candidate := range DefaultGenerators {
		if slices.Contains(disabled, candidate.Name) {
			log.Tracef("random: skipping disabled generator %s", candidate.Name)
			continue
		}

		g := candidate.New()
		if g.IsSupported() {
			log.Debugf("random: using %s generator", candidate.Name)
			return g, nil
		}
		result = multierror.Append(result, fmt.Errorf("%s: %w", candidate.Name, generator.ErrUnsupported))
	}

	if result == nil {
		return nil, fmt.Errorf("%w: no default generators available", ErrUnsupported)
	}
	return nil, fmt.Errorf("%w: default generators are not supported by the system: %w", ErrUnsupported, result)
}
