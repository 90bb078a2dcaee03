package standardize

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StandardizerFactory is a function that creates a standardizer from a
// platform configuration.
type StandardizerFactory func(config PlatformConfig) (Standardizer, error)

// factories stores registered standardizer factories by type
var factories = make(map[string]StandardizerFactory)

// RegisterPlatformType registers a factory function for a platform type.
// This allows the builtin package to register its standardizers without
// creating import cycles.
func RegisterPlatformType(platformType string, factory StandardizerFactory) {
	factories[platformType] = factory
	logrus.Debugf("registered platform type: %s", platformType)
}

// CreateStandardizer creates a standardizer instance based on the configuration.
// Returns an error if the platform type is unknown. Disabled platforms yield
// a nil standardizer and no error.
func CreateStandardizer(config PlatformConfig) (Standardizer, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled platform: %s", config.ID)
		return nil, nil
	}

	logrus.Infof("creating standardizer: id=%s, type=%s", config.ID, config.Type)

	factory, exists := factories[config.Type]
	if !exists {
		return nil, fmt.Errorf("unknown platform type: %s", config.Type)
	}

	return factory(config)
}

// RegisterStandardizers creates standardizers from the given configs and
// registers them with the registry. A single broken config entry fails the
// whole registration: platform wiring errors are startup errors, not
// skip-and-continue conditions.
func RegisterStandardizers(registry *Registry, configs []PlatformConfig) error {
	registered := 0
	for _, config := range configs {
		s, err := CreateStandardizer(config)
		if err != nil {
			return fmt.Errorf("failed to create standardizer %s: %w", config.ID, err)
		}
		if s == nil {
			continue
		}

		if err := registry.Register(s); err != nil {
			return fmt.Errorf("failed to register standardizer %s: %w", config.ID, err)
		}
		registered++
	}

	logrus.Infof("registered %d standardizers", registered)
	return nil
}
