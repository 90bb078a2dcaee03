package builtin

import (
	"github.com/AccelByte/game-churn-features/pkg/standardize"
)

// RegisterBuiltinStandardizers registers all built-in platform types with
// the factory.
func RegisterBuiltinStandardizers() {
	standardize.RegisterPlatformType(TypeChessCom, func(config standardize.PlatformConfig) (standardize.Standardizer, error) {
		return NewChessComStandardizer(config), nil
	})

	standardize.RegisterPlatformType(TypeOpenDota, func(config standardize.PlatformConfig) (standardize.Standardizer, error) {
		return NewOpenDotaStandardizer(config), nil
	})

	standardize.RegisterPlatformType(TypeRiotLoL, func(config standardize.PlatformConfig) (standardize.Standardizer, error) {
		return NewRiotLoLStandardizer(config), nil
	})
}
