// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package standardize

import (
	"testing"

	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// stubStandardizer is a minimal standardizer for registry tests.
type stubStandardizer struct {
	platform schema.Platform
	social   bool
}

func (s *stubStandardizer) Platform() schema.Platform { return s.platform }
func (s *stubStandardizer) SocialGraph() bool         { return s.social }
func (s *stubStandardizer) Config() PlatformConfig    { return PlatformConfig{} }
func (s *stubStandardizer) Discover(*rawstore.Store) ([]string, error) {
	return nil, nil
}
func (s *stubStandardizer) Standardize(*rawstore.Store, string) ([]schema.Activity, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubStandardizer{platform: schema.PlatformChessCom}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := registry.Register(&stubStandardizer{platform: schema.PlatformChessCom}); err == nil {
		t.Error("duplicate Register() succeeded, expected an error")
	}

	if got := registry.Get(schema.PlatformChessCom); got == nil {
		t.Error("Get() = nil for a registered platform")
	}
	if got := registry.Get(schema.PlatformOpenDota); got != nil {
		t.Error("Get() != nil for an unregistered platform")
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", registry.Count())
	}
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Unregister(schema.PlatformRiotLoL); err == nil {
		t.Error("Unregister() of an unknown platform succeeded, expected an error")
	}

	if err := registry.Register(&stubStandardizer{platform: schema.PlatformRiotLoL}); err != nil {
		t.Fatal(err)
	}
	if err := registry.Unregister(schema.PlatformRiotLoL); err != nil {
		t.Errorf("Unregister() error: %v", err)
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d after unregister, expected 0", registry.Count())
	}
}

func TestRegistryGetAllSorted(t *testing.T) {
	registry := NewRegistry()
	for _, p := range []schema.Platform{schema.PlatformRiotLoL, schema.PlatformChessCom, schema.PlatformOpenDota} {
		if err := registry.Register(&stubStandardizer{platform: p}); err != nil {
			t.Fatal(err)
		}
	}

	all := registry.GetAll()
	want := []schema.Platform{schema.PlatformChessCom, schema.PlatformOpenDota, schema.PlatformRiotLoL}
	for i, s := range all {
		if s.Platform() != want[i] {
			t.Errorf("GetAll()[%d] = %s, expected %s", i, s.Platform(), want[i])
		}
	}
}

func TestRegistrySocialPlatforms(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&stubStandardizer{platform: schema.PlatformChessCom}); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(&stubStandardizer{platform: schema.PlatformOpenDota, social: true}); err != nil {
		t.Fatal(err)
	}

	capable := registry.SocialPlatforms()
	if !capable[schema.PlatformOpenDota] {
		t.Error("SocialPlatforms() missing opendota")
	}
	if capable[schema.PlatformChessCom] {
		t.Error("SocialPlatforms() includes chess_com, expected not")
	}
}

func TestRegisterStandardizers(t *testing.T) {
	RegisterPlatformType("stub_type", func(config PlatformConfig) (Standardizer, error) {
		return &stubStandardizer{platform: schema.Platform(config.GetString("platform", "chess_com"))}, nil
	})

	t.Run("disabled platforms are skipped", func(t *testing.T) {
		registry := NewRegistry()
		err := RegisterStandardizers(registry, []PlatformConfig{
			{ID: "on", Type: "stub_type", Enabled: true},
			{ID: "off", Type: "stub_type", Enabled: false},
		})
		if err != nil {
			t.Fatalf("RegisterStandardizers() error: %v", err)
		}
		if registry.Count() != 1 {
			t.Errorf("Count() = %d, expected 1", registry.Count())
		}
	})

	t.Run("unknown type fails the whole registration", func(t *testing.T) {
		registry := NewRegistry()
		err := RegisterStandardizers(registry, []PlatformConfig{
			{ID: "good", Type: "stub_type", Enabled: true},
			{ID: "bad", Type: "no_such_type", Enabled: true},
		})
		if err == nil {
			t.Error("RegisterStandardizers() succeeded with an unknown type, expected an error")
		}
	})
}
