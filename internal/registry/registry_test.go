package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/dino-runner/internal/config"
	"github.com/vovakirdan/dino-runner/internal/runner"
)

func TestRegisterCreateList(t *testing.T) {
	var got Options
	Register("test-registry", "Test Runner", func(opts Options) (*runner.Simulation, error) {
		got = opts
		return runner.New(config.Default(), opts.Store, opts.Seed), nil
	})

	if !Exists("test-registry") {
		t.Fatal("registered variant should exist")
	}

	found := false
	for _, info := range List() {
		if info.ID == "test-registry" {
			found = true
			if info.Title != "Test Runner" {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List should include the registered variant")
	}

	store := runner.NewMemoryStore(70)
	sim, err := Create("test-registry", Options{Seed: 9, Store: store})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Seed != 9 || got.Store != store {
		t.Errorf("factory received %+v", got)
	}
	if sim.Snapshot().HighScore != 70 {
		t.Errorf("high score = %d, expected 70", sim.Snapshot().HighScore)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-variant", Options{})
	if !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, expected ErrUnknownVariant", err)
	}
}

func TestCreateWrapsFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register("test-broken", "Broken", func(Options) (*runner.Simulation, error) {
		return nil, boom
	})

	_, err := Create("test-broken", Options{})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, expected wrapped factory error", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(opts Options) (*runner.Simulation, error) { return nil, nil }
	Register("test-dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", "Dup", f)
}
