package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type Decoder interface {
	// Decode reads the whole audio stream and summarizes it into a
	// dataset with the given amount of samples per pixel.
	Decode(ctx context.Context, r io.Reader, scale uint64) (*waveform.Data, error)
}

type DecoderFactory interface {
	NewDecoder() (Decoder, error)
}

type registration struct {
	Name     string
	Priority int

	// AutoDetect is false for the decoders that accept any input (like
	// headerless PCM) and therefore cannot tell whether the input is
	// of their format.
	AutoDetect bool

	DecoderFactory
}

var (
	decoderFactoryRegistry       = map[string]registration{}
	decoderFactoryRegistryLocker sync.Mutex
)

// RegisterDecoderFactory registers a decoder that is tried by format
// auto-detection (in the order of priority, the highest first) and may
// also be requested explicitly by name.
func RegisterDecoderFactory(
	name string,
	priority int,
	decoderFactory DecoderFactory,
) {
	register(registration{
		Name:           name,
		Priority:       priority,
		AutoDetect:     true,
		DecoderFactory: decoderFactory,
	})
}

// RegisterExplicitDecoderFactory registers a decoder that is used only
// when requested by name.
func RegisterExplicitDecoderFactory(
	name string,
	decoderFactory DecoderFactory,
) {
	register(registration{
		Name:           name,
		DecoderFactory: decoderFactory,
	})
}

func register(r registration) {
	if r.Name == "" {
		panic(fmt.Errorf("a decoder factory of type %T has an empty name", r.DecoderFactory))
	}
	decoderFactoryRegistryLocker.Lock()
	defer decoderFactoryRegistryLocker.Unlock()
	if old, ok := decoderFactoryRegistry[r.Name]; ok {
		panic(fmt.Errorf("there is already registered a decoder factory '%s' (%T)", r.Name, old.DecoderFactory))
	}
	decoderFactoryRegistry[r.Name] = r
}

// DecoderFactories returns the factories used by auto-detection, the
// highest priority first. Factories of the same priority are ordered by
// name.
func DecoderFactories() []DecoderFactory {
	decoderFactoryRegistryLocker.Lock()
	var registrations []registration
	for _, r := range decoderFactoryRegistry {
		if r.AutoDetect {
			registrations = append(registrations, r)
		}
	}
	decoderFactoryRegistryLocker.Unlock()

	sort.Slice(registrations, func(i, j int) bool {
		if registrations[i].Priority != registrations[j].Priority {
			return registrations[i].Priority > registrations[j].Priority
		}
		return registrations[i].Name < registrations[j].Name
	})

	factories := make([]DecoderFactory, 0, len(registrations))
	for _, r := range registrations {
		factories = append(factories, r.DecoderFactory)
	}
	return factories
}

// DecoderFactoryByName returns the factory registered under the name,
// including the ones not used by auto-detection.
func DecoderFactoryByName(name string) (DecoderFactory, error) {
	decoderFactoryRegistryLocker.Lock()
	defer decoderFactoryRegistryLocker.Unlock()
	r, ok := decoderFactoryRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown decoder '%s', known decoders: %v", name, decoderNamesNoLock())
	}
	return r.DecoderFactory, nil
}

// DecoderNames returns the names of all the registered decoders, sorted.
func DecoderNames() []string {
	decoderFactoryRegistryLocker.Lock()
	defer decoderFactoryRegistryLocker.Unlock()
	return decoderNamesNoLock()
}

func decoderNamesNoLock() []string {
	names := make([]string, 0, len(decoderFactoryRegistry))
	for name := range decoderFactoryRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
