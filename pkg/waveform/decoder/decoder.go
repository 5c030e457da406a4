package decoder

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
	"github.com/xaionaro-go/waveformview/pkg/waveform/registry"
)

var (
	lastSuccessfulDecoderFactory       registry.DecoderFactory
	lastSuccessfulDecoderFactoryLocker sync.Mutex
)

func getLastSuccessfulDecoderFactory() registry.DecoderFactory {
	lastSuccessfulDecoderFactoryLocker.Lock()
	defer lastSuccessfulDecoderFactoryLocker.Unlock()
	return lastSuccessfulDecoderFactory
}

// DecodeAuto builds a dataset using the first registered decoder that
// manages to decode the stream. The stream is rewound before every
// attempt.
func DecodeAuto(
	ctx context.Context,
	r io.ReadSeeker,
	scale uint64,
) (*waveform.Data, error) {
	var mErr *multierror.Error
	tryFactory := func(factory registry.DecoderFactory) *waveform.Data {
		dec, err := factory.NewDecoder()
		logger.Debugf(ctx, "initializing decoder %T result is %v", dec, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to initialize %T: %w", factory, err))
			return nil
		}

		if _, err := r.Seek(0, io.SeekStart); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to rewind the input: %w", err))
			return nil
		}

		data, err := dec.Decode(ctx, r, scale)
		logger.Debugf(ctx, "decoding with %T result is %v", dec, err)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to decode using %T: %w", dec, err))
			return nil
		}
		return data
	}

	if factory := getLastSuccessfulDecoderFactory(); factory != nil {
		if data := tryFactory(factory); data != nil {
			return data, nil
		}
	}

	for _, factory := range registry.DecoderFactories() {
		data := tryFactory(factory)
		if data == nil {
			continue
		}

		lastSuccessfulDecoderFactoryLocker.Lock()
		defer lastSuccessfulDecoderFactoryLocker.Unlock()
		lastSuccessfulDecoderFactory = factory
		return data, nil
	}

	if mErr == nil {
		return nil, fmt.Errorf("no decoders are registered")
	}
	return nil, fmt.Errorf("was unable to decode the input with any decoder: %w", mErr.ErrorOrNil())
}

// DecodeByName builds a dataset using the decoder registered under the
// given name; it also works for the decoders excluded from
// auto-detection.
func DecodeByName(
	ctx context.Context,
	name string,
	r io.Reader,
	scale uint64,
) (*waveform.Data, error) {
	factory, err := registry.DecoderFactoryByName(name)
	if err != nil {
		return nil, err
	}
	return Decode(ctx, factory, r, scale)
}

// Decode builds a dataset using a decoder of the given factory.
func Decode(
	ctx context.Context,
	factory registry.DecoderFactory,
	r io.Reader,
	scale uint64,
) (*waveform.Data, error) {
	dec, err := factory.NewDecoder()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize %T: %w", factory, err)
	}
	data, err := dec.Decode(ctx, r, scale)
	if err != nil {
		return nil, fmt.Errorf("unable to decode using %T: %w", dec, err)
	}
	return data, nil
}
