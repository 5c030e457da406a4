package overview

import (
	"context"
	"image/color"

	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type LayerFactoryDummy struct{}

var _ LayerFactory = LayerFactoryDummy{}

func (LayerFactoryDummy) NewSurface(context.Context, int, int) (Surface, error) {
	return SurfaceDummy{}, nil
}

func (LayerFactoryDummy) NewWaveformLayer(context.Context, View, color.Color) (WaveformLayer, error) {
	return LayerDummy{}, nil
}

func (LayerFactoryDummy) NewHighlightLayer(context.Context, View) (HighlightLayer, error) {
	return LayerDummy{}, nil
}

func (LayerFactoryDummy) NewPointsLayer(context.Context, View) (MarkersLayer, error) {
	return LayerDummy{}, nil
}

func (LayerFactoryDummy) NewSegmentsLayer(context.Context, View) (MarkersLayer, error) {
	return LayerDummy{}, nil
}

func (LayerFactoryDummy) NewPlayheadLayer(context.Context, View, float64) (PlayheadLayer, error) {
	return LayerDummy{}, nil
}

type SurfaceDummy struct{}

var _ Surface = SurfaceDummy{}

func (SurfaceDummy) SetSize(int, int) {}

func (SurfaceDummy) Destroy() error {
	return nil
}

// LayerDummy implements every layer interface and draws nothing.
type LayerDummy struct{}

var (
	_ WaveformLayer  = LayerDummy{}
	_ HighlightLayer = LayerDummy{}
	_ MarkersLayer   = LayerDummy{}
	_ PlayheadLayer  = LayerDummy{}
)

func (LayerDummy) Draw(context.Context) error {
	return nil
}

func (LayerDummy) SetWaveformData(waveform.Dataset) {}

func (LayerDummy) SetColor(color.Color) {}

func (LayerDummy) SetRect(HighlightRect) {}

func (LayerDummy) UpdateMarkers(context.Context, float64, float64) error {
	return nil
}

func (LayerDummy) Play(context.Context, float64) error {
	return nil
}

func (LayerDummy) Pause(context.Context, float64) error {
	return nil
}

func (LayerDummy) UpdatePlayheadTime(context.Context, float64) error {
	return nil
}
