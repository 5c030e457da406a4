package overview

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/xaionaro-go/waveformview/pkg/audio/types"
	"github.com/xaionaro-go/waveformview/pkg/waveform"
)

type callRecorder struct {
	calls []string
}

func (r *callRecorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *callRecorder) reset() {
	r.calls = nil
}

type containerMock struct {
	width  int
	height int
}

func (c *containerMock) Size() (int, int) {
	return c.width, c.height
}

type playerMock struct {
	recorder    *callRecorder
	currentTime float64
	seeks       []float64
}

func (p *playerMock) CurrentTime(context.Context) float64 {
	return p.currentTime
}

func (p *playerMock) Seek(_ context.Context, t float64) error {
	p.recorder.add("player.Seek(%g)", t)
	p.seeks = append(p.seeks, t)
	return nil
}

type datasetMock struct {
	sampleRate    types.SampleRate
	totalSamples  uint64
	scale         uint64
	resampleCount *int
	resampleErr   *error
}

var _ waveform.Dataset = (*datasetMock)(nil)

func newDatasetMock(sampleRate types.SampleRate, duration float64) *datasetMock {
	var (
		count int
		err   error
	)
	return &datasetMock{
		sampleRate:    sampleRate,
		totalSamples:  uint64(float64(sampleRate) * duration),
		scale:         1,
		resampleCount: &count,
		resampleErr:   &err,
	}
}

func (d *datasetMock) SampleRate() types.SampleRate {
	return d.sampleRate
}

func (d *datasetMock) Scale() uint64 {
	return d.scale
}

func (d *datasetMock) Length() int {
	return int(math.Ceil(float64(d.totalSamples) / float64(d.scale)))
}

func (d *datasetMock) Duration() float64 {
	return float64(d.totalSamples) / float64(d.sampleRate)
}

func (d *datasetMock) Resample(width int) (waveform.Dataset, error) {
	*d.resampleCount++
	if *d.resampleErr != nil {
		return nil, *d.resampleErr
	}
	if width <= 0 {
		return nil, fmt.Errorf("invalid width: %d", width)
	}
	result := *d
	result.scale = d.totalSamples / uint64(width)
	return &result, nil
}

type layerFactoryMock struct {
	recorder *callRecorder

	surface   *surfaceMock
	waveform  *waveformLayerMock
	highlight *highlightLayerMock
	points    *markersLayerMock
	segments  *markersLayerMock
	playhead  *playheadLayerMock

	noMarkers bool
}

var _ LayerFactory = (*layerFactoryMock)(nil)

func newLayerFactoryMock() *layerFactoryMock {
	return &layerFactoryMock{recorder: &callRecorder{}}
}

func (f *layerFactoryMock) NewSurface(_ context.Context, width, height int) (Surface, error) {
	f.surface = &surfaceMock{recorder: f.recorder, width: width, height: height}
	return f.surface, nil
}

func (f *layerFactoryMock) NewWaveformLayer(_ context.Context, view View, c color.Color) (WaveformLayer, error) {
	f.waveform = &waveformLayerMock{recorder: f.recorder, view: view, color: c}
	return f.waveform, nil
}

func (f *layerFactoryMock) NewHighlightLayer(context.Context, View) (HighlightLayer, error) {
	f.highlight = &highlightLayerMock{recorder: f.recorder}
	return f.highlight, nil
}

func (f *layerFactoryMock) NewPointsLayer(context.Context, View) (MarkersLayer, error) {
	if f.noMarkers {
		return nil, nil
	}
	f.points = &markersLayerMock{recorder: f.recorder, name: "points"}
	return f.points, nil
}

func (f *layerFactoryMock) NewSegmentsLayer(context.Context, View) (MarkersLayer, error) {
	if f.noMarkers {
		return nil, nil
	}
	f.segments = &markersLayerMock{recorder: f.recorder, name: "segments"}
	return f.segments, nil
}

func (f *layerFactoryMock) NewPlayheadLayer(_ context.Context, _ View, t float64) (PlayheadLayer, error) {
	f.playhead = &playheadLayerMock{recorder: f.recorder, time: t}
	return f.playhead, nil
}

type surfaceMock struct {
	recorder     *callRecorder
	width        int
	height       int
	destroyCount int
}

func (s *surfaceMock) SetSize(width, height int) {
	s.recorder.add("surface.SetSize(%d, %d)", width, height)
	s.width, s.height = width, height
}

func (s *surfaceMock) Destroy() error {
	s.recorder.add("surface.Destroy")
	s.destroyCount++
	return nil
}

type waveformLayerMock struct {
	recorder *callRecorder
	view     View
	data     waveform.Dataset
	color    color.Color
}

func (l *waveformLayerMock) Draw(context.Context) error {
	l.recorder.add("waveform.Draw")
	return nil
}

func (l *waveformLayerMock) SetWaveformData(data waveform.Dataset) {
	l.recorder.add("waveform.SetWaveformData(%d)", data.Scale())
	l.data = data
}

func (l *waveformLayerMock) SetColor(c color.Color) {
	l.recorder.add("waveform.SetColor")
	l.color = c
}

type highlightLayerMock struct {
	recorder *callRecorder
	rect     HighlightRect
	setCount int
}

func (l *highlightLayerMock) Draw(context.Context) error {
	l.recorder.add("highlight.Draw")
	return nil
}

func (l *highlightLayerMock) SetRect(rect HighlightRect) {
	l.recorder.add("highlight.SetRect(%d, %d)", rect.X, rect.Width)
	l.rect = rect
	l.setCount++
}

type markersLayerMock struct {
	recorder *callRecorder
	name     string
}

func (l *markersLayerMock) Draw(context.Context) error {
	l.recorder.add("%s.Draw", l.name)
	return nil
}

func (l *markersLayerMock) UpdateMarkers(_ context.Context, startTime, endTime float64) error {
	l.recorder.add("%s.UpdateMarkers(%g, %g)", l.name, startTime, endTime)
	return nil
}

type playheadLayerMock struct {
	recorder *callRecorder
	time     float64
	playing  bool
	closed   int
}

func (l *playheadLayerMock) Draw(context.Context) error {
	l.recorder.add("playhead.Draw")
	return nil
}

func (l *playheadLayerMock) Play(_ context.Context, t float64) error {
	l.recorder.add("playhead.Play(%g)", t)
	l.time, l.playing = t, true
	return nil
}

func (l *playheadLayerMock) Pause(_ context.Context, t float64) error {
	l.recorder.add("playhead.Pause(%g)", t)
	l.time, l.playing = t, false
	return nil
}

func (l *playheadLayerMock) UpdatePlayheadTime(_ context.Context, t float64) error {
	l.recorder.add("playhead.UpdatePlayheadTime(%g)", t)
	l.time = t
	return nil
}

func (l *playheadLayerMock) Close() error {
	l.closed++
	return nil
}
