// Package probe reads technical metadata from local video files
// through ffprobe.
package probe

import (
	"context"
	"fmt"
	"math"

	"gopkg.in/vansante/go-ffprobe.v2"
)

// probeFunc defines the function signature used to execute ffprobe.
type probeFunc func(ctx context.Context, path string, extraOpts ...string) (*ffprobe.ProbeData, error)

// Prober inspects local media files. Durations are read lazily, one
// file at a time, so a page can render before every file is probed.
type Prober struct {
	probe probeFunc
}

// New creates a Prober backed by the ffprobe binary on PATH.
func New() *Prober {
	return &Prober{
		probe: ffprobe.ProbeURL,
	}
}

// Duration returns the playback length of the file in whole seconds.
func (p *Prober) Duration(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("probe: empty file path")
	}
	data, err := p.probe(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", path, err)
	}
	if data == nil || data.Format == nil {
		return 0, nil
	}
	return int(math.Round(data.Format.DurationSeconds)), nil
}

// VideoCodec returns the primary video codec name, or "" when the file
// has no video stream.
func (p *Prober) VideoCodec(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("probe: empty file path")
	}
	data, err := p.probe(ctx, path)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", path, err)
	}
	stream := data.FirstVideoStream()
	if stream == nil {
		return "", nil
	}
	if stream.CodecName != "" {
		return stream.CodecName, nil
	}
	return stream.CodecLongName, nil
}
