// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpuplot

import (
	"fmt"
	"os"

	"cogentcore.org/gpuplot/colormap"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"github.com/pelletier/go-toml/v2"
)

// Settings are the defaults that graphic constructors apply when an
// option is left unset. They persist as TOML via [SaveSettings] and
// [OpenSettings].
type Settings struct {

	// Colormap is the default colormap name, used for image and
	// volume display and for coloring collection members.
	Colormap string `toml:"colormap"`

	// Thickness is the default line thickness in pixels.
	Thickness float32 `toml:"thickness"`

	// PointSize is the default scatter point size in pixels.
	PointSize float32 `toml:"point-size"`

	// Marker is the default scatter marker shape name.
	Marker string `toml:"marker"`

	// FontSize is the default text font size in points.
	FontSize float32 `toml:"font-size"`

	// IsoThreshold is the default isosurface threshold for volumes
	// rendered in iso mode.
	IsoThreshold float32 `toml:"iso-threshold"`

	// TextureLimit caps the per-axis texture chunk size for image
	// and volume data. Zero uses the device limits unchanged.
	TextureLimit int `toml:"texture-limit"`

	// Debug enables logging of resource creation and uploads.
	Debug bool `toml:"debug"`
}

// Defaults sets the standard default values.
func (st *Settings) Defaults() {
	st.Colormap = "viridis"
	st.Thickness = 2
	st.PointSize = 10
	st.Marker = "circle"
	st.FontSize = 14
	st.IsoThreshold = 0.5
	st.TextureLimit = 0
	st.Debug = false
}

// DefaultSettings returns a new [Settings] with default values.
func DefaultSettings() *Settings {
	st := &Settings{}
	st.Defaults()
	return st
}

// Current is the settings in effect: graphic constructors read their
// defaults from here. Replace it with [SetCurrent] so dependent flags
// update too.
var Current = DefaultSettings()

// SetCurrent makes the given settings current and propagates them to
// dependent package flags.
func SetCurrent(st *Settings) {
	Current = st
	render.Debug = st.Debug
}

// Validate checks that the settings name known colormaps and markers
// and carry usable numeric values.
func (st *Settings) Validate() error {
	if _, err := colormap.FromName(st.Colormap); err != nil {
		return err
	}
	if _, err := features.MarkerCode(st.Marker); err != nil {
		return err
	}
	if st.Thickness <= 0 || st.PointSize <= 0 || st.FontSize <= 0 {
		return fmt.Errorf("gpuplot.Settings: %w: thickness, point size, and font size must be positive", features.ErrValue)
	}
	if st.TextureLimit < 0 {
		return fmt.Errorf("gpuplot.Settings: %w: texture limit %d is negative", features.ErrValue, st.TextureLimit)
	}
	return nil
}

// OpenSettings reads settings from the given TOML file and validates
// them. Fields absent from the file keep their default values.
func OpenSettings(filename string) (*Settings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	st := DefaultSettings()
	if err := toml.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("gpuplot.OpenSettings %s: %w", filename, err)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

// SaveSettings writes the settings to the given file as TOML.
func SaveSettings(st *Settings, filename string) error {
	b, err := toml.Marshal(st)
	if err != nil {
		return fmt.Errorf("gpuplot.SaveSettings %s: %w", filename, err)
	}
	return os.WriteFile(filename, b, 0666)
}
