// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpuplot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/gpuplot/features"
	"github.com/stretchr/testify/assert"
)

func TestSettingsDefaults(t *testing.T) {
	st := DefaultSettings()
	assert.Equal(t, "viridis", st.Colormap)
	assert.Equal(t, float32(2), st.Thickness)
	assert.Equal(t, float32(10), st.PointSize)
	assert.Equal(t, "circle", st.Marker)
	assert.Equal(t, float32(14), st.FontSize)
	assert.Equal(t, float32(0.5), st.IsoThreshold)
	assert.Equal(t, 0, st.TextureLimit)
	assert.NoError(t, st.Validate())
}

func TestSettingsRoundTrip(t *testing.T) {
	st := DefaultSettings()
	st.Colormap = "jet"
	st.Thickness = 3.5
	st.Marker = "star"
	st.TextureLimit = 1024
	st.Debug = true

	fn := filepath.Join(t.TempDir(), "settings.toml")
	assert.NoError(t, SaveSettings(st, fn))

	got, err := OpenSettings(fn)
	assert.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestSettingsPartialFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	assert.NoError(t, os.WriteFile(fn, []byte("colormap = \"plasma\"\n"), 0666))

	got, err := OpenSettings(fn)
	assert.NoError(t, err)
	assert.Equal(t, "plasma", got.Colormap)
	assert.Equal(t, float32(2), got.Thickness)
}

func TestSettingsValidate(t *testing.T) {
	st := DefaultSettings()
	st.Colormap = "nope"
	assert.Error(t, st.Validate())

	st = DefaultSettings()
	st.Marker = "blob"
	err := st.Validate()
	assert.True(t, errors.Is(err, features.ErrEnum))

	st = DefaultSettings()
	st.Thickness = 0
	err = st.Validate()
	assert.True(t, errors.Is(err, features.ErrValue))

	st = DefaultSettings()
	st.TextureLimit = -1
	assert.Error(t, st.Validate())
}

func TestOpenSettingsMissingFile(t *testing.T) {
	_, err := OpenSettings(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestSetCurrent(t *testing.T) {
	old := Current
	defer SetCurrent(old)

	st := DefaultSettings()
	st.Debug = true
	SetCurrent(st)
	assert.Same(t, st, Current)
}
