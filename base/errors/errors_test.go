// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	err := New("test error")
	assert.Equal(t, err, Log(err))
	assert.NoError(t, Log(nil))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, "a", Log1("a", New("oops")))
}

func TestIsWrapped(t *testing.T) {
	base := New("base")
	wrapped := fmt.Errorf("context: %w", base)
	assert.True(t, Is(wrapped, base))
}

func TestMust1(t *testing.T) {
	assert.Equal(t, 5, Must1(5, nil))
	assert.Panics(t, func() { Must1(0, New("bad")) })
}
