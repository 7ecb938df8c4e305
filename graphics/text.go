// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graphics

import (
	"bytes"
	"fmt"
	"sync"

	"cogentcore.org/gpuplot"
	"cogentcore.org/gpuplot/colors"
	"cogentcore.org/gpuplot/features"
	"cogentcore.org/gpuplot/render"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

var (
	faceOnce sync.Once
	faceVal  *font.Face
	faceErr  error
)

// textFace parses the embedded Latin Modern regular face once.
func textFace() (*font.Face, error) {
	faceOnce.Do(func() {
		faceVal, faceErr = font.ParseTTF(bytes.NewReader(lmroman10regular.TTF))
		if faceErr != nil {
			faceErr = fmt.Errorf("graphics.Text: parsing embedded font: %w", faceErr)
		}
	})
	return faceVal, faceErr
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// GlyphQuad is one positioned glyph of a shaped string: the font
// glyph identifier, the baseline pen position the glyph was placed
// at, and the corners of its quad, y up, in the same units as the
// font size.
type GlyphQuad struct {
	GID uint32
	Pen [2]float32
	Min [2]float32
	Max [2]float32
}

// shapeText shapes the string with the embedded face at the given
// size, returning the positioned glyph quads and the total pen
// advance.
func shapeText(sh *shaping.HarfbuzzShaper, s string, size float32) ([]GlyphQuad, float32, error) {
	face, err := textFace()
	if err != nil {
		return nil, 0, err
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0, nil
	}
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      toFixed(size),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	}
	out := sh.Shape(in)
	quads := make([]GlyphQuad, 0, len(out.Glyphs))
	pen := float32(0)
	for _, g := range out.Glyphs {
		x0 := pen + fromFixed(g.XBearing+g.XOffset)
		yTop := fromFixed(g.YBearing + g.YOffset)
		w, h := fromFixed(g.Width), fromFixed(g.Height)
		quads = append(quads, GlyphQuad{
			GID: uint32(g.GlyphID),
			Pen: [2]float32{pen, 0},
			Min: [2]float32{x0, yTop + h},
			Max: [2]float32{x0 + w, yTop},
		})
		pen += fromFixed(g.XAdvance)
	}
	return quads, pen, nil
}

// TextOptions are the optional settings for [NewText].
type TextOptions struct {

	// FontSize is the font size in points. Zero uses
	// [gpuplot.Current].FontSize.
	FontSize float32

	// Color is the face color. Empty means white. Any form accepted
	// by [colors.FromString] works.
	Color string

	// OutlineColor is the outline color. Empty means black.
	OutlineColor string

	// OutlineThickness is the outline width as a fraction of the
	// font size. Zero means no outline.
	OutlineThickness float32
}

// Text is a shaped text graphic. Setting the text or the font size
// reshapes the string and replaces the glyph quad buffer; face and
// outline styling apply through the material.
type Text struct {
	GraphicBase

	dv      render.Device
	shaper  shaping.HarfbuzzShaper
	glyphs  *features.Buffer[float32]
	quads   []GlyphQuad
	advance float32

	text             *features.TextValue
	fontSize         *features.FloatValue
	color            *features.UniformColor
	outlineColor     *features.UniformColor
	outlineThickness *features.FloatValue

	// size0 carries the initial font size until the feature exists.
	size0 float32
}

var _ Graphic = (*Text)(nil)

// NewText builds a text graphic showing the given string.
func NewText(dv render.Device, name, s string, opts *TextOptions) (*Text, error) {
	if opts == nil {
		opts = &TextOptions{}
	}
	tg := &Text{dv: dv}
	tg.init(dv, name, render.Glyphs)

	tg.size0 = opts.FontSize
	if tg.size0 == 0 {
		tg.size0 = gpuplot.Current.FontSize
	}

	var err error
	tg.text, err = features.NewTextValue(tg, func(s string) error {
		return tg.rebuild(s, tg.sizeNow())
	}, s)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.register(tg.text)

	tg.fontSize, err = features.NewFloatValue("font_size", tg, func(v float32) error {
		return tg.rebuild(tg.text.Value(), v)
	}, 0, float32(1e6), tg.size0)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.register(tg.fontSize)

	fc := opts.Color
	if fc == "" {
		fc = "w"
	}
	c, err := colors.FromString(fc)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.color, err = features.NewUniformColor("color", tg, func(c colors.RGBA) error {
		return tg.material.Set("color", c)
	}, c)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.register(tg.color)

	oc := opts.OutlineColor
	if oc == "" {
		oc = "k"
	}
	c, err = colors.FromString(oc)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.outlineColor, err = features.NewUniformColor("outline_color", tg, func(c colors.RGBA) error {
		return tg.material.Set("outline_color", c)
	}, c)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.register(tg.outlineColor)

	tg.outlineThickness, err = features.NewFloatValue("outline_thickness", tg, func(v float32) error {
		return tg.material.Set("outline_thickness", v)
	}, 0, 1, opts.OutlineThickness)
	if err != nil {
		tg.Destroy()
		return nil, err
	}
	tg.register(tg.outlineThickness)

	if err := tg.initCommon(); err != nil {
		tg.Destroy()
		return nil, err
	}
	return tg, nil
}

// sizeNow is the current font size, falling back to the initial size
// while the feature is under construction.
func (tg *Text) sizeNow() float32 {
	if tg.fontSize != nil {
		return tg.fontSize.Value()
	}
	return tg.size0
}

// rebuild reshapes the string and replaces the glyph quad buffer.
// Each glyph contributes four rows, its quad corners in counter
// clockwise order from the bottom left.
func (tg *Text) rebuild(s string, size float32) error {
	quads, adv, err := shapeText(&tg.shaper, s, size)
	if err != nil {
		return err
	}
	buf, err := features.NewBuffer[float32](tg.dv, "glyphs", 4*len(quads), 3)
	if err != nil {
		return err
	}
	dd := buf.Data()
	for qi, q := range quads {
		o := qi * 12
		dd[o+0], dd[o+1] = q.Min[0], q.Min[1]
		dd[o+3], dd[o+4] = q.Max[0], q.Min[1]
		dd[o+6], dd[o+7] = q.Max[0], q.Max[1]
		dd[o+9], dd[o+10] = q.Min[0], q.Max[1]
	}
	if err := buf.UploadAll(); err != nil {
		return err
	}
	if tg.glyphs != nil {
		tg.glyphs.Release()
	}
	tg.glyphs = buf
	tg.object.SetBuffer("glyphs", buf.GPU())
	tg.quads = quads
	tg.advance = adv
	return nil
}

// Text is the string feature, named "text".
func (tg *Text) Text() *features.TextValue { return tg.text }

// FontSize is the font size feature.
func (tg *Text) FontSize() *features.FloatValue { return tg.fontSize }

// Color is the face color feature.
func (tg *Text) Color() *features.UniformColor { return tg.color }

// OutlineColor is the outline color feature.
func (tg *Text) OutlineColor() *features.UniformColor { return tg.outlineColor }

// OutlineThickness is the outline width feature.
func (tg *Text) OutlineThickness() *features.FloatValue { return tg.outlineThickness }

// Quads returns the shaped glyph quads of the current text.
func (tg *Text) Quads() []GlyphQuad { return tg.quads }

// Advance returns the total pen advance of the current text.
func (tg *Text) Advance() float32 { return tg.advance }

// Glyphs returns the glyph corner buffer, four rows per glyph.
func (tg *Text) Glyphs() *features.Buffer[float32] { return tg.glyphs }

func (tg *Text) Destroy() {
	if tg.Destroyed() {
		return
	}
	tg.GraphicBase.Destroy()
	if tg.glyphs != nil {
		tg.glyphs.Release()
		tg.glyphs = nil
	}
	tg.quads = nil
}
