// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package inspect reads fonts, bitmaps and the built-in shaders and
// reports what the command's inspection subcommands print.
package inspect

import (
	"bytes"
	"fmt"
	"os"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontInfo is the metadata of a font file.
type FontInfo struct {
	Path       string
	Family     string
	FullName   string
	NumGlyphs  int
	UnitsPerEm int

	// Ascent, Descent and LineGap are in font units. Descent is positive
	// below the baseline.
	Ascent  float64
	Descent float64
	LineGap float64

	Weight float64
	Italic bool

	// Missing lists the runes of coverageRunes that have no glyph.
	Missing []rune
}

// coverageRunes are checked for glyph coverage.
const coverageRunes = "AaZz09"

// Font parses the TrueType or OpenType file at path.
func Font(path string) (FontInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FontInfo{}, err
	}
	info, err := ParseFont(data)
	if err != nil {
		return FontInfo{}, fmt.Errorf("inspect: %s: %w", path, err)
	}
	info.Path = path
	return info, nil
}

// ParseFont reads the metadata of a font held in memory. The name table
// and glyph counts come from sfnt; vertical metrics and coverage come from
// the go-text face.
func ParseFont(data []byte) (FontInfo, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return FontInfo{}, err
	}
	var buf sfnt.Buffer
	info := FontInfo{
		Family:     fontName(f, &buf, sfnt.NameIDFamily),
		FullName:   fontName(f, &buf, sfnt.NameIDFull),
		NumGlyphs:  f.NumGlyphs(),
		UnitsPerEm: int(f.UnitsPerEm()),
	}

	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return FontInfo{}, err
	}
	if ext, ok := face.FontHExtents(); ok {
		info.Ascent = float64(ext.Ascender)
		info.Descent = -float64(ext.Descender)
		info.LineGap = float64(ext.LineGap)
	} else {
		info.Ascent, info.Descent, info.LineGap = sfntMetrics(f, &buf)
	}
	desc := face.Describe()
	if info.Family == "" {
		info.Family = desc.Family
	}
	info.Weight = float64(desc.Aspect.Weight)
	info.Italic = desc.Aspect.Style == gtfont.StyleItalic
	for _, r := range coverageRunes {
		if _, ok := face.NominalGlyph(r); !ok {
			info.Missing = append(info.Missing, r)
		}
	}
	return info, nil
}

func fontName(f *sfnt.Font, buf *sfnt.Buffer, id sfnt.NameID) string {
	name, err := f.Name(buf, id)
	if err != nil {
		return ""
	}
	return name
}

// sfntMetrics reads vertical metrics at one pixel per font unit.
func sfntMetrics(f *sfnt.Font, buf *sfnt.Buffer) (ascent, descent, gap float64) {
	ppem := fixed.I(int(f.UnitsPerEm()))
	m, err := f.Metrics(buf, ppem, font.HintingNone)
	if err != nil {
		return 0, 0, 0
	}
	ascent = fixedToFloat(m.Ascent)
	descent = fixedToFloat(m.Descent)
	return ascent, descent, fixedToFloat(m.Height) - ascent - descent
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
