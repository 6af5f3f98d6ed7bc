// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inspect

import (
	"slices"
	"strings"

	"github.com/gogpu/winloop/render"
)

// ShaderInfo is the compile result of a built-in shader.
type ShaderInfo struct {
	Name string
	// SPIRV is the size of the compiled module in bytes.
	SPIRV int
}

// Shaders compiles the built-in WGSL shaders and reports them sorted by
// name.
func Shaders() ([]ShaderInfo, error) {
	sizes, err := render.ValidateShaders()
	if err != nil {
		return nil, err
	}
	out := make([]ShaderInfo, 0, len(sizes))
	for name, n := range sizes {
		out = append(out, ShaderInfo{Name: name, SPIRV: n})
	}
	slices.SortFunc(out, func(a, b ShaderInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}
