// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/winloop/internal/table"
)

// numericType describes one of the selectable number types.
type numericType struct {
	name     string
	bits     int
	min, max any
}

var numericTypes = []numericType{
	{"i8", 8, int64(math.MinInt8), int64(math.MaxInt8)},
	{"i16", 16, int64(math.MinInt16), int64(math.MaxInt16)},
	{"i32", 32, int64(math.MinInt32), int64(math.MaxInt32)},
	{"i64", 64, int64(math.MinInt64), int64(math.MaxInt64)},
	{"u8", 8, uint64(0), uint64(math.MaxUint8)},
	{"u16", 16, uint64(0), uint64(math.MaxUint16)},
	{"u32", 32, uint64(0), uint64(math.MaxUint32)},
	{"u64", 64, uint64(0), uint64(math.MaxUint64)},
	{"f32", 32, -float64(math.MaxFloat32), float64(math.MaxFloat32)},
	{"f64", 64, -math.MaxFloat64, math.MaxFloat64},
}

func lookupNumeric(name string) (numericType, error) {
	names := make([]string, len(numericTypes))
	for i, t := range numericTypes {
		if t.name == name {
			return t, nil
		}
		names[i] = t.name
	}
	return numericType{}, fmt.Errorf("unknown numeric type %q (want %s)", name, strings.Join(names, ", "))
}

func newNumericCmd(o *options) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "numeric",
		Short: "Print the range and size of the numeric types",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			types := numericTypes
			if typ != "" {
				t, err := lookupNumeric(typ)
				if err != nil {
					return err
				}
				types = []numericType{t}
			}
			return printNumeric(o, types)
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only show `type` (i8, i16, i32, i64, u8, u16, u32, u64, f32, f64)")
	return cmd
}

func printNumeric(o *options, types []numericType) error {
	p := message.NewPrinter(language.English)
	t := table.New("TYPE", "BYTES", "MIN", "MAX")
	for i := 1; i < 4; i++ {
		t.SetAlign(i, table.Right)
	}
	for _, nt := range types {
		t.AddRow(nt.name, nt.bits/8, formatNumber(p, nt.min), formatNumber(p, nt.max))
	}
	return t.Render(o.stdout, o.color())
}

// formatNumber groups the digits of integers and prints floats in
// exponent form.
func formatNumber(p *message.Printer, v any) string {
	switch v := v.(type) {
	case float64:
		return p.Sprintf("%.7g", v)
	default:
		return p.Sprintf("%d", v)
	}
}
