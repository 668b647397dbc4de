/*
 * xcd_test.go, part of godos.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dos

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
)

//TestReadXCD4 reads a 4-series document and checks the positional labeling.
func TestReadXCD4(Te *testing.T) {
	x, err := ReadXCD("test/sp_PDOS.xcd")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("XCD read!", x.Name())
	if x.Name() != "sp" {
		Te.Errorf("wrong identifier %q", x.Name())
	}
	b, err := x.Bands()
	if err != nil {
		Te.Fatal(err)
	}
	if b.Len() != 4 || b.HasD() {
		Te.Errorf("expected 4 curves without d, got %d", b.Len())
	}
	want := []string{"s_alpha", "s_beta", "p_alpha", "p_beta"}
	for i, l := range b.Labels() {
		if l != want[i] {
			Te.Errorf("label %d: got %q, want %q", i, l, want[i])
		}
	}
	s := b.Curve("s_alpha")
	if s == nil || s.Len() != 3 {
		Te.Fatal("s_alpha curve missing or truncated")
	}
	if !floats.Equal(s.E, []float64{-2, 0, 2}) || !floats.Equal(s.DOS, []float64{0, 1, 0}) {
		Te.Errorf("s_alpha points wrong: %v %v", s.E, s.DOS)
	}
	p := b.Curve("p_beta")
	if !floats.Equal(p.DOS, []float64{0, 3, 0}) {
		Te.Errorf("p_beta intensities wrong: %v", p.DOS)
	}
}

//TestReadXCD6 reads a 6-series document.
func TestReadXCD6(Te *testing.T) {
	x, err := ReadXCD("test/spd_noswap_PDOS.xcd")
	if err != nil {
		Te.Fatal(err)
	}
	b, err := x.Bands()
	if err != nil {
		Te.Fatal(err)
	}
	if b.Len() != 6 || !b.HasD() {
		Te.Errorf("expected 6 curves with d, got %d", b.Len())
	}
	c, err := b.Curve("d_alpha").Center()
	if err != nil {
		Te.Error(err)
	}
	if math.Abs(c-3.0) > 1e-12 {
		Te.Errorf("raw d_alpha center: got %v, want 3", c)
	}
}

//TestReadXCDMalformed checks that unparseable documents surface as errors
//instead of producing empty band sets.
func TestReadXCDMalformed(Te *testing.T) {
	_, err := ReadXCD("test/empty_PDOS.xcd")
	if err == nil {
		Te.Fatal("empty document should not parse")
	}
	if !strings.Contains(err.Error(), string(ErrMalformedInput)) {
		Te.Errorf("wrong error kind: %v", err)
	}
	if !strings.Contains(err.Error(), "empty_PDOS.xcd") {
		Te.Errorf("error does not identify the file: %v", err)
	}
	if _, err = ReadXCD("test/no_such_file_PDOS.xcd"); err == nil {
		Te.Error("missing document should not parse")
	}
}

//TestReadXCDBadCount checks the series-count contract of the positional
//labeling: the document itself parses, labeling it does not.
func TestReadXCDBadCount(Te *testing.T) {
	x, err := ReadXCD("test/fiveseries_PDOS.xcd")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = x.Bands()
	if err == nil {
		Te.Fatal("5 series should be rejected")
	}
	if !strings.Contains(err.Error(), string(ErrUnsupportedBandCount)) {
		Te.Errorf("wrong error kind: %v", err)
	}
	if !strings.Contains(err.Error(), "fiveseries_PDOS.xcd") {
		Te.Errorf("error does not identify the file: %v", err)
	}
}

//TestNamedThreeSeries: the older named convention also comes in 3-series
//documents without an f band; those have no positional labeling but their
//band centers must still be reachable.
func TestNamedThreeSeries(Te *testing.T) {
	x, err := ReadXCD("test/spd3_DOS.xcd")
	if err != nil {
		Te.Fatal(err)
	}
	for band, want := range map[string]float64{"s": -2, "p": 0, "d": 2} {
		c, err := x.Center(band)
		if err != nil {
			Te.Error(err)
			continue
		}
		if math.Abs(c-want) > 1e-12 {
			Te.Errorf("band %s center: got %v, want %v", band, c, want)
		}
	}
	if _, err := x.Bands(); err == nil {
		Te.Error("3 series have no positional labeling")
	}
}

//TestNamedAccess reads a document with named, spin-unresolved series, the
//older convention.
func TestNamedAccess(Te *testing.T) {
	x, err := ReadXCD("test/named_DOS.xcd")
	if err != nil {
		Te.Fatal(err)
	}
	if x.Name() != "named" {
		Te.Errorf("wrong identifier %q", x.Name())
	}
	for band, want := range map[string]float64{"s": -2, "p": 0, "d": 2, "f": 4} {
		c, err := x.Center(band)
		if err != nil {
			Te.Error(err)
			continue
		}
		if math.Abs(c-want) > 1e-12 {
			Te.Errorf("band %s center: got %v, want %v", band, c, want)
		}
	}
	if _, err := x.Center("g"); err == nil {
		Te.Error("band g should be rejected")
	}
}
