/*
 * xcd.go, part of godos.
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
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// PDOSSuffix is the recognized file suffix of a spin-resolved spectral
// document. Stripping it from a file name yields the calculation identifier.
const PDOSSuffix = "_PDOS.xcd"

// BandOrder gives the canonical orbital/spin label for each series of a
// spin-resolved XCD document, by series count and document position. The
// upstream tool writes the series without usable names, so the labeling is
// positional. This is the whole contract: any series count without an entry
// here is unsupported.
var BandOrder = map[int][]string{
	4: {"s_alpha", "s_beta", "p_alpha", "p_beta"},
	6: {"s_alpha", "s_beta", "p_alpha", "p_beta", "d_alpha", "d_beta"},
}

// BandSet is the complete set of raw curves of one spin-resolved
// calculation: either 4 curves (s and p) or 6 (s, p and d).
type BandSet struct {
	labels []string
	curves map[string]*Curve
}

// NewBandSet labels the given curves positionally according to order (pass
// BandOrder for the standard labeling) and returns them as a BandSet. A
// curve count with no entry in order is an error.
func NewBandSet(curves []*Curve, order map[int][]string) (*BandSet, error) {
	if curves == nil {
		return nil, CError{string(ErrNilData), []string{"NewBandSet"}}
	}
	labels, ok := order[len(curves)]
	if !ok {
		return nil, CError{fmt.Sprintf("%s (got %d)", ErrUnsupportedBandCount, len(curves)), []string{"NewBandSet"}}
	}
	B := new(BandSet)
	B.labels = labels
	B.curves = make(map[string]*Curve, len(curves))
	for i, v := range curves {
		v.Label = labels[i]
		B.curves[labels[i]] = v
	}
	return B, nil
}

// Labels returns the canonical labels of the set, in document order.
func (B *BandSet) Labels() []string {
	return B.labels
}

// Curve returns the raw curve with the given canonical label, or nil.
func (B *BandSet) Curve(label string) *Curve {
	return B.curves[label]
}

// Len returns the number of curves in the set (4 or 6).
func (B *BandSet) Len() int {
	return len(B.labels)
}

// HasD reports whether the set includes the d-orbital pair.
func (B *BandSet) HasD() bool {
	return B.Curve("d_alpha") != nil
}

// XCDFile is one parsed spectral document: its curves in document order,
// labeled positionally, plus the file's name stem.
type XCDFile struct {
	path   string
	stem   string
	series []*Curve
	byName map[string]*Curve
	bands  *BandSet
}

//XCD documents nest their series a few levels deep
//(XCD/CHART_2D/DATA_2D/SERIES_2D), and some exports nest differently, so the
//series are collected with a token walk rather than a fixed struct mirror,
//the same way ElementTree's ".//" search would find them.

type xcdSeries struct {
	Name   string     `xml:"Name,attr"`
	Points []xcdPoint `xml:"POINT_2D"`
}

type xcdPoint struct {
	XY string `xml:"XY,attr"`
}

//The exporting tool declares its documents latin-1, which encoding/xml
//refuses to decode on its own.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("document encoding %q is not supported", charset)
}

// ReadXCD parses the spectral document at path. Every SERIES_2D element is
// read, in document order, into a Curve; each of its points carries an
// XY="x,y" attribute with the energy and the intensity. An empty or
// truncated document, or one whose coordinates do not parse, is a malformed
// input error. The series count is not checked here: named documents may
// carry any number of series, and the spin-resolved labeling contract is
// enforced by Bands.
func ReadXCD(path string) (*XCDFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, CError{fmt.Sprintf("%s: %s: %s", ErrMalformedInput, path, err.Error()), []string{"ReadXCD"}}
	}
	defer f.Close()
	X := new(XCDFile)
	X.path = path
	X.stem = strings.TrimSuffix(filepath.Base(path), PDOSSuffix)
	X.stem = strings.TrimSuffix(X.stem, "_DOS.xcd") //the spin-unresolved convention
	X.stem = strings.TrimSuffix(X.stem, ".xcd")
	X.byName = make(map[string]*Curve)
	X.series = make([]*Curve, 0, 6)
	dec := xml.NewDecoder(f)
	dec.CharsetReader = charsetReader
	anyelement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, CError{fmt.Sprintf("%s: %s: %s", ErrMalformedInput, path, err.Error()), []string{"ReadXCD"}}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		anyelement = true
		if start.Name.Local != "SERIES_2D" {
			continue
		}
		var raw xcdSeries
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, CError{fmt.Sprintf("%s: %s: %s", ErrMalformedInput, path, err.Error()), []string{"ReadXCD"}}
		}
		c, err := raw.curve()
		if err != nil {
			return nil, CError{fmt.Sprintf("%s: %s: %s", ErrMalformedInput, path, err.Error()), []string{"ReadXCD"}}
		}
		X.series = append(X.series, c)
		if raw.Name != "" {
			//Some exports name their series after the orbital ("s", "p DOS"...).
			//Keyed by the first letter, like the band itself.
			X.byName[raw.Name[:1]] = c
		}
	}
	if !anyelement {
		return nil, CError{fmt.Sprintf("%s: %s: no element found", ErrMalformedInput, path), []string{"ReadXCD"}}
	}
	return X, nil
}

func (s *xcdSeries) curve() (*Curve, error) {
	e := make([]float64, 0, len(s.Points))
	y := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		xs, ys, found := strings.Cut(p.XY, ",")
		if !found {
			return nil, fmt.Errorf("point %q lacks a comma", p.XY)
		}
		xv, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, err
		}
		yv, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, err
		}
		e = append(e, xv)
		y = append(y, yv)
	}
	return NewCurve(s.Name, e, y)
}

// Name returns the calculation identifier of the document: the file name
// with the recognized suffix stripped.
func (X *XCDFile) Name() string {
	return X.stem
}

// Bands labels the document's series positionally (on first call) and
// returns them as a band set. Only the spin-resolved documents obey the
// positional contract, so any series count without a BandOrder entry is an
// unsupported band count error naming the file; named documents are read
// through Named and Center instead.
func (X *XCDFile) Bands() (*BandSet, error) {
	if X.bands != nil {
		return X.bands, nil
	}
	b, err := NewBandSet(X.series, BandOrder)
	if err != nil {
		return nil, CError{err.Error() + ": " + X.path, []string{"Bands"}}
	}
	X.bands = b
	return b, nil
}

// Named returns the curve whose series Name attribute starts with the given
// orbital letter, for documents that carry named, spin-unresolved series.
// It returns nil if no series has that name.
func (X *XCDFile) Named(band string) *Curve {
	if band == "" {
		return nil
	}
	return X.byName[band[:1]]
}

// Center returns the band center of the named orbital (one of s, p, d, f)
// for documents with named series.
func (X *XCDFile) Center(band string) (float64, error) {
	if band != "s" && band != "p" && band != "d" && band != "f" {
		return 0, CError{fmt.Sprintf("godos: band %q is not supported, choose from s, p, d and f", band), []string{"Center"}}
	}
	c := X.Named(band)
	if c == nil {
		return 0, CError{fmt.Sprintf("godos: %s has no series named %q", X.path, band), []string{"Center"}}
	}
	center, err := c.Center()
	if err != nil {
		return 0, errDecorate(err, "XCDFile.Center: "+X.path)
	}
	return center, nil
}
