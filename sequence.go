/*
 * sequence.go, part of godos.
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
	"sort"
	"strings"
)

// LayoutKind identifies one of the three known directory shapes of a strain
// series.
type LayoutKind int

const (
	//BulkOnly series: 4 compressive entries, tensile entries plain.
	BulkOnly LayoutKind = iota
	//SurfaceBulk series: 8 compressive entries, tensile entries alternate
	//bulk/surface with period 2.
	SurfaceBulk
	//SurfaceSubsurfaceBulk series: 12 compressive entries, tensile entries
	//cycle bulk/subsurface/surface with period 3.
	SurfaceSubsurfaceBulk
)

func (k LayoutKind) String() string {
	switch k {
	case BulkOnly:
		return "bulk-only"
	case SurfaceBulk:
		return "surface+bulk"
	case SurfaceSubsurfaceBulk:
		return "surface+subsurface+bulk"
	}
	return "unknown"
}

// Layout describes how a strain-series directory is reordered into physical
// order: the leading Compressive entries of the sorted listing are re-sorted
// descending, and the remaining (tensile) entries, which repeat in cycles of
// Stride files, are regrouped so that each cycle is emitted in Offsets
// order (offsets into the cycle). The reordering algorithm itself is layout
// independent; only these parameters differ.
type Layout struct {
	Kind        LayoutKind
	Compressive int
	Stride      int
	Offsets     []int
}

// DetectLayout inspects the early entries of the lexicographically sorted
// listing for the surface/subsurface naming markers and returns the layout
// descriptor of the series. The naming scheme of the input directory is an
// implicit contract: the markers, the compressive block size and the tensile
// cycle order are all inferred from how the files happen to sort, nothing in
// the names encodes the strain value itself.
func DetectLayout(names []string) (*Layout, error) {
	if len(names) < 2 {
		return nil, CError{fmt.Sprintf("%s (%d entries)", ErrLayoutDetection, len(names)), []string{"DetectLayout"}}
	}
	s := sortedCopy(names)
	switch {
	case strings.Contains(s[1], "subsurface") && strings.Contains(s[0], "bulk"):
		return &Layout{SurfaceSubsurfaceBulk, 12, 3, []int{2, 1, 0}}, nil
	case strings.Contains(s[1], "surface"):
		return &Layout{SurfaceBulk, 8, 2, []int{1, 0}}, nil
	}
	return &Layout{BulkOnly, 4, 1, []int{0}}, nil
}

// Sequence is a planned strain series: the file names in canonical physical
// order and the matching calculation identifiers (names with the suffix
// stripped).
type Sequence struct {
	Files []string
	Keys  []string
}

// Len returns the number of calculations in the sequence.
func (S *Sequence) Len() int {
	return len(S.Files)
}

// Plan reorders the given file names into canonical physical order under
// the layout: compressive strains descending in magnitude first, then the
// tensile cycles, each cycle regrouped per the layout's offsets. The result
// is always a permutation of the input; a listing shorter than the
// compressive block, or whose tensile remainder does not divide evenly into
// cycles, is a layout-detection error. Identifiers are derived by stripping
// suffix (pass PDOSSuffix for the standard convention) from each name.
func (L *Layout) Plan(names []string, suffix string) (*Sequence, error) {
	s := sortedCopy(names)
	if len(s) < L.Compressive {
		return nil, CError{fmt.Sprintf("%s (%s layout needs at least %d entries, got %d)", ErrLayoutDetection, L.Kind, L.Compressive, len(s)), []string{"Plan"}}
	}
	compressive := s[:L.Compressive]
	tensile := s[L.Compressive:]
	if len(tensile)%L.Stride != 0 {
		return nil, CError{fmt.Sprintf("%s (%s layout: %d tensile entries do not cycle with period %d)", ErrLayoutDetection, L.Kind, len(tensile), L.Stride), []string{"Plan"}}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(compressive)))
	ordered := make([]string, 0, len(s))
	ordered = append(ordered, compressive...)
	for i := 0; i < len(tensile)/L.Stride; i++ {
		for _, off := range L.Offsets {
			ordered = append(ordered, tensile[i*L.Stride+off])
		}
	}
	keys := make([]string, len(ordered))
	for i, v := range ordered {
		keys[i] = strings.TrimSuffix(v, suffix)
	}
	return &Sequence{Files: ordered, Keys: keys}, nil
}

// PlanSequence detects the layout of names and plans the canonical order in
// one step.
func PlanSequence(names []string, suffix string) (*Sequence, error) {
	L, err := DetectLayout(names)
	if err != nil {
		return nil, errDecorate(err, "PlanSequence")
	}
	seq, err := L.Plan(names, suffix)
	if err != nil {
		return nil, errDecorate(err, "PlanSequence")
	}
	return seq, nil
}

func sortedCopy(names []string) []string {
	s := make([]string, len(names))
	copy(s, names)
	sort.Strings(s)
	return s
}
