/*
 * castep.go, part of godos.
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

//Package castep extracts scalar physical quantities from CASTEP log files:
//final energy, atom and species counts, lattice parameters, cell volume,
//pressure and the fractional coordinates of the cell contents. These are
//the side quantities of a strain series; the spin DOS pipeline does not
//depend on them.
package castep

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
)

var (
	energyRe  = regexp.MustCompile(`Final energy, E\s+=\s+(-?[0-9.]+(?:[eE][+-]?[0-9]+)?)`)
	ionsRe    = regexp.MustCompile(`Total number of ions in cell =\s+([0-9]+)`)
	speciesRe = regexp.MustCompile(`Total number of species in cell =\s+([0-9]+)`)
	latticeRe = regexp.MustCompile(`\s[a-c]\s=\s+(\S+)`)
	gammaRe   = regexp.MustCompile(`gamma\s*=\s+([0-9.]+)`)
	volumeRe  = regexp.MustCompile(`Current cell volume =\s+([0-9.]+)`)
	pressRe   = regexp.MustCompile(`Pressure:\s+(-?[0-9]+\.[0-9]+)`)
	siteRe    = regexp.MustCompile(`x\s+([A-Za-z]+)\s+([0-9]+)\s+(-?[0-9.]+)\s+(-?[0-9.]+)\s+(-?[0-9.]+)\s+x`)
)

// File is one CASTEP log, fully materialized.
type File struct {
	path string
	body string
}

// Read reads the whole CASTEP log at path.
func Read(path string) (*File, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("castep: %w", err)
	}
	return &File{path: path, body: string(body)}, nil
}

// Name returns the path of the log.
func (F *File) Name() string {
	return F.path
}

// FinalEnergy returns the last "Final energy" reported in the log, in eV.
// Geometry optimizations report one per step; the last one belongs to the
// converged structure.
func (F *File) FinalEnergy() (float64, error) {
	m := energyRe.FindAllStringSubmatch(F.body, -1)
	if m == nil {
		return 0, fmt.Errorf("castep: no final energy in %s", F.path)
	}
	return strconv.ParseFloat(m[len(m)-1][1], 64)
}

// AtomNum returns the total number of ions in the cell.
func (F *File) AtomNum() (int, error) {
	m := ionsRe.FindStringSubmatch(F.body)
	if m == nil {
		return 0, fmt.Errorf("castep: no ion count in %s", F.path)
	}
	return strconv.Atoi(m[1])
}

// SpecNum returns the total number of species in the cell.
func (F *File) SpecNum() (int, error) {
	m := speciesRe.FindStringSubmatch(F.body)
	if m == nil {
		return 0, fmt.Errorf("castep: no species count in %s", F.path)
	}
	return strconv.Atoi(m[1])
}

// LatticeParams returns the a, b and c lattice parameters, in Angstrom.
func (F *File) LatticeParams() (float64, float64, float64, error) {
	m := latticeRe.FindAllStringSubmatch(F.body, 3)
	if len(m) < 3 {
		return 0, 0, 0, fmt.Errorf("castep: no lattice parameters in %s", F.path)
	}
	var abc [3]float64
	for i, v := range m {
		p, err := strconv.ParseFloat(v[1], 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("castep: bad lattice parameter %q in %s", v[1], F.path)
		}
		abc[i] = p
	}
	return abc[0], abc[1], abc[2], nil
}

// Gamma returns the gamma cell angle, in degrees.
func (F *File) Gamma() (float64, error) {
	m := gammaRe.FindStringSubmatch(F.body)
	if m == nil {
		return 0, fmt.Errorf("castep: no gamma angle in %s", F.path)
	}
	return strconv.ParseFloat(m[1], 64)
}

// Area returns the XY-plane surface area of the cell, a*b*sin(gamma).
func (F *File) Area() (float64, error) {
	a, b, _, err := F.LatticeParams()
	if err != nil {
		return 0, err
	}
	gamma, err := F.Gamma()
	if err != nil {
		return 0, err
	}
	return a * b * math.Sin(gamma*math.Pi/180), nil
}

// Volume returns the current cell volume, in cubic Angstrom.
func (F *File) Volume() (float64, error) {
	m := volumeRe.FindStringSubmatch(F.body)
	if m == nil {
		return 0, fmt.Errorf("castep: no cell volume in %s", F.path)
	}
	return strconv.ParseFloat(m[1], 64)
}

// Pressure returns the computed pressure and true, or zero and false when
// the calculation did not compute the stress tensor. Absence is expected
// for some runs, so it is not an error.
func (F *File) Pressure() (float64, bool) {
	m := pressRe.FindStringSubmatch(F.body)
	if m == nil {
		return 0, false
	}
	p, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

// Site is one atom of the cell contents block.
type Site struct {
	Element string
	Number  int
	U, V, W float64 //fractional coordinates
}

// Cell returns the per-atom fractional coordinates from the cell contents
// block. Only data rows match; the block's header and rule lines do not.
func (F *File) Cell() ([]Site, error) {
	m := siteRe.FindAllStringSubmatch(F.body, -1)
	if m == nil {
		return nil, fmt.Errorf("castep: no cell contents in %s", F.path)
	}
	sites := make([]Site, 0, len(m))
	for _, v := range m {
		n, err := strconv.Atoi(v[2])
		if err != nil {
			return nil, fmt.Errorf("castep: bad cell row %q in %s", v[0], F.path)
		}
		var s Site
		s.Element = v[1]
		s.Number = n
		for i, dst := range []*float64{&s.U, &s.V, &s.W} {
			c, err := strconv.ParseFloat(v[3+i], 64)
			if err != nil {
				return nil, fmt.Errorf("castep: bad cell row %q in %s", v[0], F.path)
			}
			*dst = c
		}
		sites = append(sites, s)
	}
	return sites, nil
}
