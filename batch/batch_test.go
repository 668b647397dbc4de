/*
 * batch_test.go, part of godos.
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

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsci/godos/store"
)

const sixSeriesDoc = `<?xml version="1.0" encoding="ISO-8859-1"?>
<XCD Version="6.0" NumCharts="1">
 <CHART_2D>
  <DATA_2D NumSeries="6">
   <SERIES_2D Name="s alpha"><POINT_2D XY="-2,0"/><POINT_2D XY="0,1"/><POINT_2D XY="2,0"/></SERIES_2D>
   <SERIES_2D Name="s beta"><POINT_2D XY="-2,0"/><POINT_2D XY="0,2"/><POINT_2D XY="2,0"/></SERIES_2D>
   <SERIES_2D Name="p alpha"><POINT_2D XY="-1,0"/><POINT_2D XY="1,1"/><POINT_2D XY="3,0"/></SERIES_2D>
   <SERIES_2D Name="p beta"><POINT_2D XY="-1,0"/><POINT_2D XY="1,3"/><POINT_2D XY="3,0"/></SERIES_2D>
   <SERIES_2D Name="d alpha"><POINT_2D XY="0,0"/><POINT_2D XY="1,1"/><POINT_2D XY="2,0"/></SERIES_2D>
   <SERIES_2D Name="d beta"><POINT_2D XY="1,0"/><POINT_2D XY="2,1"/><POINT_2D XY="3,0"/></SERIES_2D>
  </DATA_2D>
 </CHART_2D>
</XCD>
`

func writeSeries(Te *testing.T, dir string, names []string) {
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(sixSeriesDoc), 0644); err != nil {
			Te.Fatal(err)
		}
	}
}

//TestAssemble runs a whole bulk-only series and checks that the container
//index comes back in planned physical order, whatever order the workers
//finished in.
func TestAssemble(Te *testing.T) {
	dir := Te.TempDir()
	writeSeries(Te, dir, []string{
		"m1_PDOS.xcd", "m2_PDOS.xcd", "m3_PDOS.xcd", "m4_PDOS.xcd",
		"t1_PDOS.xcd", "t2_PDOS.xcd",
	})
	out := filepath.Join(Te.TempDir(), "DOS_of_sample.dtf")
	if err := Assemble(dir, out, nil); err != nil {
		Te.Fatal(err)
	}
	f, err := store.Read(out)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"m4", "m3", "m2", "m1", "t1", "t2"}
	idx := f.Index()
	if len(idx) != len(want) {
		Te.Fatalf("index has %d entries, want %d: %v", len(idx), len(want), idx)
	}
	for i, k := range want {
		if idx[i] != k {
			Te.Errorf("index position %d: got %q, want %q", i, idx[i], k)
		}
		t := f.Table(k)
		if t == nil {
			Te.Fatalf("table %q missing from container", k)
		}
		if t.NCols() != 12 {
			Te.Errorf("table %q has %d columns, want 12", k, t.NCols())
		}
	}
	fmt.Println("batch assembled, index:", idx)
}

//TestAssembleSingleWorker: the planned order must survive a serial run too.
func TestAssembleSingleWorker(Te *testing.T) {
	dir := Te.TempDir()
	writeSeries(Te, dir, []string{
		"m1_PDOS.xcd", "m2_PDOS.xcd", "m3_PDOS.xcd", "m4_PDOS.xcd",
		"t1_PDOS.xcd", "t2_PDOS.xcd",
	})
	out := filepath.Join(Te.TempDir(), "DOS_of_serial.dtf")
	opts := DefaultOptions()
	opts.Jobs = 1
	if err := Assemble(dir, out, opts); err != nil {
		Te.Fatal(err)
	}
	f, err := store.Read(out)
	if err != nil {
		Te.Fatal(err)
	}
	if idx := f.Index(); idx[0] != "m4" || idx[5] != "t2" {
		Te.Errorf("serial run misordered the index: %v", idx)
	}
}

//TestAssembleFailFast: one malformed file aborts the whole batch and no
//container is written.
func TestAssembleFailFast(Te *testing.T) {
	dir := Te.TempDir()
	writeSeries(Te, dir, []string{
		"m1_PDOS.xcd", "m2_PDOS.xcd", "m3_PDOS.xcd", "m4_PDOS.xcd",
		"t1_PDOS.xcd",
	})
	if err := os.WriteFile(filepath.Join(dir, "t2_PDOS.xcd"), nil, 0644); err != nil {
		Te.Fatal(err)
	}
	out := filepath.Join(Te.TempDir(), "DOS_of_broken.dtf")
	err := Assemble(dir, out, nil)
	if err == nil {
		Te.Fatal("a malformed file should abort the batch")
	}
	if _, serr := os.Stat(out); serr == nil {
		Te.Error("no container should be written for a failed batch")
	}
	fmt.Println("batch aborted as expected:", err)
}

//TestAssembleBadCountNamesFile: a document with an unexpected series count
//aborts the batch, and the error says which file it was.
func TestAssembleBadCountNamesFile(Te *testing.T) {
	dir := Te.TempDir()
	writeSeries(Te, dir, []string{
		"m1_PDOS.xcd", "m2_PDOS.xcd", "m3_PDOS.xcd", "m4_PDOS.xcd",
		"t1_PDOS.xcd",
	})
	five := strings.Replace(sixSeriesDoc,
		`<SERIES_2D Name="d beta"><POINT_2D XY="1,0"/><POINT_2D XY="2,1"/><POINT_2D XY="3,0"/></SERIES_2D>`, "", 1)
	if err := os.WriteFile(filepath.Join(dir, "t2_PDOS.xcd"), []byte(five), 0644); err != nil {
		Te.Fatal(err)
	}
	out := filepath.Join(Te.TempDir(), "DOS_of_fivesome.dtf")
	err := Assemble(dir, out, nil)
	if err == nil {
		Te.Fatal("an unexpected series count should abort the batch")
	}
	if !strings.Contains(err.Error(), "t2_PDOS.xcd") {
		Te.Errorf("error does not identify the offending file: %v", err)
	}
	if _, serr := os.Stat(out); serr == nil {
		Te.Error("no container should be written for a failed batch")
	}
}

//TestAssembleIgnoresStrangers: files without the suffix are not part of
//the series.
func TestAssembleIgnoresStrangers(Te *testing.T) {
	dir := Te.TempDir()
	writeSeries(Te, dir, []string{
		"m1_PDOS.xcd", "m2_PDOS.xcd", "m3_PDOS.xcd", "m4_PDOS.xcd",
		"t1_PDOS.xcd", "t2_PDOS.xcd",
	})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0644); err != nil {
		Te.Fatal(err)
	}
	out := filepath.Join(Te.TempDir(), "DOS_of_clean.dtf")
	if err := Assemble(dir, out, nil); err != nil {
		Te.Fatal(err)
	}
	f, err := store.Read(out)
	if err != nil {
		Te.Fatal(err)
	}
	if len(f.Index()) != 6 {
		Te.Errorf("stranger file leaked into the series: %v", f.Index())
	}
}
