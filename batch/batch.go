/*
 * batch.go, part of godos.
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

//Package batch drives a whole strain series: it plans the canonical order
//of a series directory, parses and reconciles every calculation
//concurrently, and writes the resulting tables plus the ordered index into
//one container. Any per-calculation failure aborts the batch before the
//container is created; a partially written index that references missing
//tables would be worse than a visible full failure.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	dos "github.com/matsci/godos"
	"github.com/matsci/godos/store"
)

// Options configures one batch run.
type Options struct {
	//Jobs is the number of concurrent parsers. Zero means one per CPU.
	Jobs int `yaml:"jobs"`
	//Compression is the flate/gzip compression level of the container.
	Compression int `yaml:"compression"`
	//Suffix is the spectral-file suffix stripped to obtain identifiers.
	Suffix string `yaml:"suffix"`
}

// DefaultOptions returns the standard batch options: one worker per CPU,
// best compression, the _PDOS.xcd suffix.
func DefaultOptions() *Options {
	return &Options{Jobs: 0, Compression: 9, Suffix: dos.PDOSSuffix}
}

// Plan lists the series directory dir and returns its canonical sequence.
// Only file names carrying the suffix are considered part of the series.
func Plan(dir, suffix string) (*dos.Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: can't list series directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, v := range entries {
		if !v.IsDir() && strings.HasSuffix(v.Name(), suffix) {
			names = append(names, v.Name())
		}
	}
	seq, err := dos.PlanSequence(names, suffix)
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", dir, err)
	}
	return seq, nil
}

// Assemble processes the series directory dir and writes the container file
// out. The per-calculation work is pure and independent, so it runs on an
// errgroup sized to opts.Jobs; worker completion order is irrelevant, each
// result lands in its planned slot and the container is written
// sequentially, in planned order, only after every worker has succeeded.
func Assemble(dir, out string, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	suffix := opts.Suffix
	if suffix == "" {
		suffix = dos.PDOSSuffix
	}
	seq, err := Plan(dir, suffix)
	if err != nil {
		return err
	}
	tables := make([]*dos.Table, seq.Len())
	var g errgroup.Group
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g.SetLimit(jobs)
	for i, name := range seq.Files {
		i, path := i, filepath.Join(dir, name)
		g.Go(func() error {
			x, err := dos.ReadXCD(path)
			if err != nil {
				return err
			}
			b, err := x.Bands()
			if err != nil {
				return err
			}
			t, err := dos.ReconcileBands(b)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch: aborted, no output written: %w", err)
	}
	w, err := store.NewWriter(out, opts.Compression)
	if err != nil {
		return err
	}
	defer w.Close()
	for i, key := range seq.Keys {
		if err := w.WTable(key, tables[i]); err != nil {
			return err
		}
	}
	return w.WIndex(seq.Keys)
}
