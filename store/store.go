/*
 * store.go, part of godos.
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

//Package store implements the godos table container: a single compressed
//file holding the reconciled table of every calculation of a strain series,
//keyed by calculation identifier, plus one index entry with the identifiers
//in canonical order. The compression is chosen from the file extension:
//names ending in 'z' use gzip, in 'r' flate, anything else zstd (the ".dtf"
//convention).
package store

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dos "github.com/matsci/godos"
)

// IndexKey is the reserved key under which the ordered identifier list is
// stored. No table may use it.
const IndexKey = "index"

const magic = "** godos 1"

//Write!

// Writer writes tables into a new container file. Tables are written
// sequentially by a single caller; the index entry is written last.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
	indexed   bool
}

// NewWriter creates the container file name and returns a Writer for it.
// The optional compression level applies to the flate and gzip formats
// (zstd always compresses at its best level).
func NewWriter(name string, compressionLevel ...int) (*Writer, error) {
	level := 9 //the default
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.h, err = anyNewWriter(name, W.f, level)
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.filename = name
	W.writeable = true
	fmt.Fprintf(W.h, "%s\n", magic)
	return W, nil
}

func anyNewWriter(name string, f io.Writer, level int) (io.WriteCloser, error) {
	format := strings.ToLower(name)[len(name)-1]
	switch format {
	case 'z':
		return gzip.NewWriterLevel(f, level)
	case 'r':
		return flate.NewWriter(f, level)
	default:
		return zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
}

// WTable writes one table under the given key. The key must not be the
// reserved index key.
func (W *Writer) WTable(key string, t *dos.Table) error {
	if !W.writeable {
		return Error{UnIniWrite, W.filename, []string{"WTable"}, true}
	}
	if t == nil {
		return Error{NilTable, W.filename, []string{"WTable"}, true}
	}
	if key == IndexKey {
		return Error{fmt.Sprintf("key %q is reserved for the index", key), W.filename, []string{"WTable"}, true}
	}
	fmt.Fprintf(W.h, "@table %s\n", key)
	for _, col := range t.Columns() {
		fmt.Fprintf(W.h, "@col %s %d\n", col.Name, len(col.Data))
		for _, v := range col.Data {
			fmt.Fprintf(W.h, "%s\n", strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return nil
}

// WIndex writes the ordered identifier list as the index entry. It is
// written once, after all tables.
func (W *Writer) WIndex(keys []string) error {
	if !W.writeable {
		return Error{UnIniWrite, W.filename, []string{"WIndex"}, true}
	}
	if W.indexed {
		return Error{"index already written", W.filename, []string{"WIndex"}, true}
	}
	fmt.Fprintf(W.h, "@index %d\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(W.h, "%s\n", k)
	}
	W.indexed = true
	return nil
}

// Close flushes and closes the container. The Writer can not be used after
// this call.
func (W *Writer) Close() {
	if W == nil {
		return
	}
	if W.writeable {
		W.h.Close()
		W.f.Close()
	}
	W.writeable = false
}

//Read!

// File is a fully materialized container.
type File struct {
	filename string
	index    []string
	tables   map[string]*dos.Table
}

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

func anyNewReader(name string, f io.Reader) (io.ReadCloser, error) {
	format := strings.ToLower(name)[len(name)-1]
	switch format {
	case 'z':
		return gzip.NewReader(f)
	case 'r':
		return flate.NewReader(f), nil
	default:
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return zstdql{d.Close, d}, nil
	}
}

// Read opens and fully reads the container at name.
func Read(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer f.Close()
	h, err := anyNewReader(name, f)
	if err != nil {
		return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"Read"}, true}
	}
	defer h.Close()
	F := new(File)
	F.filename = name
	F.tables = make(map[string]*dos.Table)
	r := bufio.NewReader(h)
	line, err := readLine(r)
	if err != nil || line != magic {
		return nil, Error{WrongFormat + ": missing header", name, []string{"Read"}, true}
	}
	var cur *dos.Table
	for {
		line, err = readLine(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Error{ReadError + ": " + err.Error(), name, []string{"Read"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "@table":
			//identifiers may contain spaces, so the key is the whole rest
			//of the line, not a field
			key := strings.TrimPrefix(line, "@table ")
			if key == line || key == "" {
				return nil, Error{WrongFormat + ": bad table record " + line, name, []string{"Read"}, true}
			}
			cur = new(dos.Table)
			F.tables[key] = cur
		case "@col":
			if len(fields) != 3 || cur == nil {
				return nil, Error{WrongFormat + ": bad column record " + line, name, []string{"Read"}, true}
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, Error{WrongFormat + ": bad column length in " + line, name, []string{"Read"}, true}
			}
			data, err := readFloats(r, n)
			if err != nil {
				return nil, Error{WrongFormat + ": column " + fields[1] + ": " + err.Error(), name, []string{"Read"}, true}
			}
			cur.AddColumn(fields[1], data)
		case "@index":
			if len(fields) != 2 {
				return nil, Error{WrongFormat + ": bad index record " + line, name, []string{"Read"}, true}
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, Error{WrongFormat + ": bad index length in " + line, name, []string{"Read"}, true}
			}
			F.index = make([]string, 0, n)
			for i := 0; i < n; i++ {
				k, err := readLine(r)
				if err != nil {
					return nil, Error{WrongFormat + ": truncated index", name, []string{"Read"}, true}
				}
				F.index = append(F.index, k)
			}
		default:
			return nil, Error{WrongFormat + ": unexpected record " + line, name, []string{"Read"}, true}
		}
	}
	if F.index == nil {
		return nil, Error{WrongFormat + ": no index entry", name, []string{"Read"}, true}
	}
	return F, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\n"), err
}

func readFloats(r *bufio.Reader, n int) ([]float64, error) {
	data := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}
	return data, nil
}

// Index returns the calculation identifiers in the canonical order they
// were planned in, as stored in the index entry.
func (F *File) Index() []string {
	return F.index
}

// Table returns the table stored under key, or nil if there is none.
func (F *File) Table(key string) *dos.Table {
	return F.tables[key]
}

// Len returns the number of tables in the container.
func (F *File) Len() int {
	return len(F.tables)
}
