/*
 * table.go, part of godos.
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
	"strings"
)

// Column is one named column of a Table.
type Column struct {
	Name string
	Data []float64
}

// Table is an ordered collection of named float64 columns, the reconciled
// output of one calculation. Columns that belong to the same orbital pair
// have the same length; columns of different orbitals need not.
type Table struct {
	cols []*Column
}

// AddColumn appends a column to the table. The data slice is taken over,
// not copied.
func (T *Table) AddColumn(name string, data []float64) {
	T.cols = append(T.cols, &Column{Name: name, Data: data})
}

// NCols returns the number of columns in the table.
func (T *Table) NCols() int {
	return len(T.cols)
}

// Columns returns the columns in insertion order.
func (T *Table) Columns() []*Column {
	return T.cols
}

// Col returns the column with the given name, or nil if the table has no
// such column.
func (T *Table) Col(name string) *Column {
	for _, v := range T.cols {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (T *Table) String() string {
	names := make([]string, 0, len(T.cols))
	for _, v := range T.cols {
		names = append(names, fmt.Sprintf("%s(%d)", v.Name, len(v.Data)))
	}
	return "Table[" + strings.Join(names, " ") + "]"
}
