/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import "strings"

// Record holds the cells of one data row in header order, as read.
type Record []string

// Table is a delimited file loaded from its header line onward.
type Table struct {
	Header []string
	Rows   []Record
	// HeaderLine is the zero-based line of the header in the source file.
	HeaderLine int
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at column idx, or "" for a short row.
func (r Record) Cell(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// WithRows returns a table sharing t's header with the given rows.
func (t *Table) WithRows(rows []Record) *Table {
	return &Table{
		Header:     t.Header,
		Rows:       rows,
		HeaderLine: t.HeaderLine,
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ADCode is the derived form of an administrative division code. Int is nil
// when Str does not parse as an integer.
type ADCode struct {
	Str string
	Int *int64
}

func (c ADCode) Valid() bool {
	return c.Int != nil
}

// Summary counts what a filter pass saw. A row matching several predicates
// is counted under each of them.
type Summary struct {
	Input         int `json:"input"`
	Kept          int `json:"kept"`
	Prefecture    int `json:"prefecture"`
	Municipality  int `json:"municipality"`
	SpecialRegion int `json:"special_region"`
	Unparsed      int `json:"unparsed"`
}
