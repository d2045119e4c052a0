package tables

import (
	"go-ml.dev/pkg/autonub/fu"
	"go-ml.dev/pkg/zorros"
	"sort"
)

/*
Table is an immutable in-memory dataframe, a set of equally sized named columns.
Every modifying method returns a new table sharing columns with the original one.
*/
type Table struct {
	names   []string
	columns []*Column
	length  int
}

/*
NewEmpty creates a table without columns and rows
*/
func NewEmpty() *Table {
	return &Table{}
}

/*
New creates a table from the column map, columns are ordered by name
*/
func New(columns map[string]interface{}) (*Table, error) {
	names := make([]string, 0, len(columns))
	for n := range columns {
		names = append(names, n)
	}
	sort.Strings(names)
	t := NewEmpty()
	for _, n := range names {
		c := Col(columns[n])
		if len(t.names) > 0 && c.Len() != t.length {
			return nil, zorros.Errorf("column `%v` has %d rows but table has %d", n, c.Len(), t.length)
		}
		t = t.with(c, n)
	}
	return t, nil
}

/*
Lucky creates a table from the column map and panics if columns have different lengths
*/
func Lucky(columns map[string]interface{}) *Table {
	t, err := New(columns)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return t
}

func (t *Table) Len() int {
	return t.length
}

func (t *Table) Names() []string {
	r := make([]string, len(t.names))
	copy(r, t.names)
	return r
}

func (t *Table) index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (t *Table) Has(name string) bool {
	return t.index(name) >= 0
}

/*
Col returns the column by name and panics if there is no such column
*/
func (t *Table) Col(name string) *Column {
	i := t.index(name)
	if i < 0 {
		panic(zorros.Panic(zorros.Errorf("table does not have column `%v`", name)))
	}
	return t.columns[i]
}

/*
Missing returns names which are not columns of the table, preserving the requested order
*/
func (t *Table) Missing(names ...string) []string {
	var r []string
	for _, n := range names {
		if !t.Has(n) {
			r = append(r, n)
		}
	}
	return r
}

/*
With returns a new table with added or replaced column
*/
func (t *Table) With(c *Column, name string) *Table {
	if len(t.names) > 0 && c.Len() != t.length && !(len(t.names) == 1 && t.Has(name)) {
		panic(zorros.Panic(zorros.Errorf("column `%v` has %d rows but table has %d", name, c.Len(), t.length)))
	}
	return t.with(c, name)
}

func (t *Table) with(c *Column, name string) *Table {
	q := &Table{length: c.Len()}
	replaced := false
	for i, n := range t.names {
		if n == name {
			q.names = append(q.names, n)
			q.columns = append(q.columns, c)
			replaced = true
		} else {
			q.names = append(q.names, n)
			q.columns = append(q.columns, t.columns[i])
		}
	}
	if !replaced {
		q.names = append(q.names, name)
		q.columns = append(q.columns, c)
	}
	return q
}

/*
Except returns a new table without specified columns
*/
func (t *Table) Except(names ...string) *Table {
	q := &Table{length: t.length}
	for i, n := range t.names {
		skip := false
		for _, x := range names {
			if x == n {
				skip = true
				break
			}
		}
		if !skip {
			q.names = append(q.names, n)
			q.columns = append(q.columns, t.columns[i])
		}
	}
	return q
}

/*
Only returns a new table with specified columns in specified order
*/
func (t *Table) Only(names ...string) *Table {
	q := &Table{length: t.length}
	for _, n := range names {
		q.names = append(q.names, n)
		q.columns = append(q.columns, t.Col(n))
	}
	return q
}

/*
Row returns the i-th row as a map name->cell
*/
func (t *Table) Row(i int) map[string]interface{} {
	r := make(map[string]interface{}, len(t.names))
	for j, n := range t.names {
		r[n] = t.columns[j].values[i]
	}
	return r
}

/*
Slice returns a new table with rows [from,to)
*/
func (t *Table) Slice(from, to int) *Table {
	from, to = fu.Maxi(0, fu.Mini(from, t.length)), fu.Maxi(0, fu.Mini(to, t.length))
	if to < from {
		to = from
	}
	q := &Table{names: t.names, length: to - from}
	for _, c := range t.columns {
		q.columns = append(q.columns, &Column{c.values[from:to]})
	}
	return q
}

/*
Batch splits the table into consecutive tables of at most n rows
*/
func (t *Table) Batch(n int) []*Table {
	var r []*Table
	for i := 0; i < t.length; i += fu.Maxi(n, 1) {
		r = append(r, t.Slice(i, i+fu.Maxi(n, 1)))
	}
	return r
}
