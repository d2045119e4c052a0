package tables

import (
	"context"
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"gotest.tools/assert"
	"math"
	"testing"
)

func Test_Columns(t *testing.T) {
	c := Col([]interface{}{1, "2.5", nil, math.NaN(), true, "x"})
	assert.Assert(t, c.Len() == 6)
	assert.Assert(t, c.Float(0) == 1)
	assert.Assert(t, c.Float(1) == 2.5)
	assert.Assert(t, c.Na(2))
	assert.Assert(t, c.Na(3))
	assert.Assert(t, c.Float(4) == 1)
	assert.Assert(t, math.IsNaN(c.Float(5)))
	assert.Equal(t, c.String(0), "1")
	assert.Equal(t, c.String(2), "")
	assert.Equal(t, c.String(5), "x")
	assert.DeepEqual(t, Col([]float64{1.5, 2}).Strings(), []string{"1.5", "2"})
}

func Test_Table(t *testing.T) {
	q := Lucky(map[string]interface{}{
		"b": []string{"x", "y", "z"},
		"a": []float64{1, 2, 3},
	})
	assert.Assert(t, q.Len() == 3)
	assert.DeepEqual(t, q.Names(), []string{"a", "b"})
	assert.Assert(t, q.Has("a") && !q.Has("c"))
	assert.DeepEqual(t, q.Missing("a", "c", "d"), []string{"c", "d"})

	w := q.With(Col([]int{7, 8, 9}), "c")
	assert.DeepEqual(t, w.Names(), []string{"a", "b", "c"})
	assert.DeepEqual(t, q.Names(), []string{"a", "b"})
	assert.Assert(t, w.Col("c").Float(2) == 9)

	r := w.With(Col([]int{0, 0, 0}), "a")
	assert.DeepEqual(t, r.Names(), []string{"a", "b", "c"})
	assert.Assert(t, r.Col("a").Float(1) == 0)

	assert.DeepEqual(t, w.Except("b").Names(), []string{"a", "c"})
	assert.DeepEqual(t, w.Only("c", "a").Names(), []string{"c", "a"})
	assert.Equal(t, w.Row(1)["b"], "y")
}

func Test_TableMismatch(t *testing.T) {
	_, err := New(map[string]interface{}{
		"a": []float64{1, 2, 3},
		"b": []float64{1, 2},
	})
	assert.ErrorContains(t, err, "rows")
}

func Test_Sqlite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	assert.NilError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`create table iris (sepal_length real, species text)`)
	assert.NilError(t, err)
	_, err = db.Exec(`insert into iris values (5.1, 'setosa'), (NULL, 'virginica'), (6.3, NULL)`)
	assert.NilError(t, err)

	q, err := Query(context.Background(), db, `select sepal_length, species from iris`)
	assert.NilError(t, err)
	assert.Assert(t, q.Len() == 3)
	assert.DeepEqual(t, q.Names(), []string{"sepal_length", "species"})
	assert.Assert(t, q.Col("sepal_length").Float(0) == 5.1)
	assert.Assert(t, q.Col("sepal_length").Na(1))
	assert.Equal(t, q.Col("species").String(1), "virginica")
	assert.Assert(t, q.Col("species").Na(2))

	e, err := Query(context.Background(), db, `select * from iris where 1 = 0`)
	assert.NilError(t, err)
	assert.Assert(t, e.Len() == 0)
	assert.DeepEqual(t, e.Names(), []string{"sepal_length", "species"})
}

func Test_Batch(t *testing.T) {
	q := Lucky(map[string]interface{}{
		"a": []int{0, 1, 2, 3, 4, 5, 6},
		"b": []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	bs := q.Batch(3)
	assert.Assert(t, len(bs) == 3)
	assert.Assert(t, bs[0].Len() == 3 && bs[2].Len() == 1)
	assert.DeepEqual(t, bs[1].Col("a").Floats(), []float64{3, 4, 5})
	assert.DeepEqual(t, bs[2].Col("b").Strings(), []string{"g"})
	assert.DeepEqual(t, bs[2].Names(), q.Names())

	assert.Assert(t, q.Slice(5, 100).Len() == 2)
	assert.Assert(t, q.Slice(6, 2).Len() == 0)
	assert.Assert(t, len(NewEmpty().Batch(10)) == 0)
}
