package tables

import (
	"fmt"
	"go-ml.dev/pkg/zorros"
	"math"
	"reflect"
	"strconv"
	"time"
)

/*
Column is an immutable sequence of cells. A nil cell or a NaN float is missing (NA).
*/
type Column struct {
	values []interface{}
}

/*
Col creates a new column from a slice of any kind, or from a *Column which is returned as is
*/
func Col(a interface{}) *Column {
	if c, ok := a.(*Column); ok {
		return c
	}
	if q, ok := a.([]interface{}); ok {
		v := make([]interface{}, len(q))
		copy(v, q)
		return &Column{v}
	}
	v := reflect.ValueOf(a)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		panic(zorros.Panic(zorros.Errorf("only slices can be converted into column, got %v", v.Type())))
	}
	q := make([]interface{}, v.Len())
	for i := range q {
		q[i] = v.Index(i).Interface()
	}
	return &Column{q}
}

func (c *Column) Len() int {
	return len(c.values)
}

func (c *Column) Interface(i int) interface{} {
	return c.values[i]
}

// Values returns a copy of the column cells
func (c *Column) Values() []interface{} {
	v := make([]interface{}, len(c.values))
	copy(v, c.values)
	return v
}

// Na reports whether the i-th cell is missing
func (c *Column) Na(i int) bool {
	return Na(c.values[i])
}

/*
Float converts the i-th cell into float64. Missing cells and unconvertible values are NaN.
*/
func (c *Column) Float(i int) float64 {
	f, ok := Float(c.values[i])
	if !ok {
		return math.NaN()
	}
	return f
}

func (c *Column) String(i int) string {
	return String(c.values[i])
}

// Strings converts all cells into strings, missing cells become empty strings
func (c *Column) Strings() []string {
	r := make([]string, len(c.values))
	for i, v := range c.values {
		r[i] = String(v)
	}
	return r
}

// Floats converts all cells into float64, missing cells become NaN
func (c *Column) Floats() []float64 {
	r := make([]float64, len(c.values))
	for i := range c.values {
		r[i] = c.Float(i)
	}
	return r
}

func Na(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

/*
Float converts a cell value into float64 when it's possible
*/
func Float(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil && !math.IsNaN(f)
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil && !math.IsNaN(f)
	case time.Time:
		return float64(x.UnixNano()), true
	}
	return 0, false
}

func String(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return ""
		}
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
