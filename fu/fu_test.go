package fu

import (
	"gotest.tools/assert"
	"math"
	"path/filepath"
	"testing"
)

func Test_Median(t *testing.T) {
	assert.Assert(t, Median([]float64{3, 1, 2}) == 2)
	assert.Assert(t, Median([]float64{4, 1, 3, 2}) == 2.5)
	assert.Assert(t, math.IsNaN(Median(nil)))
	a := []float64{3, 1, 2}
	Median(a)
	assert.DeepEqual(t, a, []float64{3, 1, 2})
}

func Test_Indmaxd(t *testing.T) {
	assert.Assert(t, Indmaxd([]float64{0.1, 0.7, 0.2}) == 1)
	assert.Assert(t, Indmaxd([]float64{1, 1}) == 0)
	assert.Assert(t, Indmaxd(nil) == -1)
}

func Test_Ints(t *testing.T) {
	assert.Assert(t, Fnzi(0, 0, 3, 4) == 3)
	assert.Assert(t, Fnzi() == 0)
	assert.Assert(t, Mini(3, 1, 2) == 1)
	assert.Assert(t, Maxi(3, 1, 5) == 5)
}

func Test_LayerName(t *testing.T) {
	assert.Equal(t, LayerName("input_age"), "input_age")
	assert.Equal(t, LayerName(" asdf @$@#$@#"), "x_asdf________")
	assert.Equal(t, LayerName("12342342"), "12342342")
	assert.Equal(t, LayerName("input_prénom"), "input_pr_nom")
	assert.Equal(t, LayerName(""), "x")
}

func Test_ModelPath(t *testing.T) {
	abs, _ := filepath.Abs("automater.xz")
	assert.Equal(t, ModelPath(abs), abs)
}
