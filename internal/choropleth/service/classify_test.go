package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"choropleth-service/internal/choropleth/model"
)

func TestClassifier_Empty(t *testing.T) {
	c := NewClassifier(nil, len(DefaultPalette))
	assert.Equal(t, 0, c.Classify(nil))
	assert.Equal(t, 0, c.Classify(model.Float(42)))
	assert.Empty(t, c.Thresholds())
}

func TestClassifier_AllEqual(t *testing.T) {
	c := NewClassifier([]float64{50, 50, 50}, len(DefaultPalette))
	assert.Equal(t, 11, c.Classify(model.Float(50)))
	assert.Equal(t, 11, c.Classify(model.Float(-1)))
	assert.Equal(t, 0, c.Classify(nil))
}

func TestClassifier_Thresholds(t *testing.T) {
	values := make([]float64, 0, 13)
	for i := 13; i >= 1; i-- {
		values = append(values, float64(i))
	}
	c := NewClassifier(values, 12)
	assert.Equal(t, []float64{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, c.Thresholds())

	assert.Equal(t, 0, c.Classify(model.Float(1)))
	assert.Equal(t, 0, c.Classify(model.Float(2)))
	assert.Equal(t, 1, c.Classify(model.Float(2.5)))
	assert.Equal(t, 10, c.Classify(model.Float(12)))
	assert.Equal(t, 11, c.Classify(model.Float(13)))
	assert.Equal(t, 11, c.Classify(model.Float(1e9)))
	assert.Equal(t, 0, c.Classify(nil))
}

func TestClassifier_FewValues(t *testing.T) {
	c := NewClassifier([]float64{30, 10, 50, 20, 40}, 12)
	assert.Equal(t, []float64{10, 10, 20, 20, 20, 30, 30, 30, 40, 40, 40}, c.Thresholds())
	assert.Equal(t, 0, c.Classify(model.Float(10)))
	assert.Equal(t, 2, c.Classify(model.Float(20)))
	assert.Equal(t, 5, c.Classify(model.Float(30)))
	assert.Equal(t, 8, c.Classify(model.Float(40)))
	assert.Equal(t, 11, c.Classify(model.Float(50)))
}

func TestClassifier_OrderIndependent(t *testing.T) {
	base := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4}
	ref := NewClassifier(base, 12)
	probes := []float64{-10, 0, 1, 2, 2.5, 3, 4.4, 5, 6, 7, 8, 8.9, 9, 100}

	rng := rand.New(rand.NewSource(7))
	for range 20 {
		perm := append([]float64(nil), base...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		c := NewClassifier(perm, 12)
		assert.Equal(t, ref.Thresholds(), c.Thresholds())
		for _, p := range probes {
			assert.Equal(t, ref.Classify(model.Float(p)), c.Classify(model.Float(p)), "probe %v", p)
		}
	}
}

func TestClassifier_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	NewClassifier(in, 4)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestPalette_Color(t *testing.T) {
	assert.Equal(t, "#f3f0eb", DefaultPalette.Color(0))
	assert.Equal(t, "#9f2241", DefaultPalette.Color(11))
	assert.Equal(t, "#9f2241", DefaultPalette.Color(40))
	assert.Equal(t, "#f3f0eb", DefaultPalette.Color(-1))
	assert.Equal(t, "", Palette(nil).Color(0))
}
