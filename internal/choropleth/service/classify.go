package service

import "sort"

// Palette — упорядоченная шкала цветов, от "нет данных/минимум" к максимуму.
type Palette []string

// DefaultPalette is the 12-step institutional scale.
var DefaultPalette = Palette{
	"#f3f0eb",
	"#e8e1d6",
	"#ddd2c1",
	"#d1c2ad",
	"#c6b399",
	"#bca486",
	"#b19573",
	"#a58761",
	"#9a7850",
	"#8e6a40",
	"#7a3946",
	"#9f2241",
}

// Color clamps class into the palette range.
func (p Palette) Color(class int) string {
	if len(p) == 0 {
		return ""
	}
	class = max(0, min(class, len(p)-1))
	return p[class]
}

// Classifier maps values to one of k quantile classes. Thresholds are taken
// from the sorted values, so buckets hold roughly equal counts rather than
// equal widths.
type Classifier struct {
	k          int
	empty      bool
	flat       bool
	thresholds []float64
}

// NewClassifier sorts its own copy of values; input order does not matter.
func NewClassifier(values []float64, k int) *Classifier {
	if k < 1 {
		k = 1
	}
	c := &Classifier{k: k}
	if len(values) == 0 {
		c.empty = true
		return c
	}
	nums := make([]float64, len(values))
	copy(nums, values)
	sort.Float64s(nums)

	n := len(nums)
	if nums[0] == nums[n-1] {
		c.flat = true
		return c
	}
	c.thresholds = make([]float64, 0, k-1)
	for i := 1; i < k; i++ {
		idx := int(float64(i) / float64(k) * float64(n-1))
		c.thresholds = append(c.thresholds, nums[idx])
	}
	return c
}

// Classify returns the class index; nil is always class 0.
func (c *Classifier) Classify(v *float64) int {
	if c == nil || c.empty || v == nil {
		return 0
	}
	if c.flat {
		return c.k - 1
	}
	bucket := 0
	for bucket < len(c.thresholds) && *v > c.thresholds[bucket] {
		bucket++
	}
	return min(bucket, c.k-1)
}

func (c *Classifier) Classes() int { return c.k }

func (c *Classifier) Thresholds() []float64 {
	out := make([]float64, len(c.thresholds))
	copy(out, c.thresholds)
	return out
}
