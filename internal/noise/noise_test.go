package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalRangeAndDeterminism(t *testing.T) {
	a, b := New(7), New(7)
	for _, kind := range []Kind{OpenSimplex, Perlin, Cellular} {
		t.Run(kind.String(), func(t *testing.T) {
			for i := 0; i < 200; i++ {
				x, y := float64(i)*3.7-300, float64(i*i%97)*1.3
				v := a.Eval2(kind, 0.05, x, y)
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
				assert.Equal(t, v, b.Eval2(kind, 0.05, x, y))

				w := a.Eval3(kind, 2, x/100, y/100, 0.3)
				assert.GreaterOrEqual(t, w, -1.0)
				assert.LessOrEqual(t, w, 1.0)
			}
		})
	}
}

func TestCellularFeaturePointsReachMinusOne(t *testing.T) {
	// Every cell holds a feature point, so sweeping a cell finely must get
	// close to distance zero somewhere.
	minV := 1.0
	for i := 0; i < 100; i++ {
		for j := 0; j < 100; j++ {
			v := cellular2(3, float64(i)/100, float64(j)/100)
			if v < minV {
				minV = v
			}
		}
	}
	assert.Less(t, minV, -0.9)
}

func TestSeedChangesField(t *testing.T) {
	a, b := New(1), New(2)
	differs := false
	for i := 0; i < 50 && !differs; i++ {
		x := float64(i) * 0.71
		differs = a.Eval2(Cellular, 1, x, x*0.5) != b.Eval2(Cellular, 1, x, x*0.5)
	}
	assert.True(t, differs)
	assert.Equal(t, int64(2), b.Seed())
}
