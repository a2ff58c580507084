package material

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a smoothed lattice noise field. Its tables are filled once at
// construction and only read afterwards, so it is safe to share between workers.
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	values    [perlinPointCount]float64
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the noise tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := 0; i < perlinPointCount; i++ {
		p.gradients[i] = core.RandomVec3(sampler, -1, 1).Normalize()
		p.values[i] = sampler.Get1D()
	}
	generatePermutation(&p.permX, sampler)
	generatePermutation(&p.permY, sampler)
	generatePermutation(&p.permZ, sampler)
	return p
}

// generatePermutation fills perm with a Fisher-Yates shuffle of 0..n-1
func generatePermutation(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := core.RandomInt(sampler, 0, i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// hash maps a lattice corner to a table slot
func (p *Perlin) hash(i, j, k int) int {
	return p.permX[i&255] ^ p.permY[j&255] ^ p.permZ[k&255]
}

// Noise returns gradient noise at point, roughly in [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.gradients[p.hash(i+di, j+dj, k+dk)]
			}
		}
	}

	return perlinInterpolate(&c, u, v, w)
}

// ValueNoise returns scalar lattice noise at point in [0, 1]
func (p *Perlin) ValueNoise(point core.Vec3) float64 {
	u := hermite(point.X - math.Floor(point.X))
	v := hermite(point.Y - math.Floor(point.Y))
	w := hermite(point.Z - math.Floor(point.Z))

	i := int(math.Floor(point.X))
	j := int(math.Floor(point.Y))
	k := int(math.Floor(point.Z))

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				value := p.values[p.hash(i+di, j+dj, k+dk)]
				accum += weight(di, u) * weight(dj, v) * weight(dk, w) * value
			}
		}
	}
	return accum
}

// Turbulence sums |noise| contributions over depth octaves, doubling the
// frequency and halving the weight each time
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	accum := 0.0
	temp := point
	w := 1.0

	for i := 0; i < depth; i++ {
		accum += w * p.Noise(temp)
		w *= 0.5
		temp = temp.Multiply(2)
	}

	return math.Abs(accum)
}

func perlinInterpolate(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	uu := hermite(u)
	vv := hermite(v)
	ww := hermite(w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				offset := core.NewVec3(u-float64(i), v-float64(j), w-float64(k))
				accum += weight(i, uu) * weight(j, vv) * weight(k, ww) * c[i][j][k].Dot(offset)
			}
		}
	}
	return accum
}

// hermite is the 3t²-2t³ smoothing curve
func hermite(t float64) float64 {
	return t * t * (3 - 2*t)
}

// weight is the trilinear weight of corner 0 or 1 along one axis
func weight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}
