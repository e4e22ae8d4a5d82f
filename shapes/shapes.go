// Package shapes evaluates parametric surfaces over a square grid, four
// grid indices at a time.
package shapes

import (
	"fmt"
	"strings"

	"github.com/qwes348/Pseudorandom-Noise/wide"
)

// Point4 is the position and normal of four surface samples.
type Point4 struct {
	Positions wide.Float4x3
	Normals   wide.Float4x3
}

// Shape maps batch i of a resolution x resolution grid to surface samples.
// Implementations are pure and total; padding lanes past resolution² are
// evaluated like any other.
type Shape interface {
	Point4(i, resolution int, invResolution float32) Point4
}

// Kind selects a shape variant.
type Kind int

const (
	KindPlane Kind = iota
	KindSphere
	KindTorus
	numKinds
)

var kindNames = [numKinds]string{"plane", "sphere", "torus"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known shape.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// ParseKind resolves a shape name, case-insensitively.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Kind(k), true
		}
	}
	return KindPlane, false
}

// Kinds returns every shape kind in order.
func Kinds() []Kind {
	return []Kind{KindPlane, KindSphere, KindTorus}
}

// indexToUV maps batch i to the centres of its four grid cells in [0,1)².
// Rows come from integer division so no cell lands in a neighbouring row
// through float rounding.
func indexToUV(i, resolution int, invResolution float32) (u, v wide.F32x4) {
	for lane := 0; lane < wide.Lanes; lane++ {
		idx := 4*i + lane
		row := idx / resolution
		u[lane] = invResolution * (float32(idx-resolution*row) + 0.5)
		v[lane] = invResolution * (float32(row) + 0.5)
	}
	return u, v
}
