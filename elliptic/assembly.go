package elliptic

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// mesh is a structured triangulation of the unit square: n x n cells, each
// split into two P1 triangles, homogeneous Dirichlet boundary. Only
// interior nodes carry degrees of freedom.
type mesh struct {
	n      int
	h      float64
	coords [][2]float64 // per grid node
	index  []int        // grid node -> interior DOF index, -1 on the boundary
	numInt int
}

func newMesh(n int) *mesh {
	m := &mesh{
		n:      n,
		h:      1 / float64(n),
		coords: make([][2]float64, (n+1)*(n+1)),
		index:  make([]int, (n+1)*(n+1)),
	}
	for iy := 0; iy <= n; iy++ {
		for ix := 0; ix <= n; ix++ {
			id := m.nodeID(ix, iy)
			m.coords[id] = [2]float64{float64(ix) * m.h, float64(iy) * m.h}
			if ix == 0 || iy == 0 || ix == n || iy == n {
				m.index[id] = -1
			} else {
				m.index[id] = m.numInt
				m.numInt++
			}
		}
	}
	return m
}

func (m *mesh) nodeID(ix, iy int) int { return ix + iy*(m.n+1) }

// cellTriangles returns the two triangles of cell (cx, cy) as grid node
// triples, counterclockwise.
func (m *mesh) cellTriangles(cx, cy int) [2][3]int {
	a := m.nodeID(cx, cy)
	b := m.nodeID(cx+1, cy)
	c := m.nodeID(cx+1, cy+1)
	d := m.nodeID(cx, cy+1)
	return [2][3]int{{a, b, c}, {a, c, d}}
}

// triArea returns the signed area of the triangle spanned by the nodes.
func triArea(p [3][2]float64) float64 {
	return 0.5 * ((p[1][0]-p[0][0])*(p[2][1]-p[0][1]) - (p[2][0]-p[0][0])*(p[1][1]-p[0][1]))
}

// triStiffness is the P1 element stiffness for a unit diffusion
// coefficient: K_ij = area * grad phi_i . grad phi_j.
func triStiffness(p [3][2]float64) (k [3][3]float64) {
	area := triArea(p)
	var bb, cc [3]float64
	for i := 0; i < 3; i++ {
		j, l := (i+1)%3, (i+2)%3
		bb[i] = p[j][1] - p[l][1]
		cc[i] = p[l][0] - p[j][0]
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k[i][j] = (bb[i]*bb[j] + cc[i]*cc[j]) / (4 * area)
		}
	}
	return
}

// triMass is the consistent P1 mass matrix: area/12 * (1 + delta_ij).
func triMass(area float64) (k [3][3]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k[i][j] = area / 12
			if i == j {
				k[i][j] *= 2
			}
		}
	}
	return
}

// blockOf maps a cell to its thermal block index, row-major over the
// xb x yb block layout.
func (m *mesh) blockOf(cx, cy, xb, yb int) int {
	bx := cx * xb / m.n
	if bx > xb-1 {
		bx = xb - 1
	}
	by := cy * yb / m.n
	if by > yb-1 {
		by = yb - 1
	}
	return by*xb + bx
}

// assembleBlocks builds one stiffness component per thermal block, the
// global mass matrix, the h1 product (unit stiffness plus mass) and the
// unit-load right-hand side, all restricted to interior DOFs.
func (m *mesh) assembleBlocks(xb, yb int) (ops []*sparse.CSR, h1 *sparse.CSR, rhs *mat.VecDense) {
	nb := xb * yb
	blockDOKs := make([]*sparse.DOK, nb)
	for b := range blockDOKs {
		blockDOKs[b] = sparse.NewDOK(m.numInt, m.numInt)
	}
	h1DOK := sparse.NewDOK(m.numInt, m.numInt)
	load := make([]float64, m.numInt)

	add := func(dok *sparse.DOK, i, j int, v float64) {
		dok.Set(i, j, dok.At(i, j)+v)
	}

	for cy := 0; cy < m.n; cy++ {
		for cx := 0; cx < m.n; cx++ {
			block := m.blockOf(cx, cy, xb, yb)
			for _, tri := range m.cellTriangles(cx, cy) {
				var p [3][2]float64
				for i, node := range tri {
					p[i] = m.coords[node]
				}
				stiff := triStiffness(p)
				mass := triMass(triArea(p))
				area := triArea(p)
				for i := 0; i < 3; i++ {
					di := m.index[tri[i]]
					if di < 0 {
						continue
					}
					load[di] += area / 3
					for j := 0; j < 3; j++ {
						dj := m.index[tri[j]]
						if dj < 0 {
							continue
						}
						add(blockDOKs[block], di, dj, stiff[i][j])
						add(h1DOK, di, dj, stiff[i][j]+mass[i][j])
					}
				}
			}
		}
	}

	ops = make([]*sparse.CSR, nb)
	for b, dok := range blockDOKs {
		ops[b] = dok.ToCSR()
	}
	return ops, h1DOK.ToCSR(), mat.NewVecDense(len(load), load)
}

// subdomainOf maps an interior node to its subdomain, row-major over the
// sx x sy layout. Interior node coordinates run 1..n-1 in each direction.
func (m *mesh) subdomainOf(ix, iy, sx, sy int) int {
	px := (ix - 1) * sx / (m.n - 1)
	if px > sx-1 {
		px = sx - 1
	}
	py := (iy - 1) * sy / (m.n - 1)
	if py > sy-1 {
		py = sy - 1
	}
	return py*sx + px
}

// partition groups the interior DOFs into sx*sy disjoint subdomains.
func (m *mesh) partition(sx, sy int) [][]int {
	part := make([][]int, sx*sy)
	for iy := 1; iy < m.n; iy++ {
		for ix := 1; ix < m.n; ix++ {
			s := m.subdomainOf(ix, iy, sx, sy)
			part[s] = append(part[s], m.index[m.nodeID(ix, iy)])
		}
	}
	return part
}

// restrict extracts the square submatrix of a coupling both ends inside the
// index set.
func restrict(a *sparse.CSR, idx []int) *sparse.CSR {
	local := make(map[int]int, len(idx))
	for li, gi := range idx {
		local[gi] = li
	}
	dok := sparse.NewDOK(len(idx), len(idx))
	a.DoNonZero(func(i, j int, v float64) {
		li, ok := local[i]
		if !ok {
			return
		}
		lj, ok := local[j]
		if !ok {
			return
		}
		dok.Set(li, lj, v)
	})
	return dok.ToCSR()
}
