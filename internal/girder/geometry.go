package girder

import (
	"math"
	"sort"
)

// Properties holds the gross section properties of the girder
type Properties struct {
	Height float64 // mm
	Area   float64 // mm²
	Yb     float64 // centroid above the bottom (mm)
	Ix     float64 // moment of inertia about the centroid (mm⁴)
	Sb     float64 // bottom section modulus (mm³)
	St     float64 // top section modulus (mm³)

	TopWidth    float64 // width just below the top surface (mm)
	MinWebWidth float64 // narrowest width between the flanges (mm)

	MinY float64
	MaxY float64
}

// Properties computes the gross section properties from the vertices
func (g *Girder) Properties() Properties {
	var p Properties
	v := g.Vertices
	if len(v) < 3 {
		return p
	}

	p.MinY, p.MaxY = v[0].Y, v[0].Y
	for _, pt := range v {
		p.MinY = math.Min(p.MinY, pt.Y)
		p.MaxY = math.Max(p.MaxY, pt.Y)
	}
	p.Height = p.MaxY - p.MinY

	var area, sy, iyy float64
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := v[i].X*v[j].Y - v[j].X*v[i].Y
		area += cross
		sy += (v[i].Y + v[j].Y) * cross
		iyy += (v[i].Y*v[i].Y + v[i].Y*v[j].Y + v[j].Y*v[j].Y) * cross
	}
	area /= 2
	if area == 0 {
		return p
	}
	cy := sy / (6 * area)
	ix := iyy/12 - area*cy*cy

	p.Area = math.Abs(area)
	p.Ix = math.Abs(ix)
	p.Yb = cy - p.MinY
	if p.Yb > 0 {
		p.Sb = p.Ix / p.Yb
	}
	if yt := p.Height - p.Yb; yt > 0 {
		p.St = p.Ix / yt
	}

	p.TopWidth = g.widthAtY(p.MaxY - 1)
	p.MinWebWidth = g.minWebWidth(p)
	return p
}

// minWebWidth samples the section between 10% and 90% of the height
func (g *Girder) minWebWidth(p Properties) float64 {
	const samples = 40
	m := math.Inf(1)
	for i := 0; i <= samples; i++ {
		y := p.MinY + p.Height*(0.1+0.8*float64(i)/samples)
		if w := g.widthAtY(y); w > 0 {
			m = math.Min(m, w)
		}
	}
	if math.IsInf(m, 1) {
		return 0
	}
	return m
}

// WidthAtDepth calculates the width of the section at a given depth from top
func (g *Girder) WidthAtDepth(depthFromTop float64) float64 {
	maxY := g.Vertices[0].Y
	for _, v := range g.Vertices {
		maxY = math.Max(maxY, v.Y)
	}
	return g.widthAtY(maxY - depthFromTop)
}

// widthAtY calculates the width at a specific Y coordinate
func (g *Girder) widthAtY(y float64) float64 {
	xs := g.intersectionsAtY(y)
	if len(xs) < 2 {
		return 0
	}
	sort.Float64s(xs)

	var w float64
	for i := 0; i+1 < len(xs); i += 2 {
		w += xs[i+1] - xs[i]
	}
	return w
}

// intersectionsAtY finds the X coordinates where a horizontal line at y
// crosses the outline
func (g *Girder) intersectionsAtY(y float64) []float64 {
	var xs []float64
	n := len(g.Vertices)
	for i := 0; i < n; i++ {
		v1, v2 := g.Vertices[i], g.Vertices[(i+1)%n]
		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			xs = append(xs, v1.X+t*(v2.X-v1.X))
		}
	}
	return xs
}
