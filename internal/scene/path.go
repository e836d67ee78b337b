// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scene/path.go
// Summary: Path builder and the shape constructors used by particles and shapes.

package scene

import (
	"math"

	"github.com/framegrace/texelfx/internal/geom"
)

// Verb identifies a path segment type.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Segment is one path command; unused points are zero.
type Segment struct {
	Verb Verb
	P    [3]geom.Vec2
}

// Path is an ordered list of segments in pixel space.
type Path struct {
	Segs []Segment
}

func (p *Path) MoveTo(a geom.Vec2) { p.Segs = append(p.Segs, Segment{Verb: MoveTo, P: [3]geom.Vec2{a}}) }
func (p *Path) LineTo(a geom.Vec2) { p.Segs = append(p.Segs, Segment{Verb: LineTo, P: [3]geom.Vec2{a}}) }
func (p *Path) QuadTo(c, a geom.Vec2) {
	p.Segs = append(p.Segs, Segment{Verb: QuadTo, P: [3]geom.Vec2{c, a}})
}
func (p *Path) CubeTo(c1, c2, a geom.Vec2) {
	p.Segs = append(p.Segs, Segment{Verb: CubeTo, P: [3]geom.Vec2{c1, c2, a}})
}
func (p *Path) Close() { p.Segs = append(p.Segs, Segment{Verb: Close}) }

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p.Segs) < 2 }

// Polyline flattens the path into point runs, one per subpath. Curves are
// subdivided into tol-sized steps.
func (p Path) Polyline(tol float64) [][]geom.Vec2 {
	if tol <= 0 {
		tol = 1
	}
	var out [][]geom.Vec2
	var cur []geom.Vec2
	var start, last geom.Vec2
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, s := range p.Segs {
		switch s.Verb {
		case MoveTo:
			flush()
			start, last = s.P[0], s.P[0]
			cur = append(cur, last)
		case LineTo:
			last = s.P[0]
			cur = append(cur, last)
		case QuadTo:
			n := steps(last.Sub(s.P[0]).Len()+s.P[0].Sub(s.P[1]).Len(), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, last.Scale(u*u).Add(s.P[0].Scale(2*u*t)).Add(s.P[1].Scale(t*t)))
			}
			last = s.P[1]
		case CubeTo:
			n := steps(last.Sub(s.P[0]).Len()+s.P[0].Sub(s.P[1]).Len()+s.P[1].Sub(s.P[2]).Len(), tol)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				pt := last.Scale(u * u * u).
					Add(s.P[0].Scale(3 * u * u * t)).
					Add(s.P[1].Scale(3 * u * t * t)).
					Add(s.P[2].Scale(t * t * t))
				cur = append(cur, pt)
			}
			last = s.P[2]
		case Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
			last = start
		}
	}
	flush()
	return out
}

func steps(length, tol float64) int {
	n := int(math.Ceil(length / tol))
	if n < 2 {
		return 2
	}
	if n > 64 {
		return 64
	}
	return n
}

// RectPath returns a closed rectangle path.
func RectPath(r geom.Rect) Path {
	var p Path
	p.MoveTo(r.Min)
	p.LineTo(geom.V(r.Max.X, r.Min.Y))
	p.LineTo(r.Max)
	p.LineTo(geom.V(r.Min.X, r.Max.Y))
	p.Close()
	return p
}

// Ellipse returns an ellipse approximated with four cubic arcs.
func Ellipse(c geom.Vec2, rx, ry float64) Path {
	const k = 0.5522847498
	var p Path
	p.MoveTo(geom.V(c.X+rx, c.Y))
	p.CubeTo(geom.V(c.X+rx, c.Y+ry*k), geom.V(c.X+rx*k, c.Y+ry), geom.V(c.X, c.Y+ry))
	p.CubeTo(geom.V(c.X-rx*k, c.Y+ry), geom.V(c.X-rx, c.Y+ry*k), geom.V(c.X-rx, c.Y))
	p.CubeTo(geom.V(c.X-rx, c.Y-ry*k), geom.V(c.X-rx*k, c.Y-ry), geom.V(c.X, c.Y-ry))
	p.CubeTo(geom.V(c.X+rx*k, c.Y-ry), geom.V(c.X+rx, c.Y-ry*k), geom.V(c.X+rx, c.Y))
	p.Close()
	return p
}

// Circle is Ellipse with equal radii.
func Circle(c geom.Vec2, r float64) Path { return Ellipse(c, r, r) }

// Polygon returns a regular n-gon with its first vertex pointing up, rotated by rot.
func Polygon(c geom.Vec2, r float64, n int, rot float64) Path {
	if n < 3 {
		n = 3
	}
	var p Path
	for i := 0; i < n; i++ {
		a := rot - math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pt := geom.V(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.Close()
	return p
}

// Star returns an n-point star; inner is the inner radius as a fraction of r.
func Star(c geom.Vec2, r float64, points int, inner, rot float64) Path {
	if points < 2 {
		points = 5
	}
	var p Path
	for i := 0; i < points*2; i++ {
		rad := r
		if i%2 == 1 {
			rad = r * inner
		}
		a := rot - math.Pi/2 + math.Pi*float64(i)/float64(points)
		pt := geom.V(c.X+rad*math.Cos(a), c.Y+rad*math.Sin(a))
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.Close()
	return p
}

// Heart returns a heart of roughly 2r width centred on c, rotated by rot.
func Heart(c geom.Vec2, r, rot float64) Path {
	pts := [...]geom.Vec2{
		{X: 0, Y: 0.35}, // top notch
		{X: 0, Y: -0.05}, {X: -0.5, Y: -0.05}, {X: -0.5, Y: 0.35},
		{X: -0.5, Y: 0.65}, {X: -0.15, Y: 0.85}, {X: 0, Y: 1},
		{X: 0.15, Y: 0.85}, {X: 0.5, Y: 0.65}, {X: 0.5, Y: 0.35},
		{X: 0.5, Y: -0.05}, {X: 0, Y: -0.05}, {X: 0, Y: 0.35},
	}
	tr := func(v geom.Vec2) geom.Vec2 {
		// Unit heart spans y in [0,1]; shift so the centre sits at c.
		return v.Sub(geom.V(0, 0.5)).Scale(2 * r).Rotate(rot).Add(c)
	}
	var p Path
	p.MoveTo(tr(pts[0]))
	for i := 1; i+2 < len(pts); i += 3 {
		p.CubeTo(tr(pts[i]), tr(pts[i+1]), tr(pts[i+2]))
	}
	p.Close()
	return p
}

// Triangle returns an equilateral triangle pointing up.
func Triangle(c geom.Vec2, r, rot float64) Path { return Polygon(c, r, 3, rot) }

// Sparkle returns a four-point sparkle with a thin waist.
func Sparkle(c geom.Vec2, r, rot float64) Path { return Star(c, r, 4, 0.25, rot) }

// Transform maps every point of p through fn.
func (p Path) Transform(fn func(geom.Vec2) geom.Vec2) Path {
	out := Path{Segs: make([]Segment, len(p.Segs))}
	for i, s := range p.Segs {
		for j := range s.P {
			s.P[j] = fn(s.P[j])
		}
		out.Segs[i] = s
	}
	return out
}
