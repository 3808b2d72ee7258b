/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package layout

import "math"

type vec struct{ x, y float64 }

func fromAngle(a float64) vec {
	return vec{math.Cos(a), math.Sin(a)}
}

func (v vec) add(w vec) vec {
	return vec{v.x + w.x, v.y + w.y}
}

func (v vec) sub(w vec) vec {
	return vec{v.x - w.x, v.y - w.y}
}

func (v vec) scale(f float64) vec {
	return vec{v.x * f, v.y * f}
}

func (v vec) dot(w vec) float64 {
	return v.x*w.x + v.y*w.y
}

func (v vec) cross(w vec) float64 {
	return v.x*w.y - v.y*w.x
}

func (v vec) length() float64 {
	return math.Hypot(v.x, v.y)
}

func (v vec) angle() float64 {
	return math.Atan2(v.y, v.x)
}

func (v vec) perp() vec {
	return vec{-v.y, v.x}
}

func (v vec) dist(w vec) float64 {
	return v.sub(w).length()
}

func (v vec) rotate(a float64) vec {
	s, c := math.Sincos(a)
	return vec{v.x*c - v.y*s, v.x*s + v.y*c}
}

func (v vec) unit() vec {
	l := v.length()
	if l == 0 {
		return vec{1, 0}
	}
	return v.scale(1 / l)
}

// reflect mirrors v across the line through a and b.
func (v vec) reflect(a, b vec) vec {
	d := b.sub(a).unit()
	proj := a.add(d.scale(v.sub(a).dot(d)))
	return proj.scale(2).sub(v)
}

// normalizeAngle maps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// positiveAngle maps a into [0, 2π).
func positiveAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func centroid(points []vec) vec {
	if len(points) == 0 {
		return vec{}
	}
	var c vec
	for _, p := range points {
		c = c.add(p)
	}
	return c.scale(1 / float64(len(points)))
}

// segmentDistance returns the distance from p to the segment a-b and the
// position t in [0, 1] of the closest point along it.
func segmentDistance(p, a, b vec) (float64, float64) {
	ab := b.sub(a)
	ll := ab.dot(ab)
	if ll == 0 {
		return p.dist(a), 0
	}
	t := math.Max(0, math.Min(1, p.sub(a).dot(ab)/ll))
	return p.dist(a.add(ab.scale(t))), t
}
