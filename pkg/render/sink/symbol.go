package sink

import (
	"math"
	"strconv"
	"strings"
)

// Symbol types.
const (
	SymbolCircle   = "circle"
	SymbolCross    = "cross"
	SymbolDiamond  = "diamond"
	SymbolSquare   = "square"
	SymbolStar     = "star"
	SymbolTriangle = "triangle"
	SymbolWye      = "wye"
)

var (
	sqrt3   = math.Sqrt(3)
	tan30   = math.Sqrt(1.0 / 3)
	starKr  = math.Sin(math.Pi/10) / math.Sin(7*math.Pi/10)
	starKx  = math.Sin(2*math.Pi/10) * starKr
	starKy  = -math.Cos(2*math.Pi/10) * starKr
	wyeK    = 1 / math.Sqrt(12)
	wyeArea = (wyeK/2 + 1) * 3
)

const starKa = 0.8908130915292852

// SymbolPath returns an SVG path centered on the origin for a symbol of
// the given area in square pixels. Unknown types draw a circle.
func SymbolPath(kind string, area float64) string {
	if area <= 0 {
		return ""
	}
	var p pathBuilder
	switch kind {
	case SymbolCross:
		r := math.Sqrt(area/5) / 2
		p.polygon(-3*r, -r, -r, -r, -r, -3*r, r, -3*r, r, -r, 3*r, -r,
			3*r, r, r, r, r, 3*r, -r, 3*r, -r, r, -3*r, r)
	case SymbolDiamond:
		y := math.Sqrt(area / (2 * tan30))
		x := y * tan30
		p.polygon(0, -y, x, 0, 0, y, -x, 0)
	case SymbolSquare:
		w := math.Sqrt(area)
		h := w / 2
		p.polygon(-h, -h, h, -h, h, h, -h, h)
	case SymbolStar:
		r := math.Sqrt(area * starKa)
		x, y := starKx*r, starKy*r
		pts := []float64{0, -r, x, y}
		for i := 1; i < 5; i++ {
			a := 2 * math.Pi * float64(i) / 5
			c, s := math.Cos(a), math.Sin(a)
			pts = append(pts, s*r, -c*r, c*x-s*y, s*x+c*y)
		}
		p.polygon(pts...)
	case SymbolTriangle:
		y := -math.Sqrt(area / (sqrt3 * 3))
		p.polygon(0, y*2, -sqrt3*y, -y, sqrt3*y, -y)
	case SymbolWye:
		r := math.Sqrt(area / wyeArea)
		x0, y0 := r/2, r*wyeK
		x1, y1 := x0, r*wyeK+r
		x2, y2 := -x1, y1
		c, s := -0.5, sqrt3/2
		p.polygon(x0, y0, x1, y1, x2, y2,
			c*x0-s*y0, s*x0+c*y0, c*x1-s*y1, s*x1+c*y1, c*x2-s*y2, s*x2+c*y2,
			c*x0+s*y0, c*y0-s*x0, c*x1+s*y1, c*y1-s*x1, c*x2+s*y2, c*y2-s*x2)
	default:
		r := math.Sqrt(area / math.Pi)
		p.circle(r)
	}
	return p.String()
}

type pathBuilder struct {
	strings.Builder
}

func (p *pathBuilder) polygon(pts ...float64) {
	for i := 0; i+1 < len(pts); i += 2 {
		if i == 0 {
			p.WriteByte('M')
		} else {
			p.WriteByte('L')
		}
		p.WriteString(fmtNum(pts[i]))
		p.WriteByte(',')
		p.WriteString(fmtNum(pts[i+1]))
	}
	p.WriteByte('Z')
}

func (p *pathBuilder) circle(r float64) {
	rs := fmtNum(r)
	p.WriteString("M" + rs + ",0")
	p.WriteString("A" + rs + "," + rs + ",0,1,1," + fmtNum(-r) + ",0")
	p.WriteString("A" + rs + "," + rs + ",0,1,1," + rs + ",0Z")
}

// fmtNum prints a coordinate with at most three decimals.
func fmtNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
