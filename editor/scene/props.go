package scene

import (
	"math"

	"github.com/hubastard/blueprint/editor/geom"
)

// Property setters backing the context panel. Invalid numeric input (NaN,
// Inf, nonsensical magnitudes) is silently ignored and the prior value kept.

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SetWallLengthFeet moves the wall's second endpoint along the current wall
// angle so the segment measures feet, then snaps all four coordinates when
// snapping is active.
func (s *Scene) SetWallLengthFeet(id string, feet float64, v *geom.View) bool {
	if !finite(feet) || feet <= 0 {
		return false
	}
	return s.Update(id, func(o Object) {
		w, ok := o.(*Wall)
		if !ok {
			return
		}
		length := v.FeetToUnits(feet)
		ang := math.Atan2(w.Y2-w.Y1, w.X2-w.X1)
		w.X2 = w.X1 + math.Cos(ang)*length
		w.Y2 = w.Y1 + math.Sin(ang)*length
		w.X1 = v.SnapUnits(w.X1)
		w.Y1 = v.SnapUnits(w.Y1)
		w.X2 = v.SnapUnits(w.X2)
		w.Y2 = v.SnapUnits(w.Y2)
	})
}

func (s *Scene) SetRectSizeFeet(id string, widthFt, heightFt float64, v *geom.View) bool {
	if !finite(widthFt, heightFt) || widthFt <= 0 || heightFt <= 0 {
		return false
	}
	return s.Update(id, func(o Object) {
		r, ok := o.(*RectItem)
		if !ok {
			return
		}
		r.Width = v.FeetToUnits(widthFt)
		r.Height = v.FeetToUnits(heightFt)
	})
}

// SetRotationDegrees sets a typed rotation. Angle snapping never applies to
// numeric input, only to interactive rotation.
func (s *Scene) SetRotationDegrees(id string, deg float64) bool {
	if !finite(deg) {
		return false
	}
	return s.Update(id, func(o Object) {
		if r, ok := o.(*RectItem); ok {
			r.Rotation = deg * math.Pi / 180
		}
	})
}

func (s *Scene) SetDoorWidthFeet(id string, feet float64, v *geom.View) bool {
	if !finite(feet) || feet <= 0 {
		return false
	}
	return s.Update(id, func(o Object) {
		if d, ok := o.(*Door); ok {
			d.Width = v.FeetToUnits(feet)
		}
	})
}

func (s *Scene) SetDoorAngleDegrees(id string, deg float64) bool {
	if !finite(deg) {
		return false
	}
	return s.Update(id, func(o Object) {
		if d, ok := o.(*Door); ok {
			d.Angle = deg * math.Pi / 180
		}
	})
}

func (s *Scene) SetLabelText(id, text string) bool {
	return s.Update(id, func(o Object) {
		switch t := o.(type) {
		case *Label:
			t.Text = text
		case *RectItem:
			t.Label = text
		}
	})
}

func (s *Scene) SetLabelFontSize(id string, size float64) bool {
	if !finite(size) || size <= 0 {
		return false
	}
	return s.Update(id, func(o Object) {
		switch t := o.(type) {
		case *Label:
			t.FontSize = size
		case *RectItem:
			t.LabelFontSize = size
		}
	})
}

func (s *Scene) SetColor(id, hex string) bool {
	return s.Update(id, func(o Object) {
		if r, ok := o.(*RectItem); ok {
			r.Color = hex
		}
	})
}

func (s *Scene) SetFront(id, dir string) bool {
	switch dir {
	case "N", "E", "S", "W":
	default:
		return false
	}
	return s.Update(id, func(o Object) {
		if r, ok := o.(*RectItem); ok {
			r.Front = dir
		}
	})
}
