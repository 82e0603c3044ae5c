package geom

import "testing"

func TestRect_DerivedEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	if r.Right() != 110 {
		t.Errorf("Right() = %g, want 110", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("Bottom() = %g, want 70", r.Bottom())
	}
	if r.CenterX() != 60 {
		t.Errorf("CenterX() = %g, want 60", r.CenterX())
	}
	if r.CenterY() != 45 {
		t.Errorf("CenterY() = %g, want 45", r.CenterY())
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	tests := []struct {
		x, y float64
		want bool
	}{
		{60, 45, true},   // interior
		{10, 20, true},   // top-left corner is inside
		{110, 45, false}, // right edge is outside
		{60, 70, false},  // bottom edge is outside
		{9.99, 45, false},
		{60, 19.99, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRect_Translate(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	moved := r.Translate(5, -10)

	if moved.X != 15 || moved.Y != 10 {
		t.Errorf("Translate moved to (%g, %g)", moved.X, moved.Y)
	}
	if moved.Width != 100 || moved.Height != 50 {
		t.Error("Translate must not change the size")
	}
	if r.X != 10 || r.Y != 20 {
		t.Error("Translate must not mutate the receiver")
	}
}
