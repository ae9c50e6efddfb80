package goap

import "testing"

func TestDatumEquality(t *testing.T) {
	t.Run("same variant equal", func(t *testing.T) {
		if !I64(5).Equal(I64(5)) {
			t.Error("expected I64(5) == I64(5)")
		}
	})

	t.Run("cross variant never equal", func(t *testing.T) {
		if I64(0).Equal(Bool(false)) {
			t.Error("expected I64(0) != Bool(false) even though both are zero-valued")
		}
		if F64(1).Equal(Enum(1)) {
			t.Error("expected F64(1) != Enum(1)")
		}
	})
}

func TestDatumArithmetic(t *testing.T) {
	t.Run("I64 add and sub", func(t *testing.T) {
		if got := I64(3).Add(I64(4)); !got.Equal(I64(7)) {
			t.Errorf("3+4 = %s, want 7", got)
		}
		if got := I64(3).Sub(I64(4)); !got.Equal(I64(-1)) {
			t.Errorf("3-4 = %s, want -1", got)
		}
	})

	t.Run("F64 add and sub", func(t *testing.T) {
		if got := F64(1.5).Add(F64(2.5)); !got.Equal(F64(4.0)) {
			t.Errorf("1.5+2.5 = %s, want 4", got)
		}
	})

	t.Run("cross variant add panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic adding I64 and F64")
			}
		}()
		_ = I64(1).Add(F64(1))
	})

	t.Run("bool add panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic adding two Bools")
			}
		}()
		_ = Bool(true).Add(Bool(false))
	})
}

func TestDatumDistance(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Datum
		expected uint64
	}{
		{"bool equal", Bool(true), Bool(true), 0},
		{"bool different", Bool(true), Bool(false), 1},
		{"enum equal", Enum(2), Enum(2), 0},
		{"enum different", Enum(1), Enum(2), 1},
		{"i64 positive diff", I64(10), I64(4), 6},
		{"i64 negative diff", I64(4), I64(10), 6},
		{"f64 truncates", F64(10.9), F64(4.1), 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Distance(tc.b); got != tc.expected {
				t.Errorf("Distance(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.expected)
			}
		})
	}

	t.Run("distance floor: zero iff equal", func(t *testing.T) {
		pairs := []struct{ a, b Datum }{
			{I64(5), I64(5)}, {I64(5), I64(6)},
			{F64(2.0), F64(2.0)}, {F64(2.0), F64(2.5)},
			{Bool(true), Bool(true)}, {Bool(true), Bool(false)},
		}
		for _, p := range pairs {
			dist := p.a.Distance(p.b)
			eq := p.a.Equal(p.b)
			if (dist == 0) != eq {
				t.Errorf("Distance(%s,%s)=%d but Equal=%v", p.a, p.b, dist, eq)
			}
		}
	})

	t.Run("cross variant distance panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		_ = Bool(true).Distance(I64(1))
	})
}

func TestDatumHashConsistentWithEqual(t *testing.T) {
	a, b := I64(42), I64(42)
	if a.Hash() != b.Hash() {
		t.Error("equal Datums must hash equally")
	}
	if I64(1).Hash() == Enum(1).Hash() {
		t.Error("different variants with the same bit pattern should not collide in practice")
	}
}
