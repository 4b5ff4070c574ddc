package value

import (
	"math"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNull, "null"},
		{KindBool, "bool"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Error("zero Value should be null")
	}
	if v.Kind() != KindNull {
		t.Errorf("Kind = %v, want KindNull", v.Kind())
	}
}

func TestObjectGet(t *testing.T) {
	obj := Object(
		Member{Key: "a", Value: Number(1)},
		Member{Key: "b", Value: String("two")},
	)

	got, ok := obj.Get("b")
	if !ok || got.AsString() != "two" {
		t.Errorf("Get(b) = %v, %v", got, ok)
	}

	if _, ok := obj.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"bools", Bool(true), Bool(true), true},
		{"bool mismatch", Bool(true), Bool(false), false},
		{"numbers", Number(1.5), Number(1.5), true},
		{"nan numbers", Number(math.NaN()), Number(math.NaN()), true},
		{"strings", String("x"), String("x"), true},
		{"kind mismatch", Number(0), Null(), false},
		{"arrays", Array(Number(1), String("a")), Array(Number(1), String("a")), true},
		{"array length", Array(Number(1)), Array(Number(1), Number(2)), false},
		{
			"objects",
			Object(Member{Key: "k", Value: Number(1)}),
			Object(Member{Key: "k", Value: Number(1)}),
			true,
		},
		{
			"object order matters",
			Object(Member{Key: "a", Value: Number(1)}, Member{Key: "b", Value: Number(2)}),
			Object(Member{Key: "b", Value: Number(2)}, Member{Key: "a", Value: Number(1)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString_CompactJSON(t *testing.T) {
	v := Object(
		Member{Key: "name", Value: String("wef")},
		Member{Key: "tags", Value: Array(String("a"), String("b"))},
		Member{Key: "count", Value: Number(3)},
	)
	want := `{"name":"wef","tags":["a","b"],"count":3}`
	if got := v.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{-3, "-3"},
		{2.5, "2.5"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		if got := Number(tt.n).String(); got != tt.want {
			t.Errorf("Number(%v).String() = %q, want %q", tt.n, got, tt.want)
		}
	}
}
