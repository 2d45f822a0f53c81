package object

import (
	"math"
	"testing"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{&Number{Value: 3}, "3"},
		{&Number{Value: 2.5}, "2.5"},
		{&Number{Value: math.Inf(1)}, "Infinity"},
		{&String{Value: "hi"}, "hi"},
		{TRUE, "true"},
		{FALSE, "false"},
		{NIL, "nil"},
	}
	for _, tt := range tests {
		if got := tt.obj.Inspect(); got != tt.want {
			t.Fatalf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Object
		want bool
	}{
		{NIL, NIL, true},
		{NIL, FALSE, false},
		{NIL, &Number{Value: 0}, false},
		{&Number{Value: 1}, &Number{Value: 1}, true},
		{&Number{Value: 1}, &String{Value: "1"}, false},
		{&String{Value: "a"}, &String{Value: "a"}, true},
		{TRUE, NativeBool(true), true},
		{TRUE, FALSE, false},
		{&Number{Value: math.NaN()}, &Number{Value: math.NaN()}, false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Fatalf("Equal(%s, %s) = %v, want %v", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
		}
	}
}

func TestFromLiteral(t *testing.T) {
	if o, ok := FromLiteral(1.5); !ok || o.Inspect() != "1.5" {
		t.Fatalf("unexpected number literal %v", o)
	}
	if o, ok := FromLiteral(nil); !ok || o != NIL {
		t.Fatalf("expected NIL, got %v", o)
	}
	if _, ok := FromLiteral(3); ok {
		t.Fatal("int literal should be rejected")
	}
}
