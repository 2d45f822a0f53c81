package object

import "testing"

func TestScopes_FalsyValuesAreBound(t *testing.T) {
	s := NewScopes()
	g := s.Push(NoScope)
	for _, v := range []Object{&Number{Value: 0}, FALSE, &String{Value: ""}, NIL} {
		s.Define(g, "x", v)
		got, ok := s.Get(g, "x")
		if !ok {
			t.Fatalf("expected x bound to %s", v.Inspect())
		}
		if !Equal(got, v) {
			t.Fatalf("got %s, want %s", got.Inspect(), v.Inspect())
		}
		if !s.Assign(g, "x", TRUE) {
			t.Fatalf("assign failed while x held %s", v.Inspect())
		}
	}
}

func TestScopes_LookupWalksOutward(t *testing.T) {
	s := NewScopes()
	g := s.Push(NoScope)
	inner := s.Push(g)
	s.Define(g, "a", &Number{Value: 1})

	if v, ok := s.Get(inner, "a"); !ok || v.Inspect() != "1" {
		t.Fatalf("expected a=1 from enclosing scope, got %v %v", v, ok)
	}
	if _, ok := s.GetHere(inner, "a"); ok {
		t.Fatal("a should not be bound in the inner frame")
	}
	if s.Parent(inner) != g || s.Parent(g) != NoScope {
		t.Fatal("unexpected parent links")
	}
}

func TestScopes_AssignRebindsNearest(t *testing.T) {
	s := NewScopes()
	g := s.Push(NoScope)
	inner := s.Push(g)
	s.Define(g, "a", &Number{Value: 1})

	if !s.Assign(inner, "a", &Number{Value: 2}) {
		t.Fatal("assign should find a in the enclosing frame")
	}
	if v, _ := s.GetHere(g, "a"); v.Inspect() != "2" {
		t.Fatalf("expected enclosing a=2, got %s", v.Inspect())
	}
	if _, ok := s.GetHere(inner, "a"); ok {
		t.Fatal("assign must not create a binding in the inner frame")
	}

	s.Define(inner, "a", &Number{Value: 3})
	s.Assign(inner, "a", &Number{Value: 4})
	if v, _ := s.GetHere(g, "a"); v.Inspect() != "2" {
		t.Fatalf("shadowed a changed: %s", v.Inspect())
	}
}

func TestScopes_UndefinedName(t *testing.T) {
	s := NewScopes()
	g := s.Push(NoScope)
	if _, ok := s.Get(g, "missing"); ok {
		t.Fatal("expected missing to be unbound")
	}
	if s.Assign(g, "missing", NIL) {
		t.Fatal("assign to an unbound name must fail")
	}
}

func TestScopes_Redefine(t *testing.T) {
	s := NewScopes()
	g := s.Push(NoScope)
	s.Define(g, "a", &Number{Value: 1})
	s.Define(g, "a", &Number{Value: 2})
	snap := s.Snapshot(g)
	if len(snap) != 1 || snap["a"].Inspect() != "2" {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}
