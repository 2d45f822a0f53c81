package object

import (
	"lumen/internal/numlit"
)

type Type string

const (
	NUMBER_OBJ  Type = "NUMBER"
	STRING_OBJ  Type = "STRING"
	BOOLEAN_OBJ Type = "BOOLEAN"
	NIL_OBJ     Type = "NIL"
)

type Object interface {
	Type() Type
	Inspect() string
}

type Number struct{ Value float64 }

func (*Number) Type() Type        { return NUMBER_OBJ }
func (n *Number) Inspect() string { return numlit.Format(n.Value) }

type String struct{ Value string }

func (*String) Type() Type        { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

type Boolean struct{ Value bool }

func (*Boolean) Type() Type { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Nil struct{}

func (*Nil) Type() Type      { return NIL_OBJ }
func (*Nil) Inspect() string { return "nil" }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// FromLiteral converts a scanned literal value (nil, bool, float64 or string).
func FromLiteral(v any) (Object, bool) {
	switch v := v.(type) {
	case nil:
		return NIL, true
	case bool:
		return NativeBool(v), true
	case float64:
		return &Number{Value: v}, true
	case string:
		return &String{Value: v}, true
	}
	return nil, false
}

// Equal is value equality. Values of different types are never equal, so nil
// only equals nil. NaN is not equal to itself.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	switch a := a.(type) {
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Boolean:
		bb, ok := b.(*Boolean)
		return ok && a.Value == bb.Value
	case *Number:
		bn, ok := b.(*Number)
		return ok && a.Value == bn.Value
	case *String:
		bs, ok := b.(*String)
		return ok && a.Value == bs.Value
	}
	return false
}

func isNil(o Object) bool {
	if o == nil {
		return true
	}
	_, ok := o.(*Nil)
	return ok
}
