package value

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind tells leaves from objects.
type Kind int

// Value kinds.
const (
	KindString Kind = iota + 1
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a node of the substitution tree. It is
// implemented by String and *Object only.
type Value interface {
	Kind() Kind
	isValue()
}

// String is a leaf holding text.
type String string

// Kind returns KindString.
func (String) Kind() Kind { return KindString }

func (String) isValue() {}

func (s String) String() string { return string(s) }

// Object maps property names to values. Keys iterate in
// sorted order. The zero Object is empty and ready to use.
type Object struct {
	props map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Kind returns KindObject.
func (*Object) Kind() Kind { return KindObject }

func (*Object) isValue() {}

// AddProperty sets name to v, replacing any previous value,
// and returns o for chaining. It panics if name is empty or
// contains a dot, or if v is nil.
func (o *Object) AddProperty(name string, v Value) *Object {
	if err := checkName(name); err != nil {
		panic("value: " + err.Error())
	}

	if v == nil {
		panic("value: nil value for property " + name)
	}

	if o.props == nil {
		o.props = make(map[string]Value)
	}

	o.props[name] = v

	return o
}

// Property returns the value stored under name.
func (o *Object) Property(name string) (Value, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.props[name]

	return v, ok
}

// Len returns the number of properties.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}

	return len(o.props)
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}

	keys := make([]string, 0, len(o.props))
	for k := range o.props {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// All iterates over the properties in key order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range o.Keys() {
			if !yield(k, o.props[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return NewObject()
	}

	cp := &Object{props: make(map[string]Value, len(o.props))}
	for k, v := range o.props {
		cp.props[k] = Clone(v)
	}

	return cp
}

func (o *Object) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	first := true
	for k, v := range o.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%s: ", k)

		if s, ok := v.(String); ok {
			fmt.Fprintf(&sb, "%q", string(s))
		} else {
			sb.WriteString(fmt.Sprint(v))
		}
	}

	sb.WriteByte('}')

	return sb.String()
}

// Clone returns a deep copy of v. Leaves are returned as is.
func Clone(v Value) Value {
	if o, ok := v.(*Object); ok {
		return o.Clone()
	}

	return v
}

// AsString returns the text of a leaf.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)

	return string(s), ok
}

// AsObject returns v as an object.
func AsObject(v Value) (*Object, bool) {
	o, ok := v.(*Object)

	return o, ok && o != nil
}

// DeepMerge merges src into dst. When both are objects the
// properties of src are merged into dst one by one and dst
// is returned; otherwise src wins.
func DeepMerge(dst, src Value) Value {
	do, ok := AsObject(dst)
	if !ok {
		return src
	}

	so, ok := AsObject(src)
	if !ok {
		return src
	}

	for k, v := range so.props {
		if prev, exists := do.props[k]; exists {
			do.props[k] = DeepMerge(prev, v)

			continue
		}

		do.AddProperty(k, v)
	}

	return do
}
