package handybars

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/chrsoo/handybars/parse"
	"github.com/chrsoo/handybars/path"
	"github.com/chrsoo/handybars/value"
)

// MergePolicy decides what happens when Define writes an
// object where an object already exists.
type MergePolicy int

const (
	// MergeReplace replaces the existing value.
	MergeReplace MergePolicy = iota
	// MergeDeep combines the two objects property by
	// property, recursively.
	MergeDeep
)

func (p MergePolicy) String() string {
	switch p {
	case MergeReplace:
		return "replace"
	case MergeDeep:
		return "deep"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(p))
	}
}

// Option configures a Context.
type Option func(*Context)

// WithMergePolicy sets the policy Define applies at the
// terminal segment of a path.
func WithMergePolicy(p MergePolicy) Option {
	return func(c *Context) {
		c.policy = p
	}
}

// Context holds the values templates are rendered
// against. The zero Context is empty and ready to use.
// A Context must not be modified while other goroutines
// render with it; concurrent renders are safe.
//
//	ctx := handybars.New()
//	ctx.Define(path.Single("a"), value.String("b"))
//	out, err := ctx.Render("{{ a }}") // "b"
type Context struct {
	vars   map[string]value.Value
	policy MergePolicy
}

// New returns an empty Context.
func New(opts ...Option) *Context {
	c := &Context{vars: make(map[string]value.Value)}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect builds a Context by defining every pair of seq
// in order.
func Collect(
	seq iter.Seq2[path.Variable, value.Value],
	opts ...Option,
) *Context {
	return New(opts...).Extend(seq)
}

// Define stores a copy of val at v and returns c.
//
// Missing intermediate segments are created as empty
// objects, and an intermediate leaf is replaced by an
// empty object, discarding its text. The terminal segment
// is overwritten (see MergePolicy).
//
// A single-segment path replaces a previous leaf, but when
// the name already holds an object val is added to it as a
// property under that same name.
func (c *Context) Define(v path.Variable, val value.Value) *Context {
	if v.IsZero() {
		panic("handybars: Define with the zero Variable")
	}

	if val == nil {
		panic("handybars: Define " + v.String() + " with a nil value")
	}

	if c.vars == nil {
		c.vars = make(map[string]value.Value)
	}

	val = value.Clone(val)
	head := v.Head()

	n := v.NumSegments()
	if n == 1 {
		prev, ok := c.vars[head]
		if !ok {
			c.vars[head] = val

			return c
		}

		obj, isObj := value.AsObject(prev)

		switch {
		case !isObj:
			c.vars[head] = val
		case c.policy == MergeDeep && val.Kind() == value.KindObject:
			c.vars[head] = value.DeepMerge(obj, val)
		default:
			obj.AddProperty(head, val)
		}

		return c
	}

	parent := forceTop(c.vars, head)
	for i := 1; i < n-1; i++ {
		parent = forceChild(parent, v.Segment(i))
	}

	last := v.Segment(n - 1)
	if prev, ok := parent.Property(last); ok && c.policy == MergeDeep {
		val = value.DeepMerge(prev, val)
	}

	parent.AddProperty(last, val)

	return c
}

// DefineFrom converts x with value.From and defines it at
// v.
func (c *Context) DefineFrom(v path.Variable, x any) error {
	const errCtx = "defining variable"

	val, err := value.From(x)
	if err != nil {
		return fmt.Errorf("%s %s: %w", errCtx, v, err)
	}

	c.Define(v, val)

	return nil
}

// Extend defines every pair of seq in order and returns c.
func (c *Context) Extend(seq iter.Seq2[path.Variable, value.Value]) *Context {
	for v, val := range seq {
		c.Define(v, val)
	}

	return c
}

// Get returns the value at v. It reports false when a
// segment is missing or when a leaf would have to be
// drilled into. Get never creates nodes.
func (c *Context) Get(v path.Variable) (value.Value, bool) {
	if v.IsZero() {
		return nil, false
	}

	cur, ok := c.vars[v.Head()]
	if !ok {
		return nil, false
	}

	for i := 1; i < v.NumSegments(); i++ {
		obj, ok := value.AsObject(cur)
		if !ok {
			return nil, false
		}

		cur, ok = obj.Property(v.Segment(i))
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// Render expands tpl. Literal text is copied verbatim and
// each placeholder is replaced by the leaf its path
// resolves to. No partial output is returned on error.
func (c *Context) Render(tpl string) (string, error) {
	const errCtx = "rendering template"

	var sb strings.Builder

	sb.Grow(len(tpl))

	tz := parse.NewTokenizer(tpl)
	for tz.Next() {
		tok := tz.Token()

		switch tok.Kind {
		case parse.TokenStr:
			sb.WriteString(tok.Text)
		case parse.TokenVariable:
			text, err := c.expand(tok)
			if err != nil {
				return "", fmt.Errorf("%s: %w", errCtx, err)
			}

			sb.WriteString(text)
		}
	}

	if err := tz.Err(); err != nil {
		return "", fmt.Errorf("%s: parse: %w", errCtx, err)
	}

	return sb.String(), nil
}

// RenderTo renders tpl completely and then writes the
// result to w.
func (c *Context) RenderTo(w io.Writer, tpl string) error {
	out, err := c.Render(tpl)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing rendered template: %w", err)
	}

	return nil
}

func (c *Context) expand(tok parse.Token) (string, error) {
	val, ok := c.Get(tok.Variable)
	if !ok {
		return "", &MissingVariableError{
			Variable: tok.Variable.Clone(),
			Location: tok.Location,
		}
	}

	text, ok := value.AsString(val)
	if !ok {
		return "", &ObjectExpansionError{
			Variable: tok.Variable.Clone(),
			Location: tok.Location,
		}
	}

	return text, nil
}

// Append copies other's top-level names into c, replacing
// names c already has, and returns c. Unlike Define it
// does not merge.
func (c *Context) Append(other *Context) *Context {
	if c.vars == nil {
		c.vars = make(map[string]value.Value, len(other.vars))
	}

	for k, v := range other.vars {
		c.vars[k] = value.Clone(v)
	}

	return c
}

// Merge returns a new Context holding c's names followed by
// other's, as Append would. Neither input is modified.
func (c *Context) Merge(other *Context) *Context {
	return c.Clone().Append(other)
}

// Clone returns a deep copy of c.
func (c *Context) Clone() *Context {
	cp := &Context{
		vars:   make(map[string]value.Value, len(c.vars)),
		policy: c.policy,
	}

	for k, v := range c.vars {
		cp.vars[k] = value.Clone(v)
	}

	return cp
}

// Names returns the top-level names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.vars))
	for k := range c.vars {
		names = append(names, k)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of top-level names.
func (c *Context) Len() int {
	return len(c.vars)
}

// forceTop returns the object stored under name, creating
// it or replacing a leaf as needed.
func forceTop(vars map[string]value.Value, name string) *value.Object {
	if obj, ok := value.AsObject(vars[name]); ok {
		return obj
	}

	obj := value.NewObject()
	vars[name] = obj

	return obj
}

// forceChild is forceTop for a property of parent.
func forceChild(parent *value.Object, name string) *value.Object {
	if prev, ok := parent.Property(name); ok {
		if obj, ok := value.AsObject(prev); ok {
			return obj
		}
	}

	obj := value.NewObject()
	parent.AddProperty(name, obj)

	return obj
}
