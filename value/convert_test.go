package value_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrsoo/handybars/value"
)

type simpleEnum int

const (
	enumA simpleEnum = iota
	enumB
)

func (e simpleEnum) String() string {
	switch e {
	case enumA:
		return "A"
	case enumB:
		return "B"
	default:
		return "unknown"
	}
}

type structVal struct {
	Field1 uint16
	Field2 string
	Field3 *string
	Field4 simpleEnum
}

type testObject struct {
	Prop0   string `handybars:"prop_0"`
	Prop1   uint64 `handybars:"prop_1"`
	Prop3   structVal
	Prop4   simpleEnum
	Skipped string `handybars:"-"`
	Empty   string `handybars:"empty,omitempty"`
	hidden  string
}

type version struct{ major, minor int }

func (v version) TemplateValue() (value.Value, error) {
	return value.NewObject().
		AddProperty("major", value.MustFrom(v.major)).
		AddProperty("minor", value.MustFrom(v.minor)), nil
}

type Base struct {
	ID string
}

type withEmbedded struct {
	Base
	Name string
}

func TestFrom_primitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want value.String
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "s", want: "s"},
		{name: "bytes", in: []byte("raw"), want: "raw"},
		{name: "bool", in: true, want: "true"},
		{name: "int", in: -42, want: "-42"},
		{name: "uint8", in: uint8(7), want: "7"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "whole float", in: 2.0, want: "2"},
		{name: "float32", in: float32(0.25), want: "0.25"},
		{name: "nil pointer", in: (*int)(nil), want: ""},
		{name: "pointer", in: ptr(3), want: "3"},
		{name: "stringer", in: enumB, want: "B"},
		{name: "named string", in: value.String("v"), want: "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := value.From(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrom_struct(t *testing.T) {
	t.Parallel()

	f3 := "f33_val"
	got, err := value.From(testObject{
		Prop0: "p0_val",
		Prop1: 1,
		Prop3: structVal{
			Field1: 30,
			Field2: "f32_val",
			Field3: &f3,
			Field4: enumA,
		},
		Prop4:   enumB,
		Skipped: "nope",
		hidden:  "nope",
	})
	require.NoError(t, err)

	want := value.NewObject().
		AddProperty("prop_0", value.String("p0_val")).
		AddProperty("prop_1", value.String("1")).
		AddProperty("Prop3", value.NewObject().
			AddProperty("Field1", value.String("30")).
			AddProperty("Field2", value.String("f32_val")).
			AddProperty("Field3", value.String("f33_val")).
			AddProperty("Field4", value.String("A"))).
		AddProperty("Prop4", value.String("B"))

	assert.Equal(t, want, got)
}

func TestFrom_valuer(t *testing.T) {
	t.Parallel()

	got, err := value.From(version{major: 1, minor: 2})
	require.NoError(t, err)

	obj, ok := value.AsObject(got)
	require.True(t, ok)
	assert.Equal(t, []string{"major", "minor"}, obj.Keys())
}

func TestFrom_flattens_embedded_structs(t *testing.T) {
	t.Parallel()

	got, err := value.From(withEmbedded{Base: Base{ID: "7"}, Name: "n"})
	require.NoError(t, err)

	want := value.NewObject().
		AddProperty("ID", value.String("7")).
		AddProperty("Name", value.String("n"))
	assert.Equal(t, want, got)
}

func TestFrom_map_and_slice(t *testing.T) {
	t.Parallel()

	got, err := value.From(map[string]any{
		"list": []string{"x", "y"},
		"ints": map[int]bool{1: true},
		"none": nil,
	})
	require.NoError(t, err)

	want := value.NewObject().
		AddProperty("list", value.NewObject().
			AddProperty("0", value.String("x")).
			AddProperty("1", value.String("y"))).
		AddProperty("ints", value.NewObject().
			AddProperty("1", value.String("true"))).
		AddProperty("none", value.String(""))

	assert.Equal(t, want, got)
}

func TestFrom_errors(t *testing.T) {
	t.Parallel()

	_, err := value.From(make(chan int))
	assert.ErrorIs(t, err, value.ErrUnsupported)

	_, err = value.From(map[string]any{"a.b": "c"})
	assert.ErrorIs(t, err, value.ErrInvalidName)

	_, err = value.From(struct {
		F func()
	}{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, value.ErrUnsupported))
	assert.Contains(t, err.Error(), "field F")

	_, err = value.From(struct {
		F string `handybars:"a.b"`
	}{})
	assert.ErrorIs(t, err, value.ErrInvalidName)
}

func TestMustFrom_panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { value.MustFrom(complex(1, 2)) })
}

func ptr[T any](v T) *T {
	return &v
}
