package value

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrUnsupported is returned by From for Go kinds that
	// have no template representation.
	ErrUnsupported = errors.New("unsupported kind")
	// ErrInvalidName is returned for property names that
	// are empty or dotted.
	ErrInvalidName = errors.New("invalid property name")
)

// Valuer is implemented by types that know how to present
// themselves to templates.
type Valuer interface {
	TemplateValue() (Value, error)
}

const tagName = "handybars"

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}

	if strings.Contains(name, ".") {
		return fmt.Errorf("%w: %q contains a dot", ErrInvalidName, name)
	}

	return nil
}

// From converts x into a Value:
//
//   - nil and nil pointers become the empty string
//   - Value and Valuer implementations are used as is
//   - fmt.Stringer implementations become leaves, which
//     covers enum-like named constants
//   - strings, []byte, bools and numbers become leaves
//     holding their canonical text
//   - structs become objects of their exported fields,
//     named by the "handybars" tag when present
//   - maps become objects keyed by the formatted key
//   - slices and arrays become objects keyed by index
func From(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return String(""), nil
	case Value:
		return v, nil
	case Valuer:
		return v.TemplateValue()
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return String(""), nil
		}

		return String(v.String()), nil
	case string:
		return String(v), nil
	case []byte:
		return String(v), nil
	case bool:
		return String(strconv.FormatBool(v)), nil
	}

	return fromReflect(reflect.ValueOf(x))
}

// MustFrom is like From but panics on error.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic("value: " + err.Error())
	}

	return v
}

func fromReflect(rv reflect.Value) (Value, error) {
	const errCtx = "converting value"

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return String(""), nil
		}

		return From(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return String(strconv.FormatBool(rv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return String(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return String(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return String(strconv.FormatFloat(
			rv.Float(), 'f', -1, rv.Type().Bits(),
		)), nil
	case reflect.Struct:
		return fromStruct(rv)
	case reflect.Map:
		return fromMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return String(rv.Bytes()), nil
		}

		return fromList(rv)
	default:
		return nil, fmt.Errorf(
			"%s: %w: %s", errCtx, ErrUnsupported, rv.Kind(),
		)
	}
}

func fromStruct(rv reflect.Value) (Value, error) {
	const errCtx = "converting struct"

	obj := NewObject()
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, tagged := parseTag(field)
		if name == "-" {
			continue
		}

		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}

		v, err := From(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf(
				"%s %s: field %s: %w",
				errCtx, rt.String(), field.Name, err,
			)
		}

		// Untagged embedded structs are flattened like
		// encoding/json does.
		if embedded, ok := v.(*Object); ok && field.Anonymous && !tagged {
			for k, ev := range embedded.All() {
				obj.AddProperty(k, ev)
			}

			continue
		}

		if err := checkName(name); err != nil {
			return nil, fmt.Errorf(
				"%s %s: field %s: %w",
				errCtx, rt.String(), field.Name, err,
			)
		}

		obj.AddProperty(name, v)
	}

	return obj, nil
}

// parseTag reads the handybars tag of field. The returned
// name falls back to the Go field name.
func parseTag(field reflect.StructField) (string, bool, bool) {
	tag, ok := field.Tag.Lookup(tagName)
	if !ok {
		return field.Name, false, false
	}

	name, opts, _ := strings.Cut(tag, ",")
	omitEmpty := opts == "omitempty"

	if name == "" {
		return field.Name, omitEmpty, false
	}

	return name, omitEmpty, true
}

func fromMap(rv reflect.Value) (Value, error) {
	const errCtx = "converting map"

	obj := NewObject()

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()

		var name string
		if key.Kind() == reflect.String {
			name = key.String()
		} else {
			name = fmt.Sprint(key.Interface())
		}

		if err := checkName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		v, err := From(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf(
				"%s: key %s: %w", errCtx, name, err,
			)
		}

		obj.AddProperty(name, v)
	}

	return obj, nil
}

func fromList(rv reflect.Value) (Value, error) {
	const errCtx = "converting list"

	obj := NewObject()

	for i := range rv.Len() {
		v, err := From(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf(
				"%s: index %d: %w", errCtx, i, err,
			)
		}

		obj.AddProperty(strconv.Itoa(i), v)
	}

	return obj, nil
}
