package module

import (
	"fmt"
	"reflect"
)

// PortsOf finds a T among m's ports
// Ports() may return the T itself or a struct bundling it in an exported field
func PortsOf[T any](m Module) (T, bool) {
	var out T
	bundle := m.Ports()
	if v, ok := bundle.(T); ok {
		return v, true
	}
	rv := reflect.Indirect(reflect.ValueOf(bundle))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return out, false
	}
	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || len(sf.Index) != 1 {
			continue
		}
		if v, ok := rv.Field(sf.Index[0]).Interface().(T); ok {
			return v, true
		}
	}
	return out, false
}

// MustPortsOf panics when m lacks a T, wiring happens once at boot
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s: no %T port", m.Name(), (*T)(nil)))
	}
	return v
}
