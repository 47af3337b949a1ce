package reflectx

import "reflect"

// Deref unwraps pointer types until it reaches a non pointer type. A nil
// type is passed through.
func Deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// QualifiedName returns the package path qualified name of a type, such as
// "github.com/casualjim/hoot.Record". Builtin and unnamed types fall back to
// their reflect string form. Unlike reflect.Type.String, types with the same
// name in packages that only differ by import path stay distinguishable.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	var prefix string
	for t.Kind() == reflect.Ptr {
		prefix += "*"
		t = t.Elem()
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return prefix + t.String()
	}
	return prefix + t.PkgPath() + "." + t.Name()
}

// NameFor returns QualifiedName for the type parameter T.
func NameFor[T any]() string {
	return QualifiedName(reflect.TypeFor[T]())
}
