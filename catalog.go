package hoot

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/casualjim/hoot/pkg/reflectx"
	"github.com/casualjim/hoot/pkg/typeid"
)

var eventReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// EventDef describes one event type: the qualified name of its Go type, the
// identifier the dispatcher routes it by, and a JSON schema of its payload.
// Hosts can collect these to document the event surface of an application.
type EventDef struct {
	Name   string
	TypeID uint64
	Schema *jsonschema.Schema
}

// Describe builds the definition for the event type T. The schema is
// reflected on every call; callers that need it repeatedly should keep the
// result around.
func Describe[T any]() EventDef {
	t := reflect.TypeFor[T]()
	schema := eventReflector.ReflectFromType(t)
	schema.Version = ""
	return EventDef{
		Name:   reflectx.QualifiedName(t),
		TypeID: typeid.Of[T](),
		Schema: schema,
	}
}
