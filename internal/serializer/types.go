package serializer

import (
	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/vmihailenco/msgpack/v5"
)

// Extension ids below 16 are reserved for feedwire's own domain values.
const (
	extActivityRef int8 = 1
)

// ContextType is a custom value that may be stored inside an extra context map.
type ContextType interface {
	msgpack.Marshaler
	msgpack.Unmarshaler
}

// RegisterContextType makes values of value's type storable in extra context.
// Pass a nil pointer of the type; decoded values come back as that pointer type.
// Only the pointer form is encodable: storing the struct by value fails with
// ErrPayloadEncode. A nil pointer is stored as nil and decodes to an untyped nil.
// Registration is global and must happen before concurrent use, typically in init.
func RegisterContextType(extID int8, value ContextType) {
	msgpack.RegisterExt(extID, value)
}

func init() {
	RegisterContextType(extActivityRef, (*activity.Ref)(nil))
}
