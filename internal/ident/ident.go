package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes the three identifier flavours.
type Kind int

const (
	KindStr Kind = iota
	KindUUID
	KindKey
)

// Ident correlates a declared view with its persisted binding across renders.
// The zero value is not a valid identifier.
type Ident struct {
	kind Kind
	str  string
	uuid uuid.UUID
	name string
}

// Str builds a string identifier.
func Str(s string) Ident {
	return Ident{kind: KindStr, str: s}
}

// UUID builds a UUID identifier.
func UUID(u uuid.UUID) Ident {
	return Ident{kind: KindUUID, uuid: u}
}

// Key builds a composite identifier from an opaque key and a display name.
func Key(key uuid.UUID, name string) Ident {
	return Ident{kind: KindKey, uuid: key, name: name}
}

// Generate returns a fresh random identifier.
func Generate() Ident {
	return UUID(uuid.New())
}

// Ensure returns Str(spec), or a generated identifier if spec is empty.
func Ensure(spec string) Ident {
	if spec == "" {
		return Generate()
	}
	return Str(spec)
}

func (i Ident) Kind() Kind {
	return i.kind
}

func (i Ident) IsZero() bool {
	return i == Ident{}
}

// String returns the name used for native entities and display.
func (i Ident) String() string {
	switch i.kind {
	case KindStr:
		return i.str
	case KindUUID:
		return i.uuid.String()
	case KindKey:
		return i.name
	default:
		return fmt.Sprintf("ident(%d)", int(i.kind))
	}
}

// GoString includes the kind so that keys with equal names remain distinguishable in logs.
func (i Ident) GoString() string {
	switch i.kind {
	case KindUUID:
		return "ident.UUID(" + i.uuid.String() + ")"
	case KindKey:
		return "ident.Key(" + i.uuid.String() + ", " + i.name + ")"
	default:
		return fmt.Sprintf("ident.Str(%q)", i.str)
	}
}
