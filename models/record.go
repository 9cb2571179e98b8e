package models

import "strconv"

// EntityType identifies one of the record kinds handled by parallel
// repository and queue instances.
type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntityWaskat   EntityType = "waskat"
)

// Well-known field names shared by both entity types.
const (
	FieldName             = "name"
	FieldPhoneNumber      = "phoneNumber"
	FieldRegistrationDate = "registrationDate"
)

// Fields is the flat field mapping of a record as it travels between the
// local store, the pending-mutation queue and the remote document API.
// Values are strings except for the boolean flags.
type Fields map[string]any

// Str returns the named field as a string, or "" when absent.
func (f Fields) Str(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Bool returns the named field as a boolean flag. Numeric and string forms
// ("1"/"0") are accepted because the flags are stored as 0/1 in SQLite and
// may round-trip through JSON as numbers.
func (f Fields) Bool(key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}

// Clone returns a shallow copy with its own map.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record is the flat wire representation of a customer or waskat record.
//
// LocalID is the SQLite autoincrement key and RemoteID the opaque identifier
// assigned by the remote document store. The two id spaces are distinct:
// either may be zero-valued when the record has not yet been written to the
// corresponding store, and no code path substitutes one for the other.
type Record struct {
	LocalID  int64  `json:"localId,omitempty"`
	RemoteID string `json:"remoteId,omitempty"`
	Fields   Fields `json:"fields"`
}

// Name returns the record's name field.
func (r Record) Name() string {
	return r.Fields.Str(FieldName)
}

// Clone returns a copy whose Fields map is independent of the receiver's.
func (r Record) Clone() Record {
	r.Fields = r.Fields.Clone()
	return r
}
