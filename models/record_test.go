package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_StrTolerance(t *testing.T) {
	f := Fields{
		"name":   "Ahmad",
		"flag":   true,
		"number": float64(41),
	}

	assert.Equal(t, "Ahmad", f.Str("name"))
	assert.Equal(t, "1", f.Str("flag"))
	assert.Equal(t, "41", f.Str("number"))
	assert.Empty(t, f.Str("absent"))
}

func TestFields_BoolTolerance(t *testing.T) {
	// Flags round-trip through SQLite as 0/1 integers and through JSON as
	// numbers, so every form must read back as a boolean.
	f := Fields{
		"a": true,
		"b": float64(1),
		"c": "1",
		"d": "true",
		"e": float64(0),
		"f": "0",
	}

	assert.True(t, f.Bool("a"))
	assert.True(t, f.Bool("b"))
	assert.True(t, f.Bool("c"))
	assert.True(t, f.Bool("d"))
	assert.False(t, f.Bool("e"))
	assert.False(t, f.Bool("f"))
	assert.False(t, f.Bool("absent"))
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	original := Record{LocalID: 1, Fields: Fields{FieldName: "Ahmad"}}
	clone := original.Clone()
	clone.Fields[FieldName] = "Karim"

	assert.Equal(t, "Ahmad", original.Name())
	assert.Equal(t, "Karim", clone.Name())
}

func TestCustomer_RecordRoundTrip(t *testing.T) {
	c := Customer{
		ID:               11,
		RemoteID:         "remote-11",
		Name:             "Ahmad",
		PhoneNumber:      "0700123456",
		Qad:              "41",
		YakhanBin:        true,
		JeebTunban:       false,
		RegistrationDate: "2026-01-15",
	}

	back := CustomerFromRecord(c.ToRecord())
	assert.Equal(t, c, back)
}

func TestWaskat_RecordRoundTrip(t *testing.T) {
	w := Waskat{
		ID:               7,
		RemoteID:         "remote-7",
		Name:             "Wali",
		Kamar:            "36",
		Soreen:           "38",
		RegistrationDate: "2026-02-20",
	}

	back := WaskatFromRecord(w.ToRecord())
	assert.Equal(t, w, back)
}

func TestDocument_ToRecordCarriesBothIDs(t *testing.T) {
	doc := Document{
		ID:      "doc-1",
		LocalID: 11,
		Name:    "Ahmad",
		Fields:  Fields{"qad": "41"},
	}

	rec := doc.ToRecord()
	assert.Equal(t, int64(11), rec.LocalID)
	assert.Equal(t, "doc-1", rec.RemoteID)
	assert.Equal(t, "Ahmad", rec.Name())
	assert.Equal(t, "41", rec.Fields.Str("qad"))
}

func TestDocumentFromRecord_PromotesName(t *testing.T) {
	rec := Record{
		LocalID:  11,
		RemoteID: "doc-1",
		Fields:   Fields{FieldName: "Ahmad", "qad": "41"},
	}

	doc := DocumentFromRecord(rec)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, int64(11), doc.LocalID)
	assert.Equal(t, "Ahmad", doc.Name)
}

func TestMutation_JSONRoundTrip(t *testing.T) {
	m := Mutation{
		ID:         "m-1",
		Kind:       MutationUpdate,
		EntityType: EntityCustomer,
		Record:     Record{LocalID: 11, Fields: Fields{FieldName: "Ahmad"}},
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var back Mutation
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, m.ID, back.ID)
	assert.Equal(t, m.Kind, back.Kind)
	assert.Equal(t, m.EntityType, back.EntityType)
	assert.Equal(t, int64(11), back.Record.LocalID)
	assert.Equal(t, "Ahmad", back.Record.Name())
}
