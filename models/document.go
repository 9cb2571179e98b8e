package models

import "time"

// Document is a single entry in a remote collection. Name and LocalID are
// promoted out of Fields so the server can index them: Name backs the
// range-filtered prefix search, LocalID the find-by-local-id lookup used
// while draining offline mutations.
type Document struct {
	ID        string     `json:"id"`
	LocalID   int64      `json:"localId,omitempty"`
	Name      string     `json:"name"`
	Fields    Fields     `json:"fields"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ToRecord converts a remote document back to the flat record form, carrying
// both identifier spaces.
func (d Document) ToRecord() Record {
	fields := d.Fields.Clone()
	if fields == nil {
		fields = Fields{}
	}
	fields[FieldName] = d.Name
	return Record{
		LocalID:  d.LocalID,
		RemoteID: d.ID,
		Fields:   fields,
	}
}

// DocumentFromRecord builds the remote representation of a record.
func DocumentFromRecord(rec Record) Document {
	return Document{
		ID:      rec.RemoteID,
		LocalID: rec.LocalID,
		Name:    rec.Name(),
		Fields:  rec.Fields.Clone(),
	}
}

// DocumentQuery narrows a collection listing. NameFrom/NameTo bound the name
// lexicographically (inclusive); prefix search sends the prefix and the prefix
// extended with U+F8FF. LocalID, when positive, matches the local id a client
// stamped on the document. Zero values leave the corresponding filter off.
type DocumentQuery struct {
	NameFrom string
	NameTo   string
	LocalID  int64
}

// AddDocumentResponse is the body returned by the add-document endpoint.
type AddDocumentResponse struct {
	ID string `json:"id"`
}
