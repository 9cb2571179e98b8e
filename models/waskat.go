package models

// Waskat is a waistcoat measurement record as stored in the local "waskat"
// table.
type Waskat struct {
	ID               int64  `json:"id"`
	RemoteID         string `json:"remoteId,omitempty"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phoneNumber"`
	Qad              string `json:"qad"`
	Yakhan           string `json:"yakhan"`
	Shana            string `json:"shana"`
	Baghal           string `json:"baghal"`
	Kamar            string `json:"kamar"`
	Soreen           string `json:"soreen"`
	Astin            string `json:"astin"`
	YakhanValue      string `json:"yakhanValue"`
	RegistrationDate string `json:"registrationDate"`
}

// ToRecord converts the waskat to its flat wire representation.
func (w Waskat) ToRecord() Record {
	return Record{
		LocalID:  w.ID,
		RemoteID: w.RemoteID,
		Fields: Fields{
			FieldName:             w.Name,
			FieldPhoneNumber:      w.PhoneNumber,
			"qad":                 w.Qad,
			"yakhan":              w.Yakhan,
			"shana":               w.Shana,
			"baghal":              w.Baghal,
			"kamar":               w.Kamar,
			"soreen":              w.Soreen,
			"astin":               w.Astin,
			"yakhanValue":         w.YakhanValue,
			FieldRegistrationDate: w.RegistrationDate,
		},
	}
}

// WaskatFromRecord rebuilds a typed waskat from its flat representation.
func WaskatFromRecord(rec Record) Waskat {
	f := rec.Fields
	return Waskat{
		ID:               rec.LocalID,
		RemoteID:         rec.RemoteID,
		Name:             f.Str(FieldName),
		PhoneNumber:      f.Str(FieldPhoneNumber),
		Qad:              f.Str("qad"),
		Yakhan:           f.Str("yakhan"),
		Shana:            f.Str("shana"),
		Baghal:           f.Str("baghal"),
		Kamar:            f.Str("kamar"),
		Soreen:           f.Str("soreen"),
		Astin:            f.Str("astin"),
		YakhanValue:      f.Str("yakhanValue"),
		RegistrationDate: f.Str(FieldRegistrationDate),
	}
}
