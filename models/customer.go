package models

// Customer is a full garment measurement record as stored in the local
// "customer" table. Measurement values are free-form strings, matching the
// paper forms they are copied from; the two *Bin flags are stored as 0/1.
type Customer struct {
	ID               int64  `json:"id"`
	RemoteID         string `json:"remoteId,omitempty"`
	Name             string `json:"name"`
	PhoneNumber      string `json:"phoneNumber"`
	Qad              string `json:"qad"`
	BarDaman         string `json:"barDaman"`
	Baghal           string `json:"baghal"`
	Shana            string `json:"shana"`
	Astin            string `json:"astin"`
	Tunban           string `json:"tunban"`
	Pacha            string `json:"pacha"`
	Yakhan           string `json:"yakhan"`
	YakhanValue      string `json:"yakhanValue"`
	YakhanBin        bool   `json:"yakhanBin"`
	Farmaish         string `json:"farmaish"`
	Daman            string `json:"daman"`
	Caff             string `json:"caff"`
	CaffValue        string `json:"caffValue"`
	Jeeb             string `json:"jeeb"`
	TunbanStyle      string `json:"tunbanStyle"`
	JeebTunban       bool   `json:"jeebTunban"`
	RegistrationDate string `json:"registrationDate"`
}

// ToRecord converts the customer to its flat wire representation.
func (c Customer) ToRecord() Record {
	return Record{
		LocalID:  c.ID,
		RemoteID: c.RemoteID,
		Fields: Fields{
			FieldName:             c.Name,
			FieldPhoneNumber:      c.PhoneNumber,
			"qad":                 c.Qad,
			"barDaman":            c.BarDaman,
			"baghal":              c.Baghal,
			"shana":               c.Shana,
			"astin":               c.Astin,
			"tunban":              c.Tunban,
			"pacha":               c.Pacha,
			"yakhan":              c.Yakhan,
			"yakhanValue":         c.YakhanValue,
			"yakhanBin":           c.YakhanBin,
			"farmaish":            c.Farmaish,
			"daman":               c.Daman,
			"caff":                c.Caff,
			"caffValue":           c.CaffValue,
			"jeeb":                c.Jeeb,
			"tunbanStyle":         c.TunbanStyle,
			"jeebTunban":          c.JeebTunban,
			FieldRegistrationDate: c.RegistrationDate,
		},
	}
}

// CustomerFromRecord rebuilds a typed customer from its flat representation.
func CustomerFromRecord(rec Record) Customer {
	f := rec.Fields
	return Customer{
		ID:               rec.LocalID,
		RemoteID:         rec.RemoteID,
		Name:             f.Str(FieldName),
		PhoneNumber:      f.Str(FieldPhoneNumber),
		Qad:              f.Str("qad"),
		BarDaman:         f.Str("barDaman"),
		Baghal:           f.Str("baghal"),
		Shana:            f.Str("shana"),
		Astin:            f.Str("astin"),
		Tunban:           f.Str("tunban"),
		Pacha:            f.Str("pacha"),
		Yakhan:           f.Str("yakhan"),
		YakhanValue:      f.Str("yakhanValue"),
		YakhanBin:        f.Bool("yakhanBin"),
		Farmaish:         f.Str("farmaish"),
		Daman:            f.Str("daman"),
		Caff:             f.Str("caff"),
		CaffValue:        f.Str("caffValue"),
		Jeeb:             f.Str("jeeb"),
		TunbanStyle:      f.Str("tunbanStyle"),
		JeebTunban:       f.Bool("jeebTunban"),
		RegistrationDate: f.Str(FieldRegistrationDate),
	}
}
