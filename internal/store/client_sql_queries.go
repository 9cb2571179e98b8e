package store

import (
	"github.com/Masterminds/squirrel"
)

// Statements for the on-device customer table. The measurement columns keep
// the camelCase names the paper-form fields are known by.
const (
	insertCustomer = `
		INSERT INTO customer (
			name, phoneNumber, qad, barDaman, baghal, shana, astin, tunban,
			pacha, yakhan, yakhanValue, yakhanBin, farmaish, daman, caff,
			caffValue, jeeb, tunbanStyle, jeebTunban, registrationDate, remote_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	insertCustomerWithID = `
		INSERT INTO customer (
			id, name, phoneNumber, qad, barDaman, baghal, shana, astin, tunban,
			pacha, yakhan, yakhanValue, yakhanBin, farmaish, daman, caff,
			caffValue, jeeb, tunbanStyle, jeebTunban, registrationDate, remote_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	updateCustomer = `
		UPDATE customer SET
			name        = ?,
			phoneNumber = ?,
			qad         = ?,
			barDaman    = ?,
			baghal      = ?,
			shana       = ?,
			astin       = ?,
			tunban      = ?,
			pacha       = ?,
			yakhan      = ?,
			yakhanValue = ?,
			yakhanBin   = ?,
			farmaish    = ?,
			daman       = ?,
			caff        = ?,
			caffValue   = ?,
			jeeb        = ?,
			tunbanStyle = ?,
			jeebTunban  = ?
		WHERE id = ?;`

	updateCustomerByRemoteID = `
		UPDATE customer SET
			name        = ?,
			phoneNumber = ?,
			qad         = ?,
			barDaman    = ?,
			baghal      = ?,
			shana       = ?,
			astin       = ?,
			tunban      = ?,
			pacha       = ?,
			yakhan      = ?,
			yakhanValue = ?,
			yakhanBin   = ?,
			farmaish    = ?,
			daman       = ?,
			caff        = ?,
			caffValue   = ?,
			jeeb        = ?,
			tunbanStyle = ?,
			jeebTunban  = ?
		WHERE remote_id = ?;`

	getCustomer = `
		SELECT
			id, name, phoneNumber, qad, barDaman, baghal, shana, astin, tunban,
			pacha, yakhan, yakhanValue, yakhanBin, farmaish, daman, caff,
			caffValue, jeeb, tunbanStyle, jeebTunban, registrationDate, remote_id
		FROM customer
		WHERE id = ?;`

	deleteCustomer = `DELETE FROM customer WHERE id = ?;`

	setCustomerRemoteID = `UPDATE customer SET remote_id = ? WHERE id = ?;`

	countCustomers = `SELECT COUNT(id) FROM customer;`
)

// Statements for the on-device waskat table.
const (
	insertWaskat = `
		INSERT INTO waskat (
			name, phoneNumber, qad, yakhan, shana, baghal, kamar, soreen,
			astin, yakhanValue, registrationDate, remote_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	insertWaskatWithID = `
		INSERT INTO waskat (
			id, name, phoneNumber, qad, yakhan, shana, baghal, kamar, soreen,
			astin, yakhanValue, registrationDate, remote_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	updateWaskat = `
		UPDATE waskat SET
			name        = ?,
			phoneNumber = ?,
			qad         = ?,
			yakhan      = ?,
			shana       = ?,
			baghal      = ?,
			kamar       = ?,
			soreen      = ?,
			astin       = ?,
			yakhanValue = ?
		WHERE id = ?;`

	updateWaskatByRemoteID = `
		UPDATE waskat SET
			name        = ?,
			phoneNumber = ?,
			qad         = ?,
			yakhan      = ?,
			shana       = ?,
			baghal      = ?,
			kamar       = ?,
			soreen      = ?,
			astin       = ?,
			yakhanValue = ?
		WHERE remote_id = ?;`

	getWaskat = `
		SELECT
			id, name, phoneNumber, qad, yakhan, shana, baghal, kamar, soreen,
			astin, yakhanValue, registrationDate, remote_id
		FROM waskat
		WHERE id = ?;`

	deleteWaskat = `DELETE FROM waskat WHERE id = ?;`

	setWaskatRemoteID = `UPDATE waskat SET remote_id = ? WHERE id = ?;`

	countWaskats = `SELECT COUNT(id) FROM waskat;`
)

// Statements for the single-row admin table and the generic keyvalue table.
const (
	countAdminRows = `SELECT COUNT(id) FROM admin;`

	insertAdminRow = `INSERT INTO admin (password) VALUES (?);`

	getAdminPassword = `SELECT password FROM admin ORDER BY id LIMIT 1;`

	updateAdminPassword = `UPDATE admin SET password = ?;`

	getKeyValue = `SELECT value FROM keyvalue WHERE key = ?;`

	setKeyValue = `
		INSERT INTO keyvalue (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	deleteKeyValue = `DELETE FROM keyvalue WHERE key = ?;`
)

// buildRecordSearchQuery builds the list/search SELECT for a local record
// table. A non-empty filter narrows by name or phone number, matching
// anywhere in the value, the way the original search box behaved.
func buildRecordSearchQuery(table string, columns []string, filter string) (string, []any, error) {
	builder := squirrel.Select(columns...).
		From(table).
		OrderBy("id")

	if filter != "" {
		pattern := "%" + filter + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Like{"name": pattern},
			squirrel.Like{"phoneNumber": pattern},
		})
	}

	return builder.ToSql()
}
