package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/models"
)

var customerColumns = []string{
	"id", "name", "phoneNumber", "qad", "barDaman", "baghal", "shana",
	"astin", "tunban", "pacha", "yakhan", "yakhanValue", "yakhanBin",
	"farmaish", "daman", "caff", "caffValue", "jeeb", "tunbanStyle",
	"jeebTunban", "registrationDate", "remote_id",
}

type customerRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCustomerRepository returns the repository backing the local customer
// table.
func NewCustomerRepository(db *DB) LocalRecordRepository {
	return &customerRepository{
		db:     db,
		logger: db.logger.GetChildLogger(),
	}
}

func (r *customerRepository) EntityType() models.EntityType {
	return models.EntityCustomer
}

func (r *customerRepository) Insert(ctx context.Context, rec models.Record) (int64, error) {
	c := models.CustomerFromRecord(rec)

	res, err := r.db.ExecContext(ctx, insertCustomer,
		c.Name, c.PhoneNumber, c.Qad, c.BarDaman, c.Baghal, c.Shana,
		c.Astin, c.Tunban, c.Pacha, c.Yakhan, c.YakhanValue, boolToInt(c.YakhanBin),
		c.Farmaish, c.Daman, c.Caff, c.CaffValue, c.Jeeb, c.TunbanStyle,
		boolToInt(c.JeebTunban), c.RegistrationDate, c.RemoteID,
	)
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Insert").Msg("error inserting customer")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Insert").Msg("error reading inserted id")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, nil
}

func (r *customerRepository) Update(ctx context.Context, localID int64, rec models.Record) error {
	c := models.CustomerFromRecord(rec)

	res, err := r.db.ExecContext(ctx, updateCustomer,
		c.Name, c.PhoneNumber, c.Qad, c.BarDaman, c.Baghal, c.Shana,
		c.Astin, c.Tunban, c.Pacha, c.Yakhan, c.YakhanValue, boolToInt(c.YakhanBin),
		c.Farmaish, c.Daman, c.Caff, c.CaffValue, c.Jeeb, c.TunbanStyle,
		boolToInt(c.JeebTunban), localID,
	)
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Update").Msg("error updating customer")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Update").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, localID int64) error {
	if _, err := r.db.ExecContext(ctx, deleteCustomer, localID); err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Delete").Msg("error deleting customer")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *customerRepository) Get(ctx context.Context, localID int64) (models.Record, error) {
	row := r.db.QueryRowContext(ctx, getCustomer, localID)

	c, err := scanCustomer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		r.logger.Err(err).Str("func", "customerRepository.Get").Msg("error scanning customer row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return c.ToRecord(), nil
}

func (r *customerRepository) List(ctx context.Context, filter string) ([]models.Record, error) {
	query, args, err := buildRecordSearchQuery("customer", customerColumns, filter)
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.List").Msg("error building search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.List").Msg("error querying customers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			r.logger.Err(err).Str("func", "customerRepository.List").Msg("error scanning customer rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, c.ToRecord())
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "customerRepository.List").Msg("error iterating customer rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countCustomers).Scan(&count); err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Count").Msg("error counting customers")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *customerRepository) SetRemoteID(ctx context.Context, localID int64, remoteID string) error {
	res, err := r.db.ExecContext(ctx, setCustomerRemoteID, remoteID, localID)
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.SetRemoteID").Msg("error storing remote id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.SetRemoteID").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *customerRepository) Upsert(ctx context.Context, rec models.Record) error {
	c := models.CustomerFromRecord(rec)

	if c.RemoteID != "" {
		res, err := r.db.ExecContext(ctx, updateCustomerByRemoteID,
			c.Name, c.PhoneNumber, c.Qad, c.BarDaman, c.Baghal, c.Shana,
			c.Astin, c.Tunban, c.Pacha, c.Yakhan, c.YakhanValue, boolToInt(c.YakhanBin),
			c.Farmaish, c.Daman, c.Caff, c.CaffValue, c.Jeeb, c.TunbanStyle,
			boolToInt(c.JeebTunban), c.RemoteID,
		)
		if err != nil {
			r.logger.Err(err).Str("func", "customerRepository.Upsert").Msg("error updating customer by remote id")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			return nil
		}
	}

	if c.ID > 0 {
		err := r.Update(ctx, c.ID, rec)
		switch {
		case err == nil:
			return r.SetRemoteID(ctx, c.ID, c.RemoteID)
		case !errors.Is(err, ErrRecordNotFound):
			return err
		}
	}

	var err error
	if c.ID > 0 {
		_, err = r.db.ExecContext(ctx, insertCustomerWithID,
			c.ID, c.Name, c.PhoneNumber, c.Qad, c.BarDaman, c.Baghal, c.Shana,
			c.Astin, c.Tunban, c.Pacha, c.Yakhan, c.YakhanValue, boolToInt(c.YakhanBin),
			c.Farmaish, c.Daman, c.Caff, c.CaffValue, c.Jeeb, c.TunbanStyle,
			boolToInt(c.JeebTunban), c.RegistrationDate, c.RemoteID,
		)
	} else {
		_, err = r.db.ExecContext(ctx, insertCustomer,
			c.Name, c.PhoneNumber, c.Qad, c.BarDaman, c.Baghal, c.Shana,
			c.Astin, c.Tunban, c.Pacha, c.Yakhan, c.YakhanValue, boolToInt(c.YakhanBin),
			c.Farmaish, c.Daman, c.Caff, c.CaffValue, c.Jeeb, c.TunbanStyle,
			boolToInt(c.JeebTunban), c.RegistrationDate, c.RemoteID,
		)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "customerRepository.Upsert").Msg("error inserting mirrored customer")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func scanCustomer(scan func(dest ...any) error) (models.Customer, error) {
	var (
		c          models.Customer
		yakhanBin  int64
		jeebTunban int64
		remoteID   sql.NullString
	)

	err := scan(
		&c.ID, &c.Name, &c.PhoneNumber, &c.Qad, &c.BarDaman, &c.Baghal,
		&c.Shana, &c.Astin, &c.Tunban, &c.Pacha, &c.Yakhan, &c.YakhanValue,
		&yakhanBin, &c.Farmaish, &c.Daman, &c.Caff, &c.CaffValue, &c.Jeeb,
		&c.TunbanStyle, &jeebTunban, &c.RegistrationDate, &remoteID,
	)
	if err != nil {
		return models.Customer{}, err
	}

	c.YakhanBin = yakhanBin != 0
	c.JeebTunban = jeebTunban != 0
	c.RemoteID = remoteID.String

	return c, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
