package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/models"
)

var waskatColumns = []string{
	"id", "name", "phoneNumber", "qad", "yakhan", "shana", "baghal",
	"kamar", "soreen", "astin", "yakhanValue", "registrationDate",
	"remote_id",
}

type waskatRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewWaskatRepository returns the repository backing the local waskat table.
func NewWaskatRepository(db *DB) LocalRecordRepository {
	return &waskatRepository{
		db:     db,
		logger: db.logger.GetChildLogger(),
	}
}

func (r *waskatRepository) EntityType() models.EntityType {
	return models.EntityWaskat
}

func (r *waskatRepository) Insert(ctx context.Context, rec models.Record) (int64, error) {
	w := models.WaskatFromRecord(rec)

	res, err := r.db.ExecContext(ctx, insertWaskat,
		w.Name, w.PhoneNumber, w.Qad, w.Yakhan, w.Shana, w.Baghal,
		w.Kamar, w.Soreen, w.Astin, w.YakhanValue, w.RegistrationDate,
		w.RemoteID,
	)
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Insert").Msg("error inserting waskat")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Insert").Msg("error reading inserted id")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return id, nil
}

func (r *waskatRepository) Update(ctx context.Context, localID int64, rec models.Record) error {
	w := models.WaskatFromRecord(rec)

	res, err := r.db.ExecContext(ctx, updateWaskat,
		w.Name, w.PhoneNumber, w.Qad, w.Yakhan, w.Shana, w.Baghal,
		w.Kamar, w.Soreen, w.Astin, w.YakhanValue, localID,
	)
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Update").Msg("error updating waskat")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Update").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *waskatRepository) Delete(ctx context.Context, localID int64) error {
	if _, err := r.db.ExecContext(ctx, deleteWaskat, localID); err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Delete").Msg("error deleting waskat")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *waskatRepository) Get(ctx context.Context, localID int64) (models.Record, error) {
	row := r.db.QueryRowContext(ctx, getWaskat, localID)

	w, err := scanWaskat(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		r.logger.Err(err).Str("func", "waskatRepository.Get").Msg("error scanning waskat row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return w.ToRecord(), nil
}

func (r *waskatRepository) List(ctx context.Context, filter string) ([]models.Record, error) {
	query, args, err := buildRecordSearchQuery("waskat", waskatColumns, filter)
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.List").Msg("error building search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.List").Msg("error querying waskats")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		w, err := scanWaskat(rows.Scan)
		if err != nil {
			r.logger.Err(err).Str("func", "waskatRepository.List").Msg("error scanning waskat rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, w.ToRecord())
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.List").Msg("error iterating waskat rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *waskatRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countWaskats).Scan(&count); err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Count").Msg("error counting waskats")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *waskatRepository) SetRemoteID(ctx context.Context, localID int64, remoteID string) error {
	res, err := r.db.ExecContext(ctx, setWaskatRemoteID, remoteID, localID)
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.SetRemoteID").Msg("error storing remote id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.SetRemoteID").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *waskatRepository) Upsert(ctx context.Context, rec models.Record) error {
	w := models.WaskatFromRecord(rec)

	if w.RemoteID != "" {
		res, err := r.db.ExecContext(ctx, updateWaskatByRemoteID,
			w.Name, w.PhoneNumber, w.Qad, w.Yakhan, w.Shana, w.Baghal,
			w.Kamar, w.Soreen, w.Astin, w.YakhanValue, w.RemoteID,
		)
		if err != nil {
			r.logger.Err(err).Str("func", "waskatRepository.Upsert").Msg("error updating waskat by remote id")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected > 0 {
			return nil
		}
	}

	if w.ID > 0 {
		err := r.Update(ctx, w.ID, rec)
		switch {
		case err == nil:
			return r.SetRemoteID(ctx, w.ID, w.RemoteID)
		case !errors.Is(err, ErrRecordNotFound):
			return err
		}
	}

	var err error
	if w.ID > 0 {
		_, err = r.db.ExecContext(ctx, insertWaskatWithID,
			w.ID, w.Name, w.PhoneNumber, w.Qad, w.Yakhan, w.Shana,
			w.Baghal, w.Kamar, w.Soreen, w.Astin, w.YakhanValue,
			w.RegistrationDate, w.RemoteID,
		)
	} else {
		_, err = r.db.ExecContext(ctx, insertWaskat,
			w.Name, w.PhoneNumber, w.Qad, w.Yakhan, w.Shana, w.Baghal,
			w.Kamar, w.Soreen, w.Astin, w.YakhanValue, w.RegistrationDate,
			w.RemoteID,
		)
	}
	if err != nil {
		r.logger.Err(err).Str("func", "waskatRepository.Upsert").Msg("error inserting mirrored waskat")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func scanWaskat(scan func(dest ...any) error) (models.Waskat, error) {
	var (
		w        models.Waskat
		remoteID sql.NullString
	)

	err := scan(
		&w.ID, &w.Name, &w.PhoneNumber, &w.Qad, &w.Yakhan, &w.Shana,
		&w.Baghal, &w.Kamar, &w.Soreen, &w.Astin, &w.YakhanValue,
		&w.RegistrationDate, &remoteID,
	)
	if err != nil {
		return models.Waskat{}, err
	}

	w.RemoteID = remoteID.String

	return w, nil
}
