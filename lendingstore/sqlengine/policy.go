package sqlengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var policyColumns = []string{colID, "default_lease_days", "default_booking_days", colCreatedAt, colUpdatedAt}

// SavePolicySettings inserts the settings when ID is unset or unknown, otherwise updates them.
func (s Store) SavePolicySettings(
	ctx context.Context,
	settings lendingstore.PolicySettings,
) (saved lendingstore.PolicySettings, err error) {
	ctx, observer := s.observe(ctx, operationSavePolicy)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	err = s.inTransaction(ctx, func(tx adapters.DBTx) error {
		stamp, saveErr := s.upsert(ctx, tx, tablePolicySettings, settings.ID, goqu.Record{
			"default_lease_days":   int64(settings.DefaultLeaseDays),
			"default_booking_days": int64(settings.DefaultBookingDays),
		})
		if saveErr != nil {
			return saveErr
		}

		saved = settings
		saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

		return nil
	})
	if err != nil {
		return lendingstore.PolicySettings{}, err
	}

	return saved, nil
}

// LoadPolicySettings returns the earliest created settings row.
// It returns lendingstore.ErrPolicySettingsNotFound when no row exists.
func (s Store) LoadPolicySettings(ctx context.Context) (settings lendingstore.PolicySettings, err error) {
	ctx, observer := s.observe(ctx, operationLoadPolicy)
	defer func() { observer.finish(err) }()

	builder := s.dialect.
		From(tablePolicySettings).
		Select(qualified(tablePolicySettings, policyColumns...)...).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc()).
		Limit(1)

	settings, err = queryOne(ctx, s, s.db, builder, scanPolicySettings)
	if errors.Is(err, lendingstore.ErrNotFound) {
		return lendingstore.PolicySettings{}, lendingstore.ErrPolicySettingsNotFound
	}

	return settings, err
}

func scanPolicySettings(rows adapters.DBRows) (lendingstore.PolicySettings, error) {
	var (
		settings               lendingstore.PolicySettings
		leaseDays, bookingDays int64
	)

	if err := rows.Scan(&settings.ID, &leaseDays, &bookingDays, &settings.CreatedAt, &settings.UpdatedAt); err != nil {
		return lendingstore.PolicySettings{}, err
	}

	settings.DefaultLeaseDays = uint(leaseDays)
	settings.DefaultBookingDays = uint(bookingDays)

	return settings, nil
}
