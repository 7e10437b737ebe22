package sqlengine

import (
	"context"
	"errors"
	"strings"

	"github.com/mikietechie/sapp-library/lendingstore"
)

// schemaStatements are written against placeholder column types that CreateSchema replaces per dialect.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS policy_settings (
		id                   {uuid} PRIMARY KEY,
		default_lease_days   INTEGER NOT NULL CHECK (default_lease_days >= 0),
		default_booking_days INTEGER NOT NULL CHECK (default_booking_days >= 0),
		created_at           {timestamp} NOT NULL,
		updated_at           {timestamp} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS genre (
		id          {uuid} PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image       TEXT NOT NULL DEFAULT '',
		created_at  {timestamp} NOT NULL,
		updated_at  {timestamp} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS series (
		id         {uuid} PRIMARY KEY,
		title      TEXT NOT NULL,
		image      TEXT NOT NULL DEFAULT '',
		genre_id   {uuid} NOT NULL REFERENCES genre (id) ON DELETE RESTRICT,
		publisher  TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		created_at {timestamp} NOT NULL,
		updated_at {timestamp} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS book_type (
		id         {uuid} PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at {timestamp} NOT NULL,
		updated_at {timestamp} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS book (
		id           {uuid} PRIMARY KEY,
		title        TEXT NOT NULL,
		image        TEXT NOT NULL DEFAULT '',
		book_type_id {uuid} NOT NULL REFERENCES book_type (id) ON DELETE RESTRICT,
		isbn         TEXT NOT NULL DEFAULT '',
		genre_id     {uuid} NULL REFERENCES genre (id) ON DELETE RESTRICT,
		series_id    {uuid} NULL REFERENCES series (id) ON DELETE SET NULL,
		author       TEXT NOT NULL DEFAULT '',
		publisher    TEXT NOT NULL DEFAULT '',
		"year"       INTEGER NOT NULL DEFAULT 0 CHECK ("year" >= 0),
		language     TEXT NOT NULL DEFAULT 'English',
		created_at   {timestamp} NOT NULL,
		updated_at   {timestamp} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS book_genre_id_idx ON book (genre_id)`,
	`CREATE TABLE IF NOT EXISTS book_item (
		id                {uuid} PRIMARY KEY,
		book_id           {uuid} NOT NULL REFERENCES book (id) ON DELETE CASCADE,
		code              TEXT NOT NULL,
		retired_on        DATE NULL,
		retirement_reason TEXT NOT NULL DEFAULT '',
		"condition"       TEXT NOT NULL DEFAULT 'New',
		available         BOOLEAN NOT NULL DEFAULT TRUE,
		created_by        TEXT NOT NULL DEFAULT '',
		updated_by        TEXT NOT NULL DEFAULT '',
		created_at        {timestamp} NOT NULL,
		updated_at        {timestamp} NOT NULL,
		CONSTRAINT book_item_book_id_code_key UNIQUE (book_id, code)
	)`,
	`CREATE TABLE IF NOT EXISTS member (
		id                 {uuid} PRIMARY KEY,
		user_ref           TEXT NOT NULL DEFAULT '',
		full_name          TEXT NOT NULL DEFAULT '',
		role               TEXT NOT NULL DEFAULT 'One',
		active             BOOLEAN NOT NULL DEFAULT TRUE,
		about              TEXT NOT NULL DEFAULT '',
		termination_reason TEXT NOT NULL DEFAULT '',
		created_at         {timestamp} NOT NULL,
		updated_at         {timestamp} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lease (
		id           {uuid} PRIMARY KEY,
		image        TEXT NOT NULL DEFAULT '',
		"condition"  TEXT NOT NULL DEFAULT 'Good',
		book_item_id {uuid} NOT NULL REFERENCES book_item (id) ON DELETE CASCADE,
		member_id    {uuid} NOT NULL REFERENCES member (id) ON DELETE CASCADE,
		leased_on    DATE NOT NULL,
		due_date     DATE NOT NULL,
		returned     DATE NULL,
		created_at   {timestamp} NOT NULL,
		updated_at   {timestamp} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS lease_book_item_id_returned_idx ON lease (book_item_id, returned)`,
	`CREATE INDEX IF NOT EXISTS lease_member_id_idx ON lease (member_id)`,
	`CREATE TABLE IF NOT EXISTS booking (
		id          {uuid} PRIMARY KEY,
		book_id     {uuid} NOT NULL REFERENCES book (id) ON DELETE CASCADE,
		member_id   {uuid} NOT NULL REFERENCES member (id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'Pending',
		expire_date DATE NOT NULL,
		created_at  {timestamp} NOT NULL,
		updated_at  {timestamp} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS booking_book_id_idx ON booking (book_id)`,
	`CREATE TABLE IF NOT EXISTS restock_action (
		id                  {uuid} PRIMARY KEY,
		book_id             {uuid} NOT NULL REFERENCES book (id) ON DELETE CASCADE,
		number_of_books     INTEGER NOT NULL CHECK (number_of_books >= 0),
		codes               TEXT NULL,
		prefix              TEXT NOT NULL,
		generate_codes_from INTEGER NULL CHECK (generate_codes_from >= 0),
		"condition"         TEXT NOT NULL,
		notes               TEXT NOT NULL DEFAULT '',
		produced_codes      TEXT NOT NULL DEFAULT '[]',
		created_by          TEXT NOT NULL DEFAULT '',
		updated_by          TEXT NOT NULL DEFAULT '',
		created_at          {timestamp} NOT NULL,
		updated_at          {timestamp} NOT NULL
	)`,
}

func (s Store) columnTypes() *strings.Replacer {
	if s.dialectName == dialectSQLite {
		return strings.NewReplacer("{uuid}", "TEXT", "{timestamp}", "TIMESTAMP")
	}

	return strings.NewReplacer("{uuid}", "UUID", "{timestamp}", "TIMESTAMPTZ")
}

// CreateSchema creates all tables and indexes that do not exist yet.
func (s Store) CreateSchema(ctx context.Context) (err error) {
	ctx, observer := s.observe(ctx, operationCreateSchema)
	defer func() { observer.finish(err, logAttrDialect, s.dialectName) }()

	replacer := s.columnTypes()

	for _, statement := range schemaStatements {
		if _, execErr := s.execRaw(ctx, s.db, replacer.Replace(statement)); execErr != nil {
			return errors.Join(lendingstore.ErrCreatingSchemaFailed, execErr)
		}
	}

	return nil
}
