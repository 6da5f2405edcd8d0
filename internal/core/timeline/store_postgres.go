// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the dataset [Repository].

Each table is read whole, ordered by insertion, because every layout pass needs
the complete record set. Nested records are jsonb documents:

  - politicalentity.periods holds periods with their contexts and vassalage.
  - person.titles holds titles with their periods.

Spouse links are a text[] column.
*/
package timeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/platform/database/schema"
	"github.com/taibuivan/reignline/internal/platform/dberr"
	pgstore "github.com/taibuivan/reignline/internal/platform/postgres"
)

// PostgresRepository reads the dataset from the chronicle schema.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed dataset store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Source() string { return "postgres" }

func (repository *PostgresRepository) Ping(ctx context.Context) error {
	return pgstore.Ping(ctx, repository.pool)
}

// # Reads

// Load reads every table inside one read-only transaction so the snapshot is consistent.
func (repository *PostgresRepository) Load(ctx context.Context) (chronicle.Dataset, error) {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return chronicle.Dataset{}, dberr.Wrap(err, "begin dataset snapshot")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var dataset chronicle.Dataset
	if dataset.Groups, err = loadGroups(ctx, tx); err != nil {
		return chronicle.Dataset{}, err
	}
	if dataset.Dynasties, err = loadDynasties(ctx, tx); err != nil {
		return chronicle.Dataset{}, err
	}
	if dataset.Entities, err = loadEntities(ctx, tx); err != nil {
		return chronicle.Dataset{}, err
	}
	if dataset.People, err = loadPeople(ctx, tx); err != nil {
		return chronicle.Dataset{}, err
	}
	return dataset, nil
}

func selectAll(columns []string, table, ordinal string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(columns, ", "), table, ordinal)
}

func loadGroups(ctx context.Context, tx pgx.Tx) ([]chronicle.HistoricalGroup, error) {
	table := schema.HistoricalGroup
	rows, err := tx.Query(ctx, selectAll(table.Columns(), table.Table, table.Ordinal))
	if err != nil {
		return nil, dberr.Wrap(err, "query groups")
	}

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (chronicle.HistoricalGroup, error) {
		var group chronicle.HistoricalGroup
		err := row.Scan(&group.ID, &group.Name, &group.Description)
		return group, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan groups")
	}
	return groups, nil
}

func loadDynasties(ctx context.Context, tx pgx.Tx) ([]chronicle.Dynasty, error) {
	table := schema.Dynasty
	rows, err := tx.Query(ctx, selectAll(table.Columns(), table.Table, table.Ordinal))
	if err != nil {
		return nil, dberr.Wrap(err, "query dynasties")
	}

	dynasties, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (chronicle.Dynasty, error) {
		var dynasty chronicle.Dynasty
		err := row.Scan(&dynasty.ID, &dynasty.Name, &dynasty.Color, &dynasty.Description)
		return dynasty, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan dynasties")
	}
	return dynasties, nil
}

func loadEntities(ctx context.Context, tx pgx.Tx) ([]chronicle.PoliticalEntity, error) {
	table := schema.PoliticalEntity
	rows, err := tx.Query(ctx, selectAll(table.Columns(), table.Table, table.Ordinal))
	if err != nil {
		return nil, dberr.Wrap(err, "query entities")
	}

	entities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (chronicle.PoliticalEntity, error) {
		var entity chronicle.PoliticalEntity
		err := row.Scan(&entity.ID, &entity.Name, &entity.Description, &entity.Periods)
		return entity, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan entities")
	}
	return entities, nil
}

func loadPeople(ctx context.Context, tx pgx.Tx) ([]chronicle.Person, error) {
	table := schema.Person
	rows, err := tx.Query(ctx, selectAll(table.Columns(), table.Table, table.Ordinal))
	if err != nil {
		return nil, dberr.Wrap(err, "query people")
	}

	people, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (chronicle.Person, error) {
		var person chronicle.Person
		var role string
		err := row.Scan(
			&person.ID, &person.OfficialName, &person.RealName, &person.DynastyID,
			&person.Description, &person.ImageURL,
			&person.BirthYear, &person.BirthMonth, &person.BirthDay,
			&person.DeathYear, &person.DeathMonth, &person.DeathDay,
			&person.FatherID, &person.MotherID, &person.AdoptedParentID,
			&person.SpouseIDs, &person.Titles,
			&role, &person.VerticalPosition, &person.Color, &person.IsHidden,
		)
		if err != nil {
			return person, err
		}
		person.Role, err = chronicle.ParseRole(role)
		return person, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan people")
	}
	return people, nil
}

// # Writes

// Import replaces the whole dataset in one transaction. Record order is preserved.
func (repository *PostgresRepository) Import(ctx context.Context, dataset chronicle.Dataset) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin import")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Truncate resets the ordinal sequences so the new rows keep file order.
	truncate := fmt.Sprintf("TRUNCATE %s, %s, %s, %s RESTART IDENTITY",
		schema.Person.Table, schema.PoliticalEntity.Table, schema.Dynasty.Table, schema.HistoricalGroup.Table)
	if _, err := tx.Exec(ctx, truncate); err != nil {
		return dberr.Wrap(err, "truncate dataset")
	}

	batch := &pgx.Batch{}
	for _, group := range dataset.Groups {
		batch.Queue(insertInto(schema.HistoricalGroup.Table, schema.HistoricalGroup.Columns()),
			group.ID, group.Name, group.Description)
	}
	for _, dynasty := range dataset.Dynasties {
		batch.Queue(insertInto(schema.Dynasty.Table, schema.Dynasty.Columns()),
			dynasty.ID, dynasty.Name, dynasty.Color, dynasty.Description)
	}
	for _, entity := range dataset.Entities {
		periods := entity.Periods
		if periods == nil {
			periods = []chronicle.EntityPeriod{}
		}
		batch.Queue(insertInto(schema.PoliticalEntity.Table, schema.PoliticalEntity.Columns()),
			entity.ID, entity.Name, entity.Description, periods)
	}
	for _, person := range dataset.People {
		spouses, titles := person.SpouseIDs, person.Titles
		if spouses == nil {
			spouses = []string{}
		}
		if titles == nil {
			titles = []chronicle.Title{}
		}
		batch.Queue(insertInto(schema.Person.Table, schema.Person.Columns()),
			person.ID, person.OfficialName, person.RealName, person.DynastyID,
			person.Description, person.ImageURL,
			person.BirthYear, person.BirthMonth, person.BirthDay,
			person.DeathYear, person.DeathMonth, person.DeathDay,
			person.FatherID, person.MotherID, person.AdoptedParentID,
			spouses, titles,
			person.Role.String(), person.VerticalPosition, person.Color, person.IsHidden,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return dberr.Wrap(err, "insert dataset")
	}
	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit import")
	}
	return nil
}

func insertInto(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}
