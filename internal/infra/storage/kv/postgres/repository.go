package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// Repository бэкенд key-value хранилища поверх одной таблицы PostgreSQL
type Repository struct {
	db    DB
	table string
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DB, table string) *Repository {
	if table == "" {
		table = DefaultTable
	}
	return &Repository{db: db, table: table}
}

// EnsureSchema создает таблицу, если ее еще нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL(r.table)); err != nil {
		return fmt.Errorf("%w: EnsureSchema: %v", ErrExecQuery, err)
	}
	return nil
}

// Get получает запись по ключу
func (r *Repository) Get(ctx context.Context, pk, sk string) (*kv.Item, error) {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return nil, err
	}

	query, args, err := buildGetQuery(r.table, pk, sk)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan item: %v", ErrScanRow, err)
	}

	return item, nil
}

// Put создает или перезаписывает запись
func (r *Repository) Put(ctx context.Context, item kv.Item) error {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return err
	}
	return r.put(ctx, r.db, item)
}

// PutIfAbsent создает запись, только если ключ свободен (INSERT ... ON CONFLICT DO NOTHING)
func (r *Repository) PutIfAbsent(ctx context.Context, item kv.Item) (bool, error) {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return false, err
	}

	query, args, err := buildPutQuery(r.table, item, true)
	if err != nil {
		return false, fmt.Errorf("%w: PutIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: PutIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: PutIfAbsent - rows affected: %v", ErrExecQuery, err)
	}

	return rows == 1, nil
}

// Delete удаляет запись. Отсутствие записи ошибкой не является
func (r *Repository) Delete(ctx context.Context, pk, sk string) error {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return err
	}
	return r.delete(ctx, r.db, kv.Key{PK: pk, SK: sk})
}

// QueryByPrefix получает записи партиции по префиксу ключа сортировки
func (r *Repository) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error) {
	if pk == "" {
		return nil, kv.ErrInvalidKey
	}

	query, args, err := buildQueryByPrefix(r.table, pk, skPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryByPrefix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryByPrefix - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]kv.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: QueryByPrefix - scan item: %v", ErrScanRow, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: QueryByPrefix - iterate rows: %v", ErrScanRow, err)
	}

	return items, nil
}

// WriteBatch применяет изменения в одной транзакции. Ключи проверяются до BEGIN
func (r *Repository) WriteBatch(ctx context.Context, puts []kv.Item, deletes []kv.Key) (err error) {
	for _, item := range puts {
		if err := kv.ValidateKey(item.PK, item.SK); err != nil {
			return err
		}
	}
	for _, key := range deletes {
		if err := kv.ValidateKey(key.PK, key.SK); err != nil {
			return err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: WriteBatch - begin: %v", ErrTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, item := range puts {
		if err = r.put(ctx, tx, item); err != nil {
			return err
		}
	}
	for _, key := range deletes {
		if err = r.delete(ctx, tx, key); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: WriteBatch - commit: %v", ErrTransaction, err)
	}
	return nil
}

// Close закрывает пул соединений
func (r *Repository) Close(context.Context) error {
	return r.db.Close()
}

func (r *Repository) put(ctx context.Context, executor DBExecutor, item kv.Item) error {
	query, args, err := buildPutQuery(r.table, item, false)
	if err != nil {
		return fmt.Errorf("%w: Put - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Put - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) delete(ctx context.Context, executor DBExecutor, key kv.Key) error {
	query, args, err := buildDeleteQuery(r.table, key.PK, key.SK)
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*kv.Item, error) {
	var (
		item  kv.Item
		attrs []byte
	)
	if err := row.Scan(&item.PK, &item.SK, &attrs); err != nil {
		return nil, err
	}

	item.Attrs = make(map[string]string)
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &item.Attrs); err != nil {
			return nil, err
		}
	}
	return &item, nil
}
