package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
	"github.com/m04kA/SMC-WorkshopAppointments/pkg/psqlbuilder"
)

// DefaultTable имя таблицы по умолчанию
const DefaultTable = "kv_items"

// Ключ сортировки сравнивается побайтно (COLLATE "C"), иначе порядок зависит от локали БД
const orderBySortKey = `sk COLLATE "C" ASC`

func schemaDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	pk    TEXT COLLATE "C" NOT NULL,
	sk    TEXT COLLATE "C" NOT NULL,
	attrs JSONB NOT NULL DEFAULT '{}'::jsonb,
	PRIMARY KEY (pk, sk)
)`, table)
}

func buildGetQuery(table, pk, sk string) (string, []interface{}, error) {
	return psqlbuilder.Select("pk", "sk", "attrs").
		From(table).
		Where(squirrel.Eq{"pk": pk}).
		Where(squirrel.Eq{"sk": sk}).
		ToSql()
}

func buildPutQuery(table string, item kv.Item, onlyIfAbsent bool) (string, []interface{}, error) {
	attrs, err := encodeAttrs(item.Attrs)
	if err != nil {
		return "", nil, err
	}

	suffix := "ON CONFLICT (pk, sk) DO UPDATE SET attrs = EXCLUDED.attrs"
	if onlyIfAbsent {
		suffix = "ON CONFLICT (pk, sk) DO NOTHING"
	}

	return psqlbuilder.Insert(table).
		Columns("pk", "sk", "attrs").
		Values(item.PK, item.SK, attrs).
		Suffix(suffix).
		ToSql()
}

func buildDeleteQuery(table, pk, sk string) (string, []interface{}, error) {
	return psqlbuilder.Delete(table).
		Where(squirrel.Eq{"pk": pk}).
		Where(squirrel.Eq{"sk": sk}).
		ToSql()
}

func buildQueryByPrefix(table, pk, skPrefix string) (string, []interface{}, error) {
	return psqlbuilder.Select("pk", "sk", "attrs").
		From(table).
		Where(squirrel.Eq{"pk": pk}).
		Where(squirrel.Expr("starts_with(sk, ?)", skPrefix)).
		OrderBy(orderBySortKey).
		ToSql()
}

func encodeAttrs(attrs map[string]string) (string, error) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeAttrs, err)
	}
	return string(data), nil
}
