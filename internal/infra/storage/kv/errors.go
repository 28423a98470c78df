package kv

import "errors"

var (
	// ErrItemNotFound возвращается, когда записи с таким ключом нет
	ErrItemNotFound = errors.New("kv: item not found")

	// ErrInvalidKey возвращается при пустом ключе партиции или сортировки
	ErrInvalidKey = errors.New("kv: invalid key")

	// ErrBatchUnsupported возвращается, когда бэкенд не умеет атомарно писать несколько записей
	ErrBatchUnsupported = errors.New("kv: atomic batch is not supported by backend")

	// ErrBackend возвращается при ошибках нижележащего хранилища
	ErrBackend = errors.New("kv: backend error")
)

// ValidateKey проверяет, что обе части ключа заданы
func ValidateKey(pk, sk string) error {
	if pk == "" || sk == "" {
		return ErrInvalidKey
	}
	return nil
}
