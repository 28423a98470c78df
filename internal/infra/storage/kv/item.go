package kv

// Key адрес записи в хранилище: ключ партиции + ключ сортировки
type Key struct {
	PK string
	SK string
}

// Item запись хранилища. Атрибуты - плоский набор строк
type Item struct {
	PK    string
	SK    string
	Attrs map[string]string
}

// Key возвращает адрес записи
func (i *Item) Key() Key {
	return Key{PK: i.PK, SK: i.SK}
}

// Attr возвращает атрибут или пустую строку
func (i *Item) Attr(name string) string {
	if i.Attrs == nil {
		return ""
	}
	return i.Attrs[name]
}

// Clone возвращает копию записи, не разделяющую map атрибутов
func (i Item) Clone() Item {
	attrs := make(map[string]string, len(i.Attrs))
	for k, v := range i.Attrs {
		attrs[k] = v
	}
	i.Attrs = attrs
	return i
}
