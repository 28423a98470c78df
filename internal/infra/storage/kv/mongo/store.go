package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-WorkshopAppointments/internal/infra/storage/kv"
)

// DefaultCollection имя коллекции по умолчанию
const DefaultCollection = "kv_items"

// document представление записи в коллекции
type document struct {
	PK    string            `bson:"pk"`
	SK    string            `bson:"sk"`
	Attrs map[string]string `bson:"attrs"`
}

func (d document) toItem() kv.Item {
	attrs := d.Attrs
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return kv.Item{PK: d.PK, SK: d.SK, Attrs: attrs}
}

func documentFromItem(item kv.Item) document {
	attrs := item.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	return document{PK: item.PK, SK: item.SK, Attrs: attrs}
}

// Store бэкенд хранилища поверх коллекции MongoDB.
// Атомарных батчей нет: WriteBatch всегда возвращает kv.ErrBatchUnsupported.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore создает бэкенд поверх коллекции
func NewStore(client *mongo.Client, database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// EnsureIndexes создает уникальный индекс (pk, sk)
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pk", Value: 1}, {Key: "sk", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("pk_sk_unique"),
	})
	if err != nil {
		return fmt.Errorf("%w: create kv indexes: %v", kv.ErrBackend, err)
	}
	return nil
}

func keyFilter(pk, sk string) bson.M {
	return bson.M{"pk": pk, "sk": sk}
}

// prefixFilter выборка по партиции и якорному регулярному выражению на ключ сортировки
func prefixFilter(pk, skPrefix string) bson.M {
	filter := bson.M{"pk": pk}
	if skPrefix != "" {
		filter["sk"] = bson.M{"$regex": "^" + regexp.QuoteMeta(skPrefix)}
	}
	return filter
}

func (s *Store) Get(ctx context.Context, pk, sk string) (*kv.Item, error) {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return nil, err
	}

	var doc document
	err := s.coll.FindOne(ctx, keyFilter(pk, sk)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, kv.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find one: %v", kv.ErrBackend, err)
	}

	item := doc.toItem()
	return &item, nil
}

func (s *Store) Put(ctx context.Context, item kv.Item) error {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx, keyFilter(item.PK, item.SK), documentFromItem(item), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: mongo replace: %v", kv.ErrBackend, err)
	}
	return nil
}

// PutIfAbsent опирается на уникальный индекс: дубликат ключа означает, что ключ занят
func (s *Store) PutIfAbsent(ctx context.Context, item kv.Item) (bool, error) {
	if err := kv.ValidateKey(item.PK, item.SK); err != nil {
		return false, err
	}

	_, err := s.coll.InsertOne(ctx, documentFromItem(item))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: mongo insert: %v", kv.ErrBackend, err)
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, pk, sk string) error {
	if err := kv.ValidateKey(pk, sk); err != nil {
		return err
	}

	if _, err := s.coll.DeleteOne(ctx, keyFilter(pk, sk)); err != nil {
		return fmt.Errorf("%w: mongo delete: %v", kv.ErrBackend, err)
	}
	return nil
}

func (s *Store) QueryByPrefix(ctx context.Context, pk, skPrefix string) ([]kv.Item, error) {
	if pk == "" {
		return nil, kv.ErrInvalidKey
	}

	opts := options.Find().SetSort(bson.D{{Key: "sk", Value: 1}})
	cursor, err := s.coll.Find(ctx, prefixFilter(pk, skPrefix), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find: %v", kv.ErrBackend, err)
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: mongo decode: %v", kv.ErrBackend, err)
	}

	items := make([]kv.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toItem())
	}
	return items, nil
}

func (s *Store) WriteBatch(context.Context, []kv.Item, []kv.Key) error {
	return kv.ErrBatchUnsupported
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
