package listing

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores listings in a MongoDB collection.
type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoRepo wraps a collection with a per-operation timeout.
func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type bookDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Edition       string             `bson:"edition"`
	Author        string             `bson:"author"`
	ImageURL      string             `bson:"imageUrl"`
	ContactPhone  string             `bson:"contactPhone"`
	ContactEmail  string             `bson:"contactEmail"`
	Price         float64            `bson:"price"`
	OriginalPrice float64            `bson:"originalPrice"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d bookDoc) toBook() Book {
	return Book{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Edition:       d.Edition,
		Author:        d.Author,
		ImageURL:      d.ImageURL,
		ContactPhone:  d.ContactPhone,
		ContactEmail:  d.ContactEmail,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		CreatedAt:     d.CreatedAt,
	}
}

// substring builds a case-insensitive substring predicate. The input
// is quoted so regex metacharacters behave as literals, keeping the
// semantics identical to the in-memory backend's plain substring
// match.
func substring(field, text string) bson.M {
	return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}}
}

// buildQuery translates a Filter into the store's native predicate
// language: OR across title/author for free-text search, AND between
// independent dimensions.
func buildQuery(f Filter) bson.M {
	var clauses []bson.M
	if f.Search != "" {
		clauses = append(clauses, bson.M{"$or": []bson.M{
			substring("title", f.Search),
			substring("author", f.Search),
		}})
	}
	if f.Author != "" {
		clauses = append(clauses, substring("author", f.Author))
	}
	if f.Edition != "" {
		clauses = append(clauses, substring("edition", f.Edition))
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// List queries the collection sorted by createdAt descending, with
// _id as a stable tiebreak for listings created in the same
// millisecond.
func (r *MongoRepo) List(ctx context.Context, f Filter) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.coll.Find(ctx, buildQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toBook())
	}
	return out, nil
}

// Create inserts a new document and writes the store-assigned ID and
// CreatedAt back into b.
func (r *MongoRepo) Create(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := bookDoc{
		Title:         b.Title,
		Edition:       b.Edition,
		Author:        b.Author,
		ImageURL:      b.ImageURL,
		ContactPhone:  b.ContactPhone,
		ContactEmail:  b.ContactEmail,
		Price:         b.Price,
		OriginalPrice: b.OriginalPrice,
		CreatedAt:     time.Now().UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	b.ID = oid.Hex()
	b.CreatedAt = doc.CreatedAt
	return nil
}

// Delete removes the document with the given id. An id that is not a
// valid ObjectID cannot name a stored document, so it is reported as
// not found rather than an error.
func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
