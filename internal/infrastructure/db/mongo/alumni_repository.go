package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

const defaultAlumniCollection = "alumnis"

type AlumniRepository struct {
	col *mongo.Collection
}

func NewAlumniRepository(db *mongo.Database, collection string) *AlumniRepository {
	if collection == "" {
		collection = defaultAlumniCollection
	}
	return &AlumniRepository{col: db.Collection(collection)}
}

type mongoAlumni struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	RollNumber  string             `bson:"rollNumber"`
	Email       string             `bson:"email"`
	Phone       string             `bson:"phone"`
	Batch       string             `bson:"batch"`
	Department  string             `bson:"department"`
	Company     string             `bson:"company"`
	Designation string             `bson:"designation"`
	LinkedIn    string             `bson:"linkedin"`
	Notes       string             `bson:"notes"`
	Role        string             `bson:"role,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toMongoAlumni(a *domain.Alumni) mongoAlumni {
	return mongoAlumni{
		Name:        a.Name,
		RollNumber:  a.RollNumber,
		Email:       a.Email,
		Phone:       a.Phone,
		Batch:       a.Batch,
		Department:  a.Department,
		Company:     a.Company,
		Designation: a.Designation,
		LinkedIn:    a.LinkedIn,
		Notes:       a.Notes,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *mongoAlumni) toDomain() *domain.Alumni {
	return &domain.Alumni{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		RollNumber:  m.RollNumber,
		Email:       m.Email,
		Phone:       m.Phone,
		Batch:       m.Batch,
		Department:  m.Department,
		Company:     m.Company,
		Designation: m.Designation,
		LinkedIn:    m.LinkedIn,
		Notes:       m.Notes,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *AlumniRepository) Create(ctx context.Context, a *domain.Alumni) (*domain.Alumni, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoAlumni(a)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert alumni: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert alumni: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *AlumniRepository) FindByID(ctx context.Context, id string) (*domain.Alumni, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoAlumni
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlumniNotFound
		}
		return nil, fmt.Errorf("find alumni: %w", err)
	}
	return m.toDomain(), nil
}

// listFilter selects directory-visible records, optionally narrowed by a
// case-insensitive substring match. The search text is matched literally.
func listFilter(search string) bson.M {
	visible := bson.M{"$or": bson.A{
		bson.M{"role": domain.AlumniRoleStudent},
		bson.M{"role": bson.M{"$exists": false}},
	}}
	if search == "" {
		return visible
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
	matches := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"email": pattern},
		bson.M{"company": pattern},
		bson.M{"department": pattern},
	}}
	return bson.M{"$and": bson.A{visible, matches}}
}

// skipFor returns the offset of a 1-based page, never negative.
func skipFor(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	return int64(page-1) * int64(limit)
}

// List returns one page of directory-visible records, newest first.
func (r *AlumniRepository) List(ctx context.Context, f ports.AlumniListFilter) ([]*domain.Alumni, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f.Search)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count alumni: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skipFor(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list alumni: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoAlumni
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("list alumni: decode: %w", err)
	}

	items := make([]*domain.Alumni, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, total, nil
}

// Replace overwrites the mutable fields. createdAt is preserved.
func (r *AlumniRepository) Replace(ctx context.Context, id string, a *domain.Alumni) (*domain.Alumni, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":        a.Name,
		"rollNumber":  a.RollNumber,
		"email":       a.Email,
		"phone":       a.Phone,
		"batch":       a.Batch,
		"department":  a.Department,
		"company":     a.Company,
		"designation": a.Designation,
		"linkedin":    a.LinkedIn,
		"notes":       a.Notes,
		"role":        a.Role,
		"updatedAt":   a.UpdatedAt,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoAlumni
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAlumniNotFound
		}
		return nil, fmt.Errorf("update alumni: %w", err)
	}
	return m.toDomain(), nil
}

func (r *AlumniRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete alumni: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAlumniNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the directory listing.
func (r *AlumniRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
