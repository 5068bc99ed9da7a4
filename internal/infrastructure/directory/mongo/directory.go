// Package mongo implements the identity directory over a MongoDB
// collection, for kiosk deployments where several clients share one
// identity list without a full identity service.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rently/rently-client/internal/core/domain"
	"github.com/rently/rently-client/internal/metrics"
)

const (
	identityCollection = "identities"
	connectTimeout     = 10 * time.Second
)

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns the client plus the selected database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(database), nil
}

// Directory stores identities in the "identities" collection. A unique index
// on (name_lower, role) is expected; duplicate-key failures map to
// domain.ErrConflict.
type Directory struct {
	coll *mongo.Collection
}

func NewDirectory(db *mongo.Database) *Directory {
	return &Directory{coll: db.Collection(identityCollection)}
}

type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	NameLower    string             `bson:"name_lower"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
}

func (d *Directory) List(ctx context.Context) ([]domain.Identity, error) {
	cursor, err := d.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "error").Inc()
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cursor.Close(ctx)

	var identities []domain.Identity
	for cursor.Next(ctx) {
		var doc identityDoc
		if err := cursor.Decode(&doc); err != nil {
			metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "error").Inc()
			return nil, fmt.Errorf("decode identity: %w", err)
		}
		role, err := domain.ParseRole(doc.Role)
		if err != nil {
			continue
		}
		identities = append(identities, domain.Identity{
			ID:     doc.ID.Hex(),
			Name:   doc.Name,
			Role:   role,
			Secret: domain.Secret{Scheme: domain.SecretBcrypt, Value: doc.PasswordHash},
		})
	}
	if err := cursor.Err(); err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "error").Inc()
		return nil, fmt.Errorf("list identities: %w", err)
	}
	metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "success").Inc()
	return identities, nil
}

func (d *Directory) Create(ctx context.Context, n domain.NewIdentity) (*domain.Identity, error) {
	secret, err := domain.BcryptSecret(n.Password)
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "error").Inc()
		return nil, err
	}

	doc := identityDoc{
		Name:         n.Name,
		NameLower:    strings.ToLower(strings.TrimSpace(n.Name)),
		Role:         string(n.Role),
		PasswordHash: secret.Value,
		CreatedAt:    time.Now().UTC().Unix(),
	}

	res, err := d.coll.InsertOne(ctx, doc)
	if err != nil {
		metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "error").Inc()
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	metrics.DirectoryRequestsTotal.WithLabelValues("mongo", "success").Inc()

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return &domain.Identity{
		ID:     oid.Hex(),
		Name:   n.Name,
		Role:   n.Role,
		Secret: secret,
	}, nil
}
