package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config holds the connection settings and collection names of the store.
type Config struct {
	URI              string
	Database         string
	UsersCollection  string
	AlumniCollection string
	Timeout          time.Duration
}

// Store bundles the client with the repositories built on top of it.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
	Users  *UserRepository
	Alumni *AlumniRepository
	Audit  ports.AuditRepository
}

// Connect dials MongoDB, pings the primary and wires the repositories.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return &Store{
		Client: client,
		DB:     db,
		Users:  NewUserRepository(db, cfg.UsersCollection),
		Alumni: NewAlumniRepository(db, cfg.AlumniCollection),
		Audit:  NewAuditRepository(db),
	}, nil
}

// EnsureIndexes creates the indexes of every collection the service owns.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := s.Alumni.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("alumni indexes: %w", err)
	}
	return nil
}

// Ping reports whether the primary is reachable. Used by the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
