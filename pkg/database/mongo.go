package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrUnavailable wraps connection-establishment failures so handlers can
// map them to 503 instead of a generic 500.
var ErrUnavailable = errors.New("database unavailable")

const dialTimeout = 10 * time.Second

// Manager lazily establishes and caches one MongoDB handle for the
// process lifetime. The mutex makes first access single-flight:
// concurrent first callers block on one dial instead of opening
// duplicate connections. A failed dial is not cached; the next caller
// retries.
type Manager struct {
	uri    string
	dbName string
	logger *zap.Logger

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewManager creates a manager; no connection is made until Acquire.
func NewManager(uri, dbName string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{uri: uri, dbName: dbName, logger: logger}
}

// NewManagerWithDatabase creates a manager around an existing handle.
// Used by tests to inject a database without dialing.
func NewManagerWithDatabase(db *mongo.Database) *Manager {
	return &Manager{db: db, logger: zap.NewNop()}
}

// Acquire returns the cached database handle, dialing on first use.
func (m *Manager) Acquire(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrUnavailable, err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	m.client = client
	m.db = client.Database(m.dbName)
	m.logger.Info("MongoDB connection established", zap.String("database", m.dbName))
	return m.db, nil
}

// Ping checks connectivity, establishing the connection if needed.
func (m *Manager) Ping(ctx context.Context) error {
	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}
	return nil
}

// Close disconnects the cached client, if any.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}
