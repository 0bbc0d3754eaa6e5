package store

import (
	"context"
	"fmt"
)

// Driver names accepted by OpenBackend.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// OpenBackend opens the backend named by opts.Driver. An empty SQLite path
// resolves to DefaultDBPath.
func OpenBackend(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		path := opts.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return Open(path)
	case DriverMongo:
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("mongo driver requires a connection URI")
		}
		db := opts.MongoDatabase
		if db == "" {
			db = "edubot"
		}
		return OpenMongo(ctx, opts.MongoURI, db)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
