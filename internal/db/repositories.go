package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/kcal/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var ErrUserNotFound = errors.New("user not found")

type UserStore interface {
	FindByID(ctx context.Context, userID string) (models.User, bool, error)
	FindByExternalID(ctx context.Context, externalID string) (models.User, bool, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type StoreConfig struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
	MongoURI    string
	MongoDB     string
}

type Repositories struct {
	Users UserStore
	close func(ctx context.Context) error
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users: NewUserRepository(database),
		close: func(context.Context) error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func NewMongoRepositories(client *mongo.Client, database *mongo.Database) *Repositories {
	return &Repositories{
		Users: NewMongoUserRepository(database),
		close: client.Disconnect,
	}
}

// Open connects the configured backend and returns its repositories.
func Open(ctx context.Context, config StoreConfig) (*Repositories, error) {
	switch strings.ToLower(strings.TrimSpace(config.Driver)) {
	case "", DriverSQLite:
		database, err := OpenSQLite(config.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewRepositories(database), nil
	case DriverPostgres:
		database, err := OpenPostgres(config.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return NewRepositories(database), nil
	case DriverMongo:
		client, database, err := OpenMongo(ctx, config.MongoURI, config.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return NewMongoRepositories(client, database), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", config.Driver)
	}
}

func (repos *Repositories) Close(ctx context.Context) error {
	if repos == nil || repos.close == nil {
		return nil
	}
	return repos.close(ctx)
}
