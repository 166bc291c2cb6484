package db

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/kcal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID          string                            `bson:"_id"`
	FullName    string                            `bson:"fullName"`
	ExternalID  string                            `bson:"externalId"`
	CurrentDate time.Time                         `bson:"currentDate"`
	Targets     [models.DaysPerWeek]models.Target `bson:"targets"`
	Track       models.Track                      `bson:"track"`
	CreatedAt   time.Time                         `bson:"createdAt"`
	UpdatedAt   time.Time                         `bson:"updatedAt"`
}

type MongoUserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoUserRepository(database *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		col: database.Collection(usersCollection),
		now: time.Now,
	}
}

func (repo *MongoUserRepository) FindByID(ctx context.Context, userID string) (models.User, bool, error) {
	return repo.findOne(ctx, bson.M{"_id": userID})
}

func (repo *MongoUserRepository) FindByExternalID(ctx context.Context, externalID string) (models.User, bool, error) {
	return repo.findOne(ctx, bson.M{"externalId": externalID})
}

func (repo *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := repo.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repo.col.InsertOne(ctx, toUserDocument(*user))
	return err
}

func (repo *MongoUserRepository) Save(ctx context.Context, user *models.User) error {
	user.UpdatedAt = repo.now()

	result, err := repo.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, toUserDocument(*user))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (repo *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (models.User, bool, error) {
	var document userDocument
	err := repo.col.FindOne(ctx, filter).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return fromUserDocument(document), true, nil
}

func toUserDocument(user models.User) userDocument {
	track := user.Track
	if track.Entries == nil {
		track.Entries = []models.FoodEntry{}
	}
	return userDocument{
		ID:          user.ID,
		FullName:    user.FullName,
		ExternalID:  user.ExternalID,
		CurrentDate: user.CurrentDate.UTC(),
		Targets:     user.Targets,
		Track:       track,
		CreatedAt:   user.CreatedAt.UTC(),
		UpdatedAt:   user.UpdatedAt.UTC(),
	}
}

func fromUserDocument(document userDocument) models.User {
	track := document.Track
	if track.Entries == nil {
		track.Entries = []models.FoodEntry{}
	}
	return models.User{
		ID:          document.ID,
		FullName:    document.FullName,
		ExternalID:  document.ExternalID,
		CurrentDate: document.CurrentDate,
		Targets:     document.Targets,
		Track:       track,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
}
