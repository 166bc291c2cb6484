package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/kcal/internal/models"
)

type userRepositoryStub struct {
	users     map[string]models.User
	findErr   error
	createErr error
	saveErr   error
	saves     int
	creates   int
}

func newUserRepositoryStub(users ...models.User) *userRepositoryStub {
	stub := &userRepositoryStub{users: make(map[string]models.User)}
	for _, user := range users {
		stub.users[user.ID] = user
	}
	return stub
}

func (stub *userRepositoryStub) FindByID(_ context.Context, userID string) (models.User, bool, error) {
	if stub.findErr != nil {
		return models.User{}, false, stub.findErr
	}
	user, ok := stub.users[userID]
	return user, ok, nil
}

func (stub *userRepositoryStub) FindByExternalID(_ context.Context, externalID string) (models.User, bool, error) {
	if stub.findErr != nil {
		return models.User{}, false, stub.findErr
	}
	for _, user := range stub.users {
		if user.ExternalID == externalID {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *userRepositoryStub) Create(_ context.Context, user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	if _, exists := stub.users[user.ID]; exists {
		return errors.New("duplicate id")
	}
	stub.creates++
	stub.users[user.ID] = *user
	return nil
}

func (stub *userRepositoryStub) Save(_ context.Context, user *models.User) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.saves++
	stub.users[user.ID] = *user
	return nil
}
