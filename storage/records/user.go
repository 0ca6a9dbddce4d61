// Package records implements the typed per-entity repositories on top of the
// Local Record Store: read the whole collection, mutate, write it back whole.
package records

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core/user"
	"github.com/tmahmud/shikkha/storage/kvstore"
)

type userRepository struct {
	store kvstore.Store
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(store kvstore.Store) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) readAll(ctx context.Context) ([]user.User, error) {
	data, err := repo.store.ReadCollection(ctx, kvstore.KeyUsers)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []user.User{}, nil
	}
	var users []user.User
	if err = json.Unmarshal(data, &users); err != nil {
		return nil, errors.Wrap(err, "decoding user collection")
	}
	return users, nil
}

func (repo *userRepository) writeAll(ctx context.Context, users []user.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return errors.Wrap(err, "encoding user collection")
	}
	return repo.store.WriteCollection(ctx, kvstore.KeyUsers, data)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	users, err := repo.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	users = append(users, usr)
	if err = repo.writeAll(ctx, users); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return repo.readAll(ctx)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	users, err := repo.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByStudentID(ctx context.Context, studentID string) (user.User, error) {
	users, err := repo.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, usr := range users {
		if usr.StudentID == studentID {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	users, err := repo.readAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for i := range users {
		if users[i].ID == usr.ID {
			users[i] = usr
			return usr, repo.writeAll(ctx, users)
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	users, err := repo.readAll(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	var found bool
	for _, usr := range users {
		if usr.ID == id {
			found = true
			continue
		}
		kept = append(kept, usr)
	}
	if !found {
		return user.ErrNotFound
	}
	return repo.writeAll(ctx, kept)
}
