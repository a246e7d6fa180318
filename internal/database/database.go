package database

import (
	"github.com/mdouchement/pantry/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		UserInteraction
		ItemInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
		// FindUserByUsername returns the user for the given username.
		FindUserByUsername(username string) (*model.User, error)
	}

	// An ItemInteraction defines all the methods used to interact with item record(s).
	// Every lookup is keyed by the owning user id so an item of another user is
	// indistinguishable from a missing one.
	ItemInteraction interface {
		// FindItemByUserID returns the item for the given id and user id (UUID).
		FindItemByUserID(id, userID string) (*model.Item, error)
		// FindItemsByUserID returns all the items owned by the given user id,
		// most recently updated first.
		FindItemsByUserID(userID string) ([]*model.Item, error)
		// DeleteItem deletes the item matching the given id and user id.
		DeleteItem(id, userID string) error
	}
)
