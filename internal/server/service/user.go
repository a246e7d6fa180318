package service

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
)

// DefaultPasswordMinLength is the password policy applied when none is configured.
const DefaultPasswordMinLength = 6

var emailFormat = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type (
	// A UserService handles registration and authentication.
	UserService interface {
		Register(params RegisterParams) (*model.User, error)
		Login(params LoginParams) (*model.User, error)
	}

	// RegisterParams are used to register a user.
	RegisterParams struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	userService struct {
		db                database.Client
		passwordMinLength int
	}
)

// NewUser returns a new UserService.
func NewUser(db database.Client, passwordMinLength int) UserService {
	if passwordMinLength <= 0 {
		passwordMinLength = DefaultPasswordMinLength
	}

	return &userService{
		db:                db,
		passwordMinLength: passwordMinLength,
	}
}

func (s *userService) Register(params RegisterParams) (*model.User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	if params.Username == "" {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, "validation", "No username provided.")
	}
	if params.Email == "" {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, "validation", "No email provided.")
	}
	if !emailFormat.MatchString(params.Email) {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Please provide a valid email.")
	}
	if len(params.Password) < s.passwordMinLength {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, "validation",
			fmt.Sprintf("Password must be at least %d characters.", s.passwordMinLength))
	}

	// Check if the email is free to use.
	u, err := s.db.FindUserByMail(params.Email)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, apierror.NewWithTagCode(http.StatusConflict, "duplicate-email", "This email is already registered.")
	}

	// Same for the username.
	u, err = s.db.FindUserByUsername(params.Username)
	if err != nil && !s.db.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return nil, apierror.NewWithTagCode(http.StatusConflict, "duplicate-username", "This username is already taken.")
	}

	user := &model.User{
		Username: params.Username,
		Email:    params.Email,
	}

	// Crypt password
	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}

	if err := s.db.Save(user); err != nil {
		return nil, errors.Wrap(err, "could not persist user")
	}

	return user, nil
}

func (s *userService) Login(params LoginParams) (*model.User, error) {
	if params.Email == "" || params.Password == "" {
		return nil, apierror.NewWithTagCode(http.StatusBadRequest, "validation", "No email or password provided.")
	}

	user, err := s.db.FindUserByMail(strings.ToLower(strings.TrimSpace(params.Email)))
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, errors.Wrap(err, "could not get user")
	}

	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return nil, invalidCredentials()
		}
		return nil, errors.Wrap(err, "could not validate password")
	}

	return user, nil
}

// invalidCredentials is returned for both an unknown email and a mismatched
// password so accounts can't be enumerated.
func invalidCredentials() *apierror.Error {
	return apierror.NewWithTagCode(http.StatusUnauthorized, "invalid-credentials", "Invalid email or password.")
}
