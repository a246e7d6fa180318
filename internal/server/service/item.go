package service

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/mdouchement/pantry/internal/apierror"
	"github.com/mdouchement/pantry/internal/database"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/pkg/errors"
)

var urlFormat = regexp.MustCompile(`^(https?://)?([\w.-]+)+(:\d+)?(/[\w.-]*)*/?$`)

type (
	// An ItemService handles the pantry items of a user.
	// The owner always comes from the validated session subject, never from
	// the request payload.
	ItemService interface {
		Create(userID string, params ItemParams) (*model.Item, error)
		List(userID string) ([]*model.Item, error)
		Find(userID, id string) (*model.Item, error)
		Update(userID, id string, params ItemParams) (*model.Item, error)
		Delete(userID, id string) error
	}

	// ItemParams are the editable fields of an item.
	ItemParams struct {
		Title       string   `json:"title"`
		Quantity    Quantity `json:"quantity"`
		URL         string   `json:"url"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		ExpiryDate  string   `json:"expiryDate"`
	}

	itemService struct {
		db database.Client
	}
)

// A Quantity accepts both JSON numbers and numeric strings.
type Quantity int

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*q = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Quantity must be an integer.")
	}

	*q = Quantity(n)
	return nil
}

// NewItem returns a new ItemService.
func NewItem(db database.Client) ItemService {
	return &itemService{
		db: db,
	}
}

func (s *itemService) Create(userID string, params ItemParams) (*model.Item, error) {
	if err := validate(&params); err != nil {
		return nil, err
	}

	item := &model.Item{
		UserID:      userID,
		Title:       params.Title,
		Quantity:    int(params.Quantity),
		URL:         params.URL,
		Description: params.Description,
		Type:        params.Type,
		ExpiryDate:  params.ExpiryDate,
	}

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}

	return item, nil
}

func (s *itemService) List(userID string) ([]*model.Item, error) {
	items, err := s.db.FindItemsByUserID(userID)
	return items, errors.Wrap(err, "could not list items")
}

func (s *itemService) Find(userID, id string) (*model.Item, error) {
	item, err := s.db.FindItemByUserID(id, userID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, itemNotFound()
		}
		return nil, errors.Wrap(err, "could not get item")
	}
	return item, nil
}

func (s *itemService) Update(userID, id string, params ItemParams) (*model.Item, error) {
	if err := validate(&params); err != nil {
		return nil, err
	}

	item, err := s.db.FindItemByUserID(id, userID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, itemNotFound()
		}
		return nil, errors.Wrap(err, "could not get item")
	}

	// Full replace of the editable fields.
	item.Title = params.Title
	item.Quantity = int(params.Quantity)
	item.URL = params.URL
	item.Description = params.Description
	item.Type = params.Type
	item.ExpiryDate = params.ExpiryDate

	if err := s.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not persist item")
	}

	return item, nil
}

func (s *itemService) Delete(userID, id string) error {
	err := s.db.DeleteItem(id, userID)
	if err != nil {
		if s.db.IsNotFound(err) {
			return itemNotFound()
		}
		return errors.Wrap(err, "could not delete item")
	}
	return nil
}

func validate(params *ItemParams) error {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)
	params.Type = strings.TrimSpace(params.Type)

	if params.Title == "" || params.Quantity == 0 || params.ExpiryDate == "" {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation",
			"Title, quantity, and expiry date are required.")
	}
	if params.Quantity < 1 {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Quantity must be at least 1.")
	}
	if _, err := dateparse.ParseAny(params.ExpiryDate); err != nil {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Please provide a valid expiry date.")
	}
	if params.Type != "" && !model.ValidItemType(params.Type) {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Unknown item type.")
	}
	if params.URL != "" && !urlFormat.MatchString(params.URL) {
		return apierror.NewWithTagCode(http.StatusBadRequest, "validation", "Please provide a valid URL.")
	}

	return nil
}

// itemNotFound masks an ownership mismatch as a missing item so the existence
// of other users' items does not leak.
func itemNotFound() *apierror.Error {
	return apierror.NewWithTagCode(http.StatusNotFound, "not-found", "Item not found.")
}
