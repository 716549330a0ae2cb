package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finmanager/internal/errors"
	"finmanager/internal/models"
)

// counterpartyService handles counterparty-related business logic.
type counterpartyService struct {
	db *gorm.DB
}

// NewCounterpartyService creates a new CounterpartyServicer.
func NewCounterpartyService(db *gorm.DB) CounterpartyServicer {
	return &counterpartyService{db: db}
}

func (s *counterpartyService) ListCounterparties() ([]models.Counterparty, error) {
	counterparties := make([]models.Counterparty, 0)
	if err := s.db.Order("name").Order("id").Find(&counterparties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return counterparties, nil
}

func (s *counterpartyService) GetCounterpartyByID(counterpartyID uint) (*models.Counterparty, error) {
	var counterparty models.Counterparty
	if err := s.db.First(&counterparty, counterpartyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCounterpartyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &counterparty, nil
}

func (s *counterpartyService) CreateCounterparty(name, reference, description string) (*models.Counterparty, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "counterparty name is required")
	}

	counterparty := &models.Counterparty{
		Name:        name,
		Reference:   reference,
		Description: description,
	}
	if err := s.db.Create(counterparty).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return counterparty, nil
}

func (s *counterpartyService) UpdateCounterparty(counterpartyID uint, name, reference, description string) (*models.Counterparty, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "counterparty name is required")
	}

	counterparty, err := s.GetCounterpartyByID(counterpartyID)
	if err != nil {
		return nil, err
	}

	counterparty.Name = name
	counterparty.Reference = reference
	counterparty.Description = description
	if err := s.db.Model(counterparty).Select("name", "reference", "description").Updates(counterparty).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return counterparty, nil
}

func (s *counterpartyService) DeleteCounterparty(counterpartyID uint) error {
	result := s.db.Delete(&models.Counterparty{}, counterpartyID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCounterpartyNotFound
	}
	return nil
}
