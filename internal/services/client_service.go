package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrNationalIDExists = errors.New("national identifier already registered")
	ErrEmailExists      = errors.New("email already registered")
	ErrClientValidation = errors.New("client data validation error")
	ErrDateFormat       = errors.New("invalid date format, expected YYYY-MM-DD")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	NationalID  string  `json:"national_id" binding:"required"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	BirthDate   *string `json:"birth_date"` // YYYY-MM-DD
}

type UpdateClientRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	NationalID  *string `json:"national_id"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	BirthDate   *string `json:"birth_date"`
	Status      *string `json:"status"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(req CreateClientRequest) (*models.Client, error)
	GetClientByID(clientID int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(clientID int64) error
	// EnsureCheckInToken returns the client's check-in token, generating and
	// persisting one if the client does not have one yet. The token is
	// immutable once issued.
	EnsureCheckInToken(clientID int64) (string, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	db         *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(cr repositories.ClientRepository, db *sql.DB) ClientService {
	return &clientService{clientRepo: cr, db: db}
}

func validateBirthDate(birthDate *string) error {
	if birthDate == nil || *birthDate == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *birthDate); err != nil {
		return fmt.Errorf("%w: %q", ErrDateFormat, *birthDate)
	}
	return nil
}

// translateClientDuplicate inspects a duplicate-key error from the clients
// table and maps it to the field-level conflict.
func translateClientDuplicate(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "email") {
		return fmt.Errorf("%w: %v", ErrEmailExists, err)
	}
	return fmt.Errorf("%w: %v", ErrNationalIDExists, err)
}

func (s *clientService) CreateClient(req CreateClientRequest) (*models.Client, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrClientValidation)
	}
	if strings.TrimSpace(req.NationalID) == "" {
		return nil, fmt.Errorf("%w: national identifier is required", ErrClientValidation)
	}
	if err := validateBirthDate(req.BirthDate); err != nil {
		return nil, err
	}

	client := &models.Client{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		NationalID:  strings.TrimSpace(req.NationalID),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		BirthDate:   req.BirthDate,
		Status:      "active",
	}

	if _, err := s.clientRepo.CreateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, translateClientDuplicate(err)
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByID(clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	clients, totalCount, err := s.clientRepo.GetClients(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, totalCount, nil
}

func (s *clientService) UpdateClient(clientID int64, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrClientValidation)
		}
		client.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, fmt.Errorf("%w: last name cannot be empty", ErrClientValidation)
		}
		client.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.NationalID != nil {
		if strings.TrimSpace(*req.NationalID) == "" {
			return nil, fmt.Errorf("%w: national identifier cannot be empty", ErrClientValidation)
		}
		client.NationalID = strings.TrimSpace(*req.NationalID)
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.PhoneNumber != nil {
		client.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.BirthDate != nil {
		if err := validateBirthDate(req.BirthDate); err != nil {
			return nil, err
		}
		client.BirthDate = req.BirthDate
	}
	if req.Status != nil {
		client.Status = *req.Status
	}

	if err := s.clientRepo.UpdateClient(s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, translateClientDuplicate(err)
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(clientID int64) error {
	if err := s.clientRepo.DeleteClient(s.db, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *clientService) EnsureCheckInToken(clientID int64) (string, error) {
	client, err := s.clientRepo.GetClientByID(clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrClientNotFound
		}
		return "", fmt.Errorf("failed to find client for token issue: %w", err)
	}
	if client.CheckInToken != nil && *client.CheckInToken != "" {
		return *client.CheckInToken, nil
	}

	token := uuid.NewString()
	if err := s.clientRepo.SetCheckInToken(s.db, clientID, token); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Another request issued the token first; re-read and return it.
			client, rereadErr := s.clientRepo.GetClientByID(clientID)
			if rereadErr == nil && client.CheckInToken != nil {
				return *client.CheckInToken, nil
			}
			return "", ErrClientNotFound
		}
		return "", fmt.Errorf("failed to set check-in token: %w", err)
	}
	return token, nil
}
