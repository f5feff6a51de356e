package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_backend/internal/models"

	"github.com/lib/pq"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(id int64) (*models.Client, error)
	GetClientByCheckInToken(token string) (*models.Client, error)
	// GetClientForUpdate reads the client row with a row lock, serializing
	// per-client membership writes inside a transaction.
	GetClientForUpdate(executor SQLExecutor, id int64) (*models.Client, error)
	GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error)
	UpdateClient(executor SQLExecutor, client *models.Client) error
	SetCheckInToken(executor SQLExecutor, id int64, token string) error
	DeleteClient(executor SQLExecutor, id int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, first_name, last_name, national_id, email, phone_number, address, birth_date, check_in_token, status, created_at, updated_at`

func scanClient(row scanner, extraDest ...interface{}) (*models.Client, error) {
	client := &models.Client{}
	var birthDate sql.NullTime
	dest := []interface{}{
		&client.ID, &client.FirstName, &client.LastName, &client.NationalID,
		&client.Email, &client.PhoneNumber, &client.Address, &birthDate,
		&client.CheckInToken, &client.Status, &client.CreatedAt, &client.UpdatedAt,
	}
	dest = append(dest, extraDest...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
	}
	if birthDate.Valid {
		bd := birthDate.Time.Format("2006-01-02")
		client.BirthDate = &bd
	}
	return client, nil
}

// CreateClient inserts a new client. A duplicate national identifier or
// email surfaces as ErrDuplicateKey.
func (r *clientRepository) CreateClient(executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clients (first_name, last_name, national_id, email, phone_number, address, birth_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	client.CreatedAt = currentTime
	client.UpdatedAt = currentTime
	if client.Status == "" {
		client.Status = "active"
	}

	var birthDate sql.NullTime
	if client.BirthDate != nil && *client.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", *client.BirthDate)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid birth_date %q: %v", ErrDatabaseError, *client.BirthDate, err)
		}
		birthDate = sql.NullTime{Time: parsed, Valid: true}
	}

	err := executor.QueryRow(query,
		client.FirstName, client.LastName, client.NationalID, client.Email,
		client.PhoneNumber, client.Address, birthDate, client.Status,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting client by ID %d: %w", id, err)
	}
	return client, nil
}

// GetClientByCheckInToken resolves a client from the QR token.
func (r *clientRepository) GetClientByCheckInToken(token string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE check_in_token = $1`
	client, err := scanClient(r.db.QueryRow(query, token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting client by check-in token: %w", err)
	}
	return client, nil
}

// GetClientForUpdate locks the client row for the rest of the transaction.
func (r *clientRepository) GetClientForUpdate(executor SQLExecutor, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 FOR UPDATE`
	client, err := scanClient(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("locking client ID %d: %w", id, err)
	}
	return client, nil
}

// GetClients retrieves a list of clients with pagination and optional search
// over name, national identifier, and email.
func (r *clientRepository) GetClients(page, pageSize int, searchTerm *string) ([]models.Client, int, error) {
	clients := []models.Client{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + `, COUNT(*) OVER() as total_count FROM clients`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) ILIKE $%d OR LOWER(last_name) ILIKE $%d OR LOWER(national_id) ILIKE $%d OR LOWER(COALESCE(email, '')) ILIKE $%d)", argCount, argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY last_name ASC, first_name ASC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		client, scanErr := scanClient(rows, &totalCount)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	if len(clients) == 0 {
		totalCount = 0
	}
	return clients, totalCount, nil
}

// UpdateClient updates an existing client. The check-in token is not
// touched here; it is immutable once issued.
func (r *clientRepository) UpdateClient(executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clients SET
	            first_name = $1, last_name = $2, national_id = $3, email = $4,
	            phone_number = $5, address = $6, birth_date = $7, status = $8, updated_at = $9
	          WHERE id = $10`

	client.UpdatedAt = time.Now()
	var birthDate sql.NullTime
	if client.BirthDate != nil && *client.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", *client.BirthDate)
		if err != nil {
			return fmt.Errorf("%w: invalid birth_date %q: %v", ErrDatabaseError, *client.BirthDate, err)
		}
		birthDate = sql.NullTime{Time: parsed, Valid: true}
	}

	result, err := executor.Exec(query,
		client.FirstName, client.LastName, client.NationalID, client.Email,
		client.PhoneNumber, client.Address, birthDate, client.Status,
		client.UpdatedAt, client.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCheckInToken writes the token only if the client has none yet,
// preserving immutability of an already-issued token.
func (r *clientRepository) SetCheckInToken(executor SQLExecutor, id int64, token string) error {
	query := `UPDATE clients SET check_in_token = $1, updated_at = $2
	          WHERE id = $3 AND check_in_token IS NULL`
	result, err := executor.Exec(query, token, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: check-in token collision", ErrDuplicateKey)
		}
		return fmt.Errorf("%w: setting check-in token for client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client; dependent periods, payments, and
// attendance records go with it via ON DELETE CASCADE.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id int64) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
