package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// UserRepository handles account data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount writes the user, its profile and its role in one transaction.
// The user ID is assigned here so the profile and role rows can reference it.
func (r *UserRepository) CreateAccount(ctx context.Context, user *model.User, profile *model.Profile, role model.ParticipantRole) error {
	key := newRecordKey()

	batch := database.NewAtomicBatch()
	batch.Add(`
		CREATE type::thing("user", $key) CONTENT {
			email: $email,
			hash: IF $hash IS NOT NULL THEN $hash ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, map[string]interface{}{
		"key":   key,
		"email": user.Email,
		"hash":  ptrToNone(user.Hash),
	})
	batch.Add(`
		CREATE profile CONTENT {
			user_id: type::thing("user", $key),
			name: $name,
			email: $email,
			phone: IF $phone IS NOT NULL THEN $phone ELSE NONE END,
			college_name: IF $college_name IS NOT NULL THEN $college_name ELSE NONE END,
			university_roll_no: IF $roll_no IS NOT NULL THEN $roll_no ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`, map[string]interface{}{
		"key":          key,
		"name":         profile.Name,
		"email":        profile.Email,
		"phone":        ptrToNone(profile.Phone),
		"college_name": ptrToNone(profile.CollegeName),
		"roll_no":      ptrToNone(profile.UniversityRollNo),
	})
	batch.Add(`CREATE user_role CONTENT { user_id: type::thing("user", $key), role: $role }`,
		map[string]interface{}{"key": key, "role": string(role)})

	if err := batch.Execute(ctx, r.db); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	user.ID = "user:" + key
	profile.UserID = user.ID
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !isRecordOf("user", id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT * FROM user WHERE email = $email LIMIT 1`, map[string]interface{}{"email": email})
}

// TouchLogin records a successful login
func (r *UserRepository) TouchLogin(ctx context.Context, id string) error {
	query := `UPDATE type::record($id) SET login_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	row, err := asRow(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUser(row), nil
}

func parseUser(row map[string]interface{}) *model.User {
	return &model.User{
		ID:        getID(row, "id"),
		Email:     getString(row, "email"),
		Hash:      getStringPtr(row, "hash"),
		CreatedOn: getTimeValue(row, "created_on"),
		UpdatedOn: getTimeValue(row, "updated_on"),
		LoginOn:   getTime(row, "login_on"),
	}
}
