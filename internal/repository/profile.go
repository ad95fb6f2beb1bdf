package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// ProfileRepository handles participant profile data access
type ProfileRepository struct {
	db database.Database
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if !isRecordOf("user", userID) {
		return nil, nil
	}

	query := `SELECT * FROM profile WHERE user_id = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
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
	return parseProfile(row), nil
}

// GetRole retrieves the user's participant role; empty if none is stored
func (r *ProfileRepository) GetRole(ctx context.Context, userID string) (model.ParticipantRole, error) {
	query := `SELECT VALUE role FROM user_role WHERE user_id = type::record($user_id) LIMIT 1`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	role, _ := result.(string)
	return model.ParticipantRole(role), nil
}

// GenerateParticipantID invokes fn::generate_mahostav_id for the user and
// returns the issued identifier
func (r *ProfileRepository) GenerateParticipantID(ctx context.Context, userID string) (string, error) {
	query := `RETURN fn::generate_mahostav_id(type::record($user_id))`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil {
		return "", err
	}
	id, ok := result.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: generate_mahostav_id returned %T", errUnexpectedFormat, result)
	}
	return id, nil
}

func parseProfile(row map[string]interface{}) *model.Profile {
	return &model.Profile{
		ID:               getID(row, "id"),
		UserID:           getID(row, "user_id"),
		Name:             getString(row, "name"),
		Email:            getString(row, "email"),
		Phone:            getStringPtr(row, "phone"),
		CollegeName:      getStringPtr(row, "college_name"),
		UniversityRollNo: getStringPtr(row, "university_roll_no"),
		MahostavID:       getStringPtr(row, "mahostav_id"),
		CreatedOn:        getTimeValue(row, "created_on"),
		UpdatedOn:        getTimeValue(row, "updated_on"),
	}
}
