package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mahostav/api/internal/catalog"
	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// Registration outcomes reported to the recorder
const (
	OutcomeCreated         = "created"
	OutcomeDuplicate       = "duplicate"
	OutcomeDuplicatePlayer = "duplicate_player"
	OutcomeInvalid         = "invalid"
	OutcomeWrongMode       = "wrong_mode"
	OutcomeInProgress      = "in_progress"
	OutcomeRejected        = "rejected"
	OutcomeError           = "error"
)

// AccountLookup confirms that the account behind a session still exists
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// RegistrationRepository defines the interface for solo registration storage
type RegistrationRepository interface {
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*model.Registration, error)
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	Create(ctx context.Context, reg *model.Registration) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*model.RegistrationWithEvent, error)
}

// TeamRepository defines the interface for team registration storage
type TeamRepository interface {
	MembersByEvent(ctx context.Context, eventID string) ([]*model.TeamMember, error)
	GenerateTeamID(ctx context.Context) (string, error)
	CreateWithMembers(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error)
	ListByUser(ctx context.Context, userID string) ([]*model.TeamWithMembers, error)
}

// RegistrationRecorder receives one call per registration attempt
type RegistrationRecorder interface {
	RegistrationAttempt(mode model.RegistrationMode, outcome string)
}

// RegistrationService handles solo and team registrations
type RegistrationService struct {
	users         AccountLookup
	events        EventRepository
	registrations RegistrationRepository
	teams         TeamRepository
	recorder      RegistrationRecorder
	guard         *submissionGuard
}

// RegistrationServiceConfig holds configuration for the registration service
type RegistrationServiceConfig struct {
	Users            AccountLookup
	EventRepo        EventRepository
	RegistrationRepo RegistrationRepository
	TeamRepo         TeamRepository
	Recorder         RegistrationRecorder // optional
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(cfg RegistrationServiceConfig) *RegistrationService {
	return &RegistrationService{
		users:         cfg.Users,
		events:        cfg.EventRepo,
		registrations: cfg.RegistrationRepo,
		teams:         cfg.TeamRepo,
		recorder:      cfg.Recorder,
		guard:         newSubmissionGuard(),
	}
}

// RegisterSolo registers the caller for an individual event
func (s *RegistrationService) RegisterSolo(ctx context.Context, userID, eventID string, req model.SoloRegistrationRequest) (reg *model.Registration, err error) {
	defer func() { s.record(model.ModeSolo, err) }()

	if err := s.confirmAccount(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.registrableEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsTeamEvent() {
		return nil, ErrTeamEventRequiresTeam
	}

	req.ParticipantName = strings.TrimSpace(req.ParticipantName)
	req.MahostavID = strings.TrimSpace(req.MahostavID)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	release, err := s.guard.acquire(userID, event.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.registrations.GetByUserAndEvent(ctx, userID, event.ID)
	if err != nil {
		return nil, s.storeError(ctx, "check existing registration", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	reg = &model.Registration{
		UserID:          userID,
		EventID:         event.ID,
		ParticipantName: req.ParticipantName,
		MahostavID:      req.MahostavID,
		PhoneNumber:     req.PhoneNumber,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyRegistered
		}
		return nil, s.storeError(ctx, "create registration", err)
	}

	slog.InfoContext(ctx, "registration created", "user_id", userID, "event_id", event.ID, "registration_id", reg.ID)
	return reg, nil
}

// ListMine returns the caller's solo registrations, newest first, and teams
func (s *RegistrationService) ListMine(ctx context.Context, userID string) (*model.MyRegistrations, error) {
	regs, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if regs == nil {
		regs = []*model.RegistrationWithEvent{}
	}
	if teams == nil {
		teams = []*model.TeamWithMembers{}
	}
	return &model.MyRegistrations{Registrations: regs, Teams: teams}, nil
}

// Delete removes one of the caller's solo registrations
func (s *RegistrationService) Delete(ctx context.Context, userID, registrationID string) error {
	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg == nil {
		return ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return ErrNotRegistrationOwner
	}

	if err := s.registrations.Delete(ctx, reg.ID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "registration deleted", "user_id", userID, "registration_id", reg.ID)
	return nil
}

// confirmAccount re-checks that the session user still has an account
func (s *RegistrationService) confirmAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnauthorized
	}
	return nil
}

// registrableEvent loads an event that exists in the store
func (s *RegistrationService) registrableEvent(ctx context.Context, eventID string) (*model.Event, error) {
	if strings.HasPrefix(eventID, catalog.IDPrefix) {
		return nil, ErrEventNotFound
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.Placeholder {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *RegistrationService) storeError(ctx context.Context, op string, err error) error {
	slog.ErrorContext(ctx, "registration store error", "op", op, "error", err)
	return err
}

func (s *RegistrationService) record(mode model.RegistrationMode, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RegistrationAttempt(mode, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, ErrAlreadyRegistered):
		return OutcomeDuplicate
	case errors.Is(err, ErrDuplicatePlayer):
		return OutcomeDuplicatePlayer
	case errors.Is(err, ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, ErrTeamEventRequiresTeam), errors.Is(err, ErrSoloEventRequiresSolo):
		return OutcomeWrongMode
	case errors.Is(err, ErrSubmissionInProgress):
		return OutcomeInProgress
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrUnauthorized):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
