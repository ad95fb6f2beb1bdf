package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

// RegisterTeam registers a team for a team event.
//
// Players are checked against every roster already registered for the event
// by case-folded name; any overlap rejects the team before anything is
// written. The team row and its members are then written in one transaction.
func (s *RegistrationService) RegisterTeam(ctx context.Context, userID, eventID string, req model.TeamRegistrationRequest) (team *model.TeamWithMembers, err error) {
	defer func() { s.record(model.ModeTeam, err) }()

	if err := s.confirmAccount(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.registrableEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsTeamEvent() {
		return nil, ErrSoloEventRequiresSolo
	}

	normalizeTeamRequest(&req)
	if errs := req.Validate(event.MinPlayers()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	release, err := s.guard.acquire(userID, event.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.teams.MembersByEvent(ctx, event.ID)
	if err != nil {
		return nil, s.storeError(ctx, "load rosters", err)
	}
	if taken := model.Collisions(model.NameSet(existing), req.Players); len(taken) > 0 {
		return nil, &DuplicatePlayerError{Players: taken}
	}

	teamID, err := s.teams.GenerateTeamID(ctx)
	if err != nil {
		return nil, s.storeError(ctx, "generate team id", err)
	}

	created, err := s.teams.CreateWithMembers(ctx, newTeam(userID, event.ID, teamID, req))
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// Another roster claimed a player between the check and the commit
			return nil, &DuplicatePlayerError{}
		}
		return nil, s.storeError(ctx, "create team", err)
	}

	slog.InfoContext(ctx, "team registered",
		"user_id", userID,
		"event_id", event.ID,
		"team_id", teamID,
		"players", len(req.Players),
	)
	return created, nil
}

func normalizeTeamRequest(req *model.TeamRegistrationRequest) {
	req.TeamTitle = strings.TrimSpace(req.TeamTitle)
	req.CollegeName = strings.TrimSpace(req.CollegeName)
	req.LeaderMahostavID = strings.TrimSpace(req.LeaderMahostavID)
	req.LeaderName = strings.TrimSpace(req.LeaderName)
	req.LeaderPhone = strings.TrimSpace(req.LeaderPhone)
	req.LeaderEmail = strings.TrimSpace(req.LeaderEmail)
	for i := range req.Players {
		req.Players[i].Name = strings.TrimSpace(req.Players[i].Name)
		req.Players[i].CollegeID = strings.TrimSpace(req.Players[i].CollegeID)
		req.Players[i].Contact = strings.TrimSpace(req.Players[i].Contact)
	}
}

func newTeam(userID, eventID, teamID string, req model.TeamRegistrationRequest) *model.NewTeam {
	nt := &model.NewTeam{
		Team: &model.TeamRegistration{
			TeamID:           teamID,
			EventID:          eventID,
			TeamTitle:        req.TeamTitle,
			CollegeName:      req.CollegeName,
			LeaderMahostavID: req.LeaderMahostavID,
			LeaderName:       req.LeaderName,
			LeaderPhone:      req.LeaderPhone,
			LeaderEmail:      req.LeaderEmail,
			UserID:           userID,
		},
		Members: make([]*model.TeamMember, 0, len(req.Players)),
	}
	for _, p := range req.Players {
		nt.Members = append(nt.Members, &model.TeamMember{
			EventID:    eventID,
			PlayerName: p.Name,
			CollegeID:  stringPtr(p.CollegeID),
			Contact:    stringPtr(p.Contact),
		})
	}
	return nt
}
