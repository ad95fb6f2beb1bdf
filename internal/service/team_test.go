package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahostav/api/internal/database"
	"github.com/mahostav/api/internal/model"
)

func relayEvent() *model.Event {
	return &model.Event{ID: "event:relay", Name: "Relay", Type: model.EventTypeSports, TeamSize: strPtr("Team of 4")}
}

func validTeam(players ...string) model.TeamRegistrationRequest {
	req := model.TeamRegistrationRequest{
		TeamTitle:        "Thunderbolts",
		CollegeName:      "City College",
		LeaderMahostavID: "MAH10001",
		LeaderName:       "Asha Rao",
		LeaderPhone:      "9876543210",
		LeaderEmail:      "asha@example.com",
	}
	for _, p := range players {
		req.Players = append(req.Players, model.TeamPlayer{Name: p})
	}
	return req
}

func TestRegisterTeam_TeamOfFour(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())

	req := validTeam("Asha", "Ravi", "Meera", "Kabir")
	req.Players[1].CollegeID = "CC-17"
	team, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", req)

	require.NoError(t, err)
	assert.Equal(t, 1, f.teams.generateCalls)
	require.Equal(t, 1, f.teams.writes())

	written := f.teams.created[0]
	assert.Equal(t, "TEAM1001", written.Team.TeamID)
	assert.Equal(t, "user:1", written.Team.UserID)
	assert.Equal(t, "event:relay", written.Team.EventID)
	require.Len(t, written.Members, 4)
	assert.Equal(t, "Ravi", written.Members[1].PlayerName)
	require.NotNil(t, written.Members[1].CollegeID)
	assert.Equal(t, "CC-17", *written.Members[1].CollegeID)
	assert.Nil(t, written.Members[0].Contact)

	assert.Equal(t, "TEAM1001", team.TeamID)
	assert.Len(t, team.Members, 4)
	assert.Equal(t, recordedAttempt{model.ModeTeam, OutcomeCreated}, f.recorder.last())
}

func TestRegisterTeam_BelowMinimum_NoWrites(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())

	_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("Asha", "Ravi", "Meera"))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "players", verr.Fields[0].Field)
	assert.Equal(t, "minimum 4 players required", verr.Fields[0].Message)
	assert.Equal(t, 0, f.teams.generateCalls)
	assert.Equal(t, 0, f.teams.writes())
}

func TestRegisterTeam_LeaderFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edit  func(r *model.TeamRegistrationRequest)
		field string
	}{
		{"short leader phone", func(r *model.TeamRegistrationRequest) { r.LeaderPhone = "98765" }, "leader_phone"},
		{"letters in phone", func(r *model.TeamRegistrationRequest) { r.LeaderPhone = "98765abcde" }, "leader_phone"},
		{"bad email", func(r *model.TeamRegistrationRequest) { r.LeaderEmail = "not-an-email" }, "leader_email"},
		{"blank title", func(r *model.TeamRegistrationRequest) { r.TeamTitle = "   " }, "team_title"},
		{"blank player", func(r *model.TeamRegistrationRequest) { r.Players[2].Name = " " }, "players[2].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newRegistrationFixture(t, relayEvent())

			req := validTeam("Asha", "Ravi", "Meera", "Kabir")
			tt.edit(&req)
			_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Equal(t, 0, f.teams.writes())
		})
	}
}

func TestRegisterTeam_DuplicatePlayerCaseInsensitive(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())
	f.teams.membersByEventFunc = func(ctx context.Context, eventID string) ([]*model.TeamMember, error) {
		assert.Equal(t, "event:relay", eventID)
		return []*model.TeamMember{{PlayerName: "Alice"}, {PlayerName: "Zoya"}}, nil
	}

	_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("alice", "Ravi", "Meera", "Kabir"))

	require.ErrorIs(t, err, ErrDuplicatePlayer)
	var dup *DuplicatePlayerError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, []string{"alice"}, dup.Players)
	assert.Contains(t, err.Error(), "alice")

	assert.Equal(t, 0, f.teams.generateCalls)
	assert.Equal(t, 0, f.teams.writes())
	assert.Equal(t, OutcomeDuplicatePlayer, f.recorder.last().outcome)
}

func TestRegisterTeam_RepeatedNameOnRoster_NoWrites(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())

	_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("Bob", "Ravi", "bob ", "Kabir"))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, []model.FieldError{{Field: "players[2].name", Message: "duplicates players[0]"}}, verr.Fields)
	assert.NotErrorIs(t, err, ErrDuplicatePlayer)
	assert.Equal(t, 0, f.teams.generateCalls)
	assert.Equal(t, 0, f.teams.writes())
}

func TestRegisterTeam_RaceOnCommitIsDuplicatePlayer(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())
	f.teams.createWithMembersFunc = func(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error) {
		return nil, database.ErrDuplicate
	}

	_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("Asha", "Ravi", "Meera", "Kabir"))
	require.ErrorIs(t, err, ErrDuplicatePlayer)

	var dup *DuplicatePlayerError
	require.True(t, errors.As(err, &dup))
	assert.Empty(t, dup.Players)
	assert.Equal(t, "another team claimed a player for this event", err.Error())
}

func TestRegisterTeam_StoreFailures(t *testing.T) {
	t.Parallel()

	t.Run("loading rosters", func(t *testing.T) {
		t.Parallel()
		f := newRegistrationFixture(t, relayEvent())
		f.teams.membersByEventFunc = func(ctx context.Context, eventID string) ([]*model.TeamMember, error) {
			return nil, database.ErrConnection
		}

		_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("A", "B", "C", "D"))
		assert.ErrorIs(t, err, database.ErrConnection)
		assert.Equal(t, 0, f.teams.writes())
	})

	t.Run("generating team id", func(t *testing.T) {
		t.Parallel()
		f := newRegistrationFixture(t, relayEvent())
		f.teams.generateTeamIDFunc = func(ctx context.Context) (string, error) {
			return "", database.ErrQuery
		}

		_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("A", "B", "C", "D"))
		assert.ErrorIs(t, err, database.ErrQuery)
		assert.Equal(t, 0, f.teams.writes())
	})

	t.Run("transaction", func(t *testing.T) {
		t.Parallel()
		f := newRegistrationFixture(t, relayEvent())
		f.teams.createWithMembersFunc = func(ctx context.Context, nt *model.NewTeam) (*model.TeamWithMembers, error) {
			return nil, database.ErrQuery
		}

		_, err := f.svc.RegisterTeam(context.Background(), "user:1", "event:relay", validTeam("A", "B", "C", "D"))
		assert.ErrorIs(t, err, database.ErrQuery)
		assert.Equal(t, OutcomeError, f.recorder.last().outcome)
	})
}

func TestRegistrationModeRouting_Individual(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, soloEvent())
	ctx := context.Background()

	_, err := f.svc.RegisterTeam(ctx, "user:1", "event:chess", validTeam("Asha"))
	assert.ErrorIs(t, err, ErrSoloEventRequiresSolo)
	assert.Equal(t, 0, f.teams.writes())

	_, err = f.svc.RegisterSolo(ctx, "user:1", "event:chess", validSolo())
	assert.NoError(t, err)
}

func TestRegisterTeam_UnknownAccount(t *testing.T) {
	t.Parallel()
	f := newRegistrationFixture(t, relayEvent())

	_, err := f.svc.RegisterTeam(context.Background(), "user:ghost", "event:relay", validTeam("A", "B", "C", "D"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}
