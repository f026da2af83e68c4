package services

import (
	"context"
	"fmt"
	"strings"
	"voidwebsite/internal/format"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"github.com/google/uuid"
)

type TeamService interface {
	ListTeams(ctx context.Context, query string) ([]models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	UpdateTeam(ctx context.Context, team *models.Team) error
	DeleteTeam(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) BulkDeleteResult
	AddPlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error)
	UpdatePlayer(ctx context.Context, teamID string, version int, playerID string, patch models.PlayerPatch) (int, error)
	DeletePlayer(ctx context.Context, teamID string, version int, playerID string) (int, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
}

func NewTeamService(teamRepo repository.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) ListTeams(ctx context.Context, query string) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Team, 0, len(teams))
	for i := range teams {
		if format.Match(query, teams[i].SearchFields()...) {
			out = append(out, teams[i])
		}
	}
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *teamService) CreateTeam(ctx context.Context, team *models.Team) error {
	if err := required("name", team.Name); err != nil {
		return validationError(err)
	}
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	for i := range team.Players {
		if err := validatePlayer(&team.Players[i]); err != nil {
			return err
		}
		team.Players[i].Position = i
	}
	return s.teamRepo.Create(ctx, team)
}

// UpdateTeam writes the team's own fields. team.Version must be the version
// the caller read; on success it holds the new version.
func (s *teamService) UpdateTeam(ctx context.Context, team *models.Team) error {
	if err := required("name", team.Name); err != nil {
		return validationError(err)
	}
	return s.teamRepo.Update(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	return s.teamRepo.Delete(ctx, id)
}

func (s *teamService) BulkDelete(ctx context.Context, ids []string) BulkDeleteResult {
	return BulkDelete(ctx, ids, s.teamRepo.Delete)
}

func (s *teamService) AddPlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error) {
	if err := validatePlayer(player); err != nil {
		return 0, err
	}
	return s.teamRepo.AddPlayer(ctx, teamID, version, player)
}

// UpdatePlayer changes only the fields set in patch. A stale version is
// still rejected by the repository.
func (s *teamService) UpdatePlayer(ctx context.Context, teamID string, version int, playerID string, patch models.PlayerPatch) (int, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return 0, err
	}
	player, ok := team.Player(playerID)
	if !ok {
		return 0, repository.ErrNotFound
	}
	patch.Apply(&player)
	if err := validatePlayer(&player); err != nil {
		return 0, err
	}
	return s.teamRepo.UpdatePlayer(ctx, teamID, version, &player)
}

func (s *teamService) DeletePlayer(ctx context.Context, teamID string, version int, playerID string) (int, error) {
	return s.teamRepo.DeletePlayer(ctx, teamID, version, playerID)
}

func validatePlayer(p *models.Player) error {
	if strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Gamertag) == "" {
		return validationError(required("name", ""))
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
