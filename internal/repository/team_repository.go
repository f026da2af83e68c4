package repository

import (
	"context"
	"errors"
	"voidwebsite/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository guards every roster write with the team's version so
// concurrent admin edits cannot silently overwrite each other.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id string) error
	AddPlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error)
	UpdatePlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error)
	DeletePlayer(ctx context.Context, teamID string, version int, playerID string) (int, error)
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	team.Version = 1
	for i := range team.Players {
		team.Players[i].TeamID = team.ID
	}
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	err := r.withPlayers(ctx).First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.withPlayers(ctx).Order("name asc").Find(&teams).Error
	return teams, err
}

// Update writes the team's own fields if team.Version is still current and
// advances team.Version on success.
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next := *team
		next.Players = nil
		next.Version = team.Version + 1
		next.UpdatedAt = models.Now()
		res := tx.Model(&models.Team{}).
			Where("id = ? AND version = ?", team.ID, team.Version).
			Select("name", "game", "logo", "description", "achievements", "version", "updated_at").
			Updates(&next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleOrMissing(tx, team.ID)
		}
		team.Version = next.Version
		team.UpdatedAt = next.UpdatedAt
		return nil
	})
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Team{ID: id}).Error
}

func (r *teamRepository) AddPlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error) {
	return r.mutateRoster(ctx, teamID, version, func(tx *gorm.DB) error {
		player.TeamID = teamID
		return tx.Create(player).Error
	})
}

func (r *teamRepository) UpdatePlayer(ctx context.Context, teamID string, version int, player *models.Player) (int, error) {
	return r.mutateRoster(ctx, teamID, version, func(tx *gorm.DB) error {
		player.TeamID = teamID
		res := tx.Model(&models.Player{}).
			Where("id = ? AND team_id = ?", player.ID, teamID).
			Select("*").
			Omit("id", "created_at").
			Updates(player)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *teamRepository) DeletePlayer(ctx context.Context, teamID string, version int, playerID string) (int, error) {
	return r.mutateRoster(ctx, teamID, version, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND team_id = ?", playerID, teamID).Delete(&models.Player{}).Error
	})
}

// mutateRoster bumps the team version and applies fn in one transaction.
// It returns the new version.
func (r *teamRepository) mutateRoster(ctx context.Context, teamID string, version int, fn func(tx *gorm.DB) error) (int, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Team{}).
			Where("id = ? AND version = ?", teamID, version).
			Updates(map[string]interface{}{
				"version":    gorm.Expr("version + 1"),
				"updated_at": models.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleOrMissing(tx, teamID)
		}
		return fn(tx)
	})
	if err != nil {
		return 0, err
	}
	return version + 1, nil
}

func staleOrMissing(tx *gorm.DB, teamID string) error {
	var count int64
	if err := tx.Model(&models.Team{}).Where("id = ?", teamID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStaleWrite
}

func (r *teamRepository) withPlayers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, created_at asc")
	})
}
