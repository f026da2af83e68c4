package repository

import (
	"context"
	"voidwebsite/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderSetRepository interface {
	// Save upserts the set and makes its membership exactly set.OrderIDs,
	// taking those orders out of any other set.
	Save(ctx context.Context, set *models.OrderSet) error
	GetAll(ctx context.Context) ([]models.OrderSet, error)
	Delete(ctx context.Context, id string) error
}

type orderSetRepository struct {
	db *gorm.DB
}

func NewOrderSetRepository(db *gorm.DB) OrderSetRepository {
	return &orderSetRepository{db: db}
}

func (r *orderSetRepository) Save(ctx context.Context, set *models.OrderSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(set).Error
		if err != nil {
			return err
		}
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.OrderSetMember{}).Error; err != nil {
			return err
		}
		if len(set.OrderIDs) == 0 {
			return nil
		}
		if err := tx.Where("order_id IN ?", set.OrderIDs).Delete(&models.OrderSetMember{}).Error; err != nil {
			return err
		}

		members := make([]models.OrderSetMember, len(set.OrderIDs))
		for i, orderID := range set.OrderIDs {
			members[i] = models.OrderSetMember{SetID: set.ID, OrderID: orderID, Position: i}
		}
		return tx.Create(&members).Error
	})
}

func (r *orderSetRepository) GetAll(ctx context.Context) ([]models.OrderSet, error) {
	var sets []models.OrderSet
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&sets).Error; err != nil {
		return nil, err
	}

	var members []models.OrderSetMember
	if err := r.db.WithContext(ctx).Order("position asc").Find(&members).Error; err != nil {
		return nil, err
	}

	index := make(map[string]int, len(sets))
	for i := range sets {
		sets[i].OrderIDs = []string{}
		index[sets[i].ID] = i
	}
	for _, m := range members {
		if i, ok := index[m.SetID]; ok {
			sets[i].OrderIDs = append(sets[i].OrderIDs, m.OrderID)
		}
	}
	return sets, nil
}

func (r *orderSetRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", id).Delete(&models.OrderSetMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OrderSet{}, "id = ?", id).Error
	})
}
