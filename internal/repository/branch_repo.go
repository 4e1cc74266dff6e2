package repository

import (
	"context"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	FindAll(ctx context.Context) ([]model.Branch, error)
	// FindByIDs returns the branches that exist, keyed by id.
	FindByIDs(ctx context.Context, ids ...uint) (map[uint]model.Branch, error)
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepo) FindAll(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.WithContext(ctx).Order("id ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) FindByIDs(ctx context.Context, ids ...uint) (map[uint]model.Branch, error) {
	found := make(map[uint]model.Branch, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var branches []model.Branch
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&branches).Error; err != nil {
		return nil, err
	}
	for _, b := range branches {
		found[b.ID] = b
	}
	return found, nil
}
