package service

import (
	"context"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"
	"go-ferreteria-api/pkg/validator"
)

type BranchService interface {
	CreateBranch(ctx context.Context, req model.CreateBranchRequest) (*model.Branch, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(repo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: repo}
}

func (s *branchService) CreateBranch(ctx context.Context, req model.CreateBranchRequest) (*model.Branch, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" {
		return nil, pkgerrors.Validation("Nombre y dirección son requeridos")
	}
	if msg := validator.FirstError(&req); msg != "" {
		return nil, pkgerrors.Validation(msg)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	branch := &model.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Active:  active,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}
	return branch, nil
}

func (s *branchService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.branchRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}
