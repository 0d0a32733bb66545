package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/repository"
)

type AccountService interface {
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	Remove(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	sa repository.SocialAccountRepository
}

func NewAccountService(sa repository.SocialAccountRepository) AccountService {
	return &accountService{sa: sa}
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	accounts, err := s.sa.ListInfoByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting connected accounts")
	}
	return accounts, nil
}

func (s *accountService) Remove(ctx context.Context, userID, accountID int64) error {
	isValid, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("Account doesn't exist")
		slog.Info(err.Error())
		return err
	}

	err = s.sa.Remove(ctx, accountID)
	if err != nil {
		return fmt.Errorf("Error removing account")
	}

	return nil
}
