package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/creatorflow/creatorflow-api/internal/models"
	"github.com/creatorflow/creatorflow-api/internal/repository"
	"github.com/creatorflow/creatorflow-api/pkg/utils"
)

const maxAPIKeysPerUser = 5

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{k: k}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64) error {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if len(keys) >= maxAPIKeysPerUser {
		err = errors.New("Only 5 API keys can be created.")
		slog.Info(err.Error())
		return err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return errors.New("Error generating API key")
	}

	if _, err := s.k.Create(ctx, &models.ApiKey{UserID: userID, ApiKey: key}); err != nil {
		return errors.New("Error saving API key")
	}
	return nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	userID, exists, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, errors.New("Key doesn't exist")
	}

	return *userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.New("Error getting API keys")
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	if userID == 0 || keyID == 0 {
		err := errors.New("Key doesn't exist")
		slog.Info(err.Error())
		return err
	}

	valid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return err
	}
	if !valid {
		err = errors.New("Key doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.k.Remove(ctx, keyID)
}
