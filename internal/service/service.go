package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sellerops/internal/domain"
	"sellerops/internal/log"
	"sellerops/internal/repository"
)

type Service struct {
	repo       *repository.Repository
	logger     *log.Logger
	dataDir    string
	sessionTTL time.Duration
}

func New(repo *repository.Repository, logger *log.Logger, dataDir string, sessionTTL time.Duration) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		dataDir:    dataDir,
		sessionTTL: sessionTTL,
	}
}

func (s *Service) EnsureDefaultUser(ctx context.Context) error {
	return s.repo.SetDefaultUser(ctx)
}

func (s *Service) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return s.repo.AuthenticateUser(ctx, username, password)
}

func (s *Service) CreateSession(ctx context.Context, userID int64) (*domain.Session, error) {
	return s.repo.CreateSession(ctx, userID, s.sessionTTL)
}

func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	return s.repo.GetSessionUser(ctx, token)
}

func (s *Service) DeleteSession(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) CreateUser(ctx context.Context, username, password string, chineseName *string) (*domain.User, error) {
	return s.repo.CreateUser(ctx, strings.TrimSpace(username), password, normalizeNullable(chineseName))
}

func (s *Service) UpdateUserPassword(ctx context.Context, id int64, password string) error {
	return s.repo.UpdateUserPassword(ctx, id, password)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) CreateShop(ctx context.Context, input repository.ShopCreateInput) (*domain.Shop, error) {
	input.ShopName = strings.TrimSpace(input.ShopName)
	if input.ShopName == "" {
		return nil, fmt.Errorf("shop_name is required")
	}
	if !validShopURL(input.ShopURL) {
		return nil, fmt.Errorf("shop_url must start with http:// or https://")
	}
	input.BrandName = normalizeNullable(input.BrandName)
	input.Operator = normalizeNullable(input.Operator)
	input.CreatedBy = normalizeNullable(input.CreatedBy)
	return s.repo.CreateShop(ctx, input)
}

func (s *Service) GetShop(ctx context.Context, id int64) (*domain.Shop, error) {
	return s.repo.GetShopByID(ctx, id)
}

func (s *Service) ListShops(ctx context.Context, shopType string) ([]domain.Shop, error) {
	return s.repo.ListShops(ctx, shopType)
}

func (s *Service) PatchShop(ctx context.Context, id int64, input repository.ShopPatchInput) (*domain.Shop, error) {
	if input.ShopURL != nil && !validShopURL(*input.ShopURL) {
		return nil, fmt.Errorf("shop_url must start with http:// or https://")
	}
	return s.repo.PatchShop(ctx, id, input)
}

func (s *Service) DeleteShop(ctx context.Context, id int64) error {
	return s.repo.DeleteShop(ctx, id)
}

// RecordAudit writes an audit entry and never propagates failure: audit
// logging must not break the operation being audited.
func (s *Service) RecordAudit(ctx context.Context, input repository.AuditInsertInput) {
	if err := s.repo.InsertAudit(ctx, input); err != nil {
		s.logger.Warn("audit entry dropped", "action", input.Action, "error", err)
	}
}

func (s *Service) ListAudit(ctx context.Context, limit, offset int, search string) ([]domain.AuditEntry, error) {
	return s.repo.ListAudit(ctx, limit, offset, search)
}

func (s *Service) CountAudit(ctx context.Context, search string) (int, error) {
	return s.repo.CountAudit(ctx, search)
}

func validShopURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func normalizeNullable(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
