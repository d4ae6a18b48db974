package service

import (
	"RecipeHub/internal/pkg/consts"
	"RecipeHub/internal/pkg/counter"
	"RecipeHub/internal/pkg/metrics"
	"RecipeHub/internal/pkg/security"
	"context"
	log "log/slog"
)

// TokenService 校验 Token 并维护注销黑名单
type TokenService interface {
	Authenticate(ctx context.Context, token string) (*security.UserClaims, error)
	Logout(ctx context.Context, token string) error
}

type tokenServiceImpl struct {
	cache counter.Cache
}

func NewTokenService(cache counter.Cache) TokenService {
	return &tokenServiceImpl{cache: cache}
}

// Authenticate 先校验签名，再查黑名单；黑名单不可用时放行，只记录失败
func (s *tokenServiceImpl) Authenticate(ctx context.Context, token string) (*security.UserClaims, error) {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	_, revoked, err := s.cache.Get(ctx, consts.TokenBlacklist+signature)
	if err != nil {
		log.WarnContext(ctx, "token blacklist lookup failed", "user_id", claims.UserID, "err", err)
		metrics.RecordCounterFailure("token_blacklist")
		return claims, nil
	}
	if revoked {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Logout 签名写入黑名单直到 Token 自然过期
func (s *tokenServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	ttl := security.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, consts.TokenBlacklist+signature, []byte("1"), ttl)
}
