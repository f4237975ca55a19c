package services

import (
	"context"
	"freshcatch_server/database"
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"freshcatch_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: NewCacheService(logger, cfg),
	}
}

func (as *AuthService) Login(authRequest *structs.AuthRequest) (*tables.User, error) {
	startTime := time.Now()
	user, err := database.Query[tables.User](as.db).Where("email", authRequest.Email).First(context.Background())
	if err != nil {
		mappedErr := lib.MapDBError(err)

		// Could be a legitimate "user not found", keep it at debug
		as.logger.Debug("Database query during login",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("error", mappedErr),
		)

		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
				gecho.Field("original_error", err),
			)
		}

		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	// First() returns nil, nil when no row matched
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", authRequest.Email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(authRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

func (as *AuthService) Register(registerRequest *structs.RegisterRequest) (*tables.User, error) {
	startTime := time.Now()
	passwordHash, err := lib.HashPassword(registerRequest.Password, lib.DefaultArgonParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}
	user := &tables.User{
		Username:     registerRequest.Username,
		Email:        registerRequest.Email,
		PasswordHash: passwordHash,
		Phone:        registerRequest.Phone,
		Role:         tables.RoleCustomer,
	}
	user, err = database.Query[tables.User](as.db).Insert(context.Background(), user)
	if err != nil {
		mappedErr := lib.MapDBError(err)

		if mappedErr == lib.ErrConflict {
			as.logger.Warn("Registration failed - duplicate user",
				gecho.Field("username", registerRequest.Username),
				gecho.Field("email", registerRequest.Email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", registerRequest.Username),
			)
		}

		return nil, mappedErr
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	signed, _, err := lib.GenerateToken(user.Id, user.Email, user.Role, as.cfg.Auth.AccessTokenSecret, as.cfg.Auth.AccessTokenExpiry)
	return signed, err
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

// GenerateRefreshToken generates a JWT refresh token for the given user
func (as *AuthService) GenerateRefreshToken(user *tables.User) (string, error) {
	signed, _, err := lib.GenerateToken(user.Id, user.Email, user.Role, as.cfg.Auth.RefreshTokenSecret, as.cfg.Auth.RefreshTokenExpiry)
	return signed, err
}

// GetRefreshTokenExpiration returns the expiration time for refresh tokens
func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

func (as *AuthService) RefreshAccessToken(refreshToken string) (*tables.AuthResponse, error) {
	claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
	if err != nil {
		as.logger.Error("Failed to parse refresh token", gecho.Field("error", err))
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		as.logger.Warn("Refresh token has expired", gecho.Field("exp", claims.Exp))
		return nil, lib.ErrExpiredToken
	}

	isBlacklisted, err := as.cacheService.IsTokenBlacklisted(claims.Jti)
	if err != nil {
		as.logger.Error("Failed to check if token is blacklisted", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}

	if isBlacklisted {
		as.logger.Warn("Refresh token is blacklisted", gecho.Field("jti", claims.Jti))
		return nil, lib.ErrInvalidToken
	}

	user, err := as.GetUserByID(claims.Sub)
	if err != nil {
		as.logger.Error("Failed to get user by ID during token refresh", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return nil, err
	}

	// Old refresh token is single use
	if err := as.cacheService.BlacklistToken(claims.Jti, claims.Exp); err != nil {
		as.logger.Warn("Failed to blacklist rotated refresh token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
	}

	newAccessToken, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new access token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	newRefreshToken, err := as.GenerateRefreshToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new refresh token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	return &tables.AuthResponse{
		User:         user,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout blacklists the presented tokens so they cannot be replayed
func (as *AuthService) Logout(accessClaims, refreshClaims *structs.AuthClaims) error {
	if accessClaims != nil {
		if err := as.cacheService.BlacklistToken(accessClaims.Jti, accessClaims.Exp); err != nil {
			as.logger.Error("Failed to blacklist access token", gecho.Field("error", err), gecho.Field("jti", accessClaims.Jti))
			return err
		}
	}
	if refreshClaims != nil {
		if err := as.cacheService.BlacklistToken(refreshClaims.Jti, refreshClaims.Exp); err != nil {
			as.logger.Error("Failed to blacklist refresh token", gecho.Field("error", err), gecho.Field("jti", refreshClaims.Jti))
			return err
		}
	}
	return nil
}

func (as *AuthService) GetUserByID(userId uuid.UUID) (*tables.User, error) {
	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		as.logger.Error("Failed to find user by ID", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapDBError(err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

// IsAdmin checks the user's role against the users table instead of
// trusting the role baked into the token. A demoted admin loses access
// as soon as the row changes, even with a still-valid token.
func (as *AuthService) IsAdmin(userId uuid.UUID) (bool, error) {
	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		return false, lib.MapDBError(err)
	}
	if user == nil {
		return false, nil
	}
	return user.Role == tables.RoleAdmin, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}

func (as *AuthService) UpdateLastLogin(userId uuid.UUID) error {
	updates := map[string]any{
		"last_login": time.Now(),
	}
	_, err := database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		return lib.MapDBError(err)
	}
	return nil
}
