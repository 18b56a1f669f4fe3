package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/sitebuilder-backend/internal/data/aggregates"
	"github.com/yungbote/sitebuilder-backend/internal/data/repos"
	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
	domainuser "github.com/yungbote/sitebuilder-backend/internal/domain/user"
	"github.com/yungbote/sitebuilder-backend/internal/platform/ctxutil"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const msgBadCredentials = "invalid email/username or password"

type AuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (Result[domainuser.Record], error)
	Login(ctx context.Context, cmd LoginCommand) (Result[LoginResult], error)
	ParseToken(tokenString string) (*JWTClaims, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	writer       aggregates.Writer
	users        repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	log *logger.Logger,
	writer aggregates.Writer,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		log:          log.With("service", "AuthService"),
		writer:       writer,
		users:        userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, cmd RegisterCommand) (Result[domainuser.Record], error) {
	u, err := domainuser.Register(cmd.Email, cmd.Username, cmd.Password)
	if err != nil {
		return settle[domainuser.Record](err)
	}
	err = as.writer.Write(ctx, "user.register", func(dbc dbctx.Context) error {
		taken, err := as.users.EmailExists(dbc, u.Email())
		if err != nil {
			return err
		}
		if taken {
			return domainagg.Conflict("email is already registered")
		}
		taken, err = as.users.UsernameExists(dbc, u.Username())
		if err != nil {
			return err
		}
		if taken {
			return domainagg.Conflict("username is already taken")
		}
		if err := as.users.Save(dbc, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return settle[domainuser.Record](err)
	}
	as.log.Info("User registered", "user_id", u.ID())
	return ok(u.Record())
}

func (as *authService) Login(ctx context.Context, cmd LoginCommand) (Result[LoginResult], error) {
	login := strings.TrimSpace(cmd.Login)
	if login == "" || cmd.Password == "" {
		return settle[LoginResult](domainagg.Validation("login", "login and password are required"))
	}
	u, err := as.users.FindByEmailOrUsername(dbctx.Background(ctx), login)
	if err != nil {
		return Result[LoginResult]{}, err
	}
	if u == nil || !u.CheckPassword(cmd.Password) {
		return settle[LoginResult](domainagg.Unauthorized(msgBadCredentials))
	}
	token, err := as.generateAccessToken(u)
	if err != nil {
		return Result[LoginResult]{}, fmt.Errorf("sign access token: %w", err)
	}
	return ok(LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(as.accessTTL / time.Second),
		User:        u.Record(),
	})
}

func (as *authService) generateAccessToken(u *domainuser.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Email: u.Email(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) ParseToken(tokenString string) (*JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetContextFromToken leaves ctx untouched for an empty token.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	claims, err := as.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      claims.Subject,
		TokenString: tokenString,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
