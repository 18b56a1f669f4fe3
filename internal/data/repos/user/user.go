package user

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/sitebuilder-backend/internal/data/models"
	domainuser "github.com/yungbote/sitebuilder-backend/internal/domain/user"
	"github.com/yungbote/sitebuilder-backend/internal/platform/dbctx"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type UserRepo interface {
	FindByID(dbc dbctx.Context, id string) (*domainuser.User, error)
	// FindByEmailOrUsername matches login against the normalized email or
	// the exact username. Returns nil when nothing matches.
	FindByEmailOrUsername(dbc dbctx.Context, login string) (*domainuser.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	Save(dbc dbctx.Context, u *domainuser.User) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) FindByID(dbc dbctx.Context, id string) (*domainuser.User, error) {
	return r.first(dbc.DB(r.db).Where("id = ?", id))
}

func (r *userRepo) FindByEmailOrUsername(dbc dbctx.Context, login string) (*domainuser.User, error) {
	return r.first(dbc.DB(r.db).
		Where("email = ? OR username = ?", domainuser.NormalizeEmail(login), login))
}

func (r *userRepo) first(q *gorm.DB) (*domainuser.User, error) {
	var row models.User
	err := q.Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return domainuser.Restore(row.Record()), nil
}

func (r *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&models.User{}).
		Where("email = ?", domainuser.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Save(dbc dbctx.Context, u *domainuser.User) error {
	if u == nil {
		return nil
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "username", "password_hash", "updated_at"}),
		}).
		Create(models.UserFromRecord(u.Record())).Error
}
