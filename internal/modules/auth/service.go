package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/toolsite/core/internal/models"
	"github.com/toolsite/core/internal/pkg/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

var ErrBadCredentials = errors.New("invalid email or password")

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("auth")}
}

// Login verifies credentials and issues a JWT. The same error is returned
// for unknown emails and wrong passwords.
func (s *Service) Login(email, password, ip string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.UserModel
	if err := s.db.Where("email = ? AND active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := jwt.Sign(user.ID, user.Role, tokenTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		s.log.Warn("record login failed", zap.String("user", user.ID), zap.Error(err))
	}
	user.LastLoginTime = &now
	user.LastLoginIP = ip

	return token, &user, nil
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(userID, current, next string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return gorm.ErrRecordNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrBadCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", string(hash)).Error
}

// SeedAdmin creates the initial admin account when no user exists yet.
func (s *Service) SeedAdmin(email, password string) error {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.UserModel{
		Name:     "Administrator",
		Email:    strings.ToLower(email),
		Password: string(hash),
		Role:     "admin",
		Active:   true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}
	s.log.Info("seeded initial admin account", zap.String("email", user.Email))
	return nil
}
