package services

import (
	"context"
	"errors"
	"fmt"

	"wardrobeapi/models"

	"gorm.io/gorm"
)

var ErrNotFound = fmt.Errorf("wardrobe: %w", gorm.ErrRecordNotFound)

type WardrobeStoreProvider interface {
	GetUser(ctx context.Context, userID uint) (models.UserAccount, error)
	UpdateUser(ctx context.Context, user *models.UserAccount) error
	ListDailyOutfitUsers(ctx context.Context) ([]models.UserAccount, error)

	ListClothes(ctx context.Context, ownerID uint) ([]models.Clothing, error)
	// GetClothes returns the owner's rows in the order of ids, ErrNotFound if any id is unknown.
	GetClothes(ctx context.Context, ownerID uint, ids []uint) ([]models.Clothing, error)
	GetClothing(ctx context.Context, ownerID uint, id uint) (models.Clothing, error)
	CreateClothing(ctx context.Context, clothing *models.Clothing) error
	UpdateClothing(ctx context.Context, clothing *models.Clothing) error
	DeleteClothing(ctx context.Context, ownerID uint, id uint) error

	SaveOutfitGeneration(ctx context.Context, generation *models.OutfitGeneration) error
	LatestOutfitGeneration(ctx context.Context, userID uint, kind string) (models.OutfitGeneration, error)
}

type GormWardrobeStore struct {
	DB *gorm.DB
}

func NewGormWardrobeStore(db *gorm.DB) *GormWardrobeStore {
	return &GormWardrobeStore{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormWardrobeStore) GetUser(ctx context.Context, userID uint) (models.UserAccount, error) {
	var user models.UserAccount
	err := s.DB.WithContext(ctx).Where("id = ?", userID).Take(&user).Error
	return user, notFound(err)
}

func (s *GormWardrobeStore) UpdateUser(ctx context.Context, user *models.UserAccount) error {
	return s.DB.WithContext(ctx).Save(user).Error
}

func (s *GormWardrobeStore) ListDailyOutfitUsers(ctx context.Context) ([]models.UserAccount, error) {
	var users []models.UserAccount
	err := s.DB.WithContext(ctx).
		Where("receive_daily_outfit = ? AND banned = ?", true, false).
		Order("id").
		Find(&users).Error
	return users, err
}

func (s *GormWardrobeStore) ListClothes(ctx context.Context, ownerID uint) ([]models.Clothing, error) {
	var clothes []models.Clothing
	err := s.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&clothes).Error
	return clothes, err
}

func (s *GormWardrobeStore) GetClothes(ctx context.Context, ownerID uint, ids []uint) ([]models.Clothing, error) {
	if len(ids) == 0 {
		return []models.Clothing{}, nil
	}
	var found []models.Clothing
	if err := s.DB.WithContext(ctx).Where("owner_id = ? AND id IN ?", ownerID, ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Clothing, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	clothes := make([]models.Clothing, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("clothing %d: %w", id, ErrNotFound)
		}
		clothes = append(clothes, c)
	}
	return clothes, nil
}

func (s *GormWardrobeStore) GetClothing(ctx context.Context, ownerID uint, id uint) (models.Clothing, error) {
	var clothing models.Clothing
	err := s.DB.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Take(&clothing).Error
	return clothing, notFound(err)
}

func (s *GormWardrobeStore) CreateClothing(ctx context.Context, clothing *models.Clothing) error {
	return s.DB.WithContext(ctx).Create(clothing).Error
}

func (s *GormWardrobeStore) UpdateClothing(ctx context.Context, clothing *models.Clothing) error {
	return s.DB.WithContext(ctx).Save(clothing).Error
}

func (s *GormWardrobeStore) DeleteClothing(ctx context.Context, ownerID uint, id uint) error {
	result := s.DB.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, id).Delete(&models.Clothing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormWardrobeStore) SaveOutfitGeneration(ctx context.Context, generation *models.OutfitGeneration) error {
	return s.DB.WithContext(ctx).Create(generation).Error
}

func (s *GormWardrobeStore) LatestOutfitGeneration(ctx context.Context, userID uint, kind string) (models.OutfitGeneration, error) {
	var generation models.OutfitGeneration
	err := s.DB.WithContext(ctx).
		Where("user_account_id = ? AND kind = ?", userID, kind).
		Order("created_at desc, id desc").
		Take(&generation).Error
	return generation, notFound(err)
}
