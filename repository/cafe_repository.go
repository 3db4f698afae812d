package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"cafe-api/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("cafe not found")
	ErrEmptyStore    = errors.New("no cafes in store")
	ErrDuplicateName = errors.New("cafe name already exists")
)

type CafeRepository struct {
	db *gorm.DB
}

func NewCafeRepository(db *gorm.DB) *CafeRepository {
	return &CafeRepository{db: db}
}

func (r *CafeRepository) ListAll(ctx context.Context) ([]model.Cafe, error) {
	cafes := make([]model.Cafe, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("list cafes: %w", err)
	}
	return cafes, nil
}

func (r *CafeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Cafe{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cafes: %w", err)
	}
	return n, nil
}

// FindByLocation returns the first cafe whose location equals the title-cased
// input. Other cafes in the same location are not returned.
func (r *CafeRepository) FindByLocation(ctx context.Context, location string) (*model.Cafe, error) {
	var c model.Cafe
	err := r.db.WithContext(ctx).
		Where("location = ?", TitleCase(location)).
		Order("id").
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "find cafe by location")
	}
	return &c, nil
}

func (r *CafeRepository) FindByID(ctx context.Context, id uint) (*model.Cafe, error) {
	var c model.Cafe
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "find cafe by id")
	}
	return &c, nil
}

func (r *CafeRepository) PickRandom(ctx context.Context) (*model.Cafe, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrEmptyStore
	}

	var c model.Cafe
	err = r.db.WithContext(ctx).
		Order("id").
		Offset(rand.Intn(int(n))).
		Limit(1).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// rows were deleted between count and fetch
		return nil, ErrEmptyStore
	}
	if err != nil {
		return nil, fmt.Errorf("pick random cafe: %w", err)
	}
	return &c, nil
}

func (r *CafeRepository) Insert(ctx context.Context, c *model.Cafe) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return duplicate(err, "insert cafe")
	}
	return nil
}

// InsertBatch inserts all cafes or none.
func (r *CafeRepository) InsertBatch(ctx context.Context, cafes []model.Cafe) error {
	if len(cafes) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cafes).Error
	})
	if err != nil {
		return duplicate(err, "insert cafes")
	}
	return nil
}

func (r *CafeRepository) UpdatePrice(ctx context.Context, id uint, price string) (*model.Cafe, error) {
	var c model.Cafe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		return tx.Model(&c).Update("coffee_price", price).Error
	})
	if err != nil {
		return nil, notFound(err, "update coffee price")
	}
	c.CoffeePrice = &price
	return &c, nil
}

func (r *CafeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Cafe{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete cafe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CafeRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest, so "soho" and "SOHO" both match a stored "Soho".
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicate(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return fmt.Errorf("%s: %w", op, err)
}
