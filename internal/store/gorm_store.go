package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stockledger/internal/errors"
	"stockledger/internal/models"
)

// gormStore implements UserStore on a relational database through GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a UserStore backed by db.
func NewGormStore(db *gorm.DB) UserStore {
	return &gormStore{db: db}
}

func (s *gormStore) Load(ctx context.Context, uid string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Preload("Holdings", func(db *gorm.DB) *gorm.DB { return db.Order("symbol ASC") }).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("uid = ?", uid).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if profile.Holdings == nil {
		profile.Holdings = []models.Holding{}
	}
	if !profile.HasTransactionLog {
		profile.Transactions = nil
	} else if profile.Transactions == nil {
		profile.Transactions = []models.Transaction{}
	}
	return &profile, nil
}

func (s *gormStore) Create(ctx context.Context, profile *models.Profile) error {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "uid"}}, DoNothing: true}).
		Create(profile).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *gormStore) InitTransactionLog(ctx context.Context, uid string) error {
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("uid = ?", uid).
		Update("has_transaction_log", true)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

func (s *gormStore) ReplaceHoldings(ctx context.Context, uid string, revision int64, holdings []models.Holding) (int64, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).
			Where("uid = ? AND revision = ?", uid, revision).
			Updates(map[string]any{
				"revision":   gorm.Expr("revision + 1"),
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return s.missingOrStale(tx, uid)
		}

		if err := tx.Where("profile_id = ?", uid).Delete(&models.Holding{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(holdings) == 0 {
			return nil
		}

		rows := make([]models.Holding, len(holdings))
		copy(rows, holdings)
		for i := range rows {
			rows[i].ProfileID = uid
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision + 1, nil
}

// missingOrStale tells a vanished profile apart from a lost revision race.
func (s *gormStore) missingOrStale(tx *gorm.DB, uid string) error {
	var count int64
	if err := tx.Model(&models.Profile{}).Where("uid = ?", uid).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrProfileNotFound
	}
	return apperrors.ErrConcurrentModification
}

func (s *gormStore) AppendTransaction(ctx context.Context, uid string, entry *models.Transaction) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).
			Where("uid = ?", uid).
			Updates(map[string]any{"has_transaction_log": true, "updated_at": time.Now()})
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrProfileNotFound
		}

		var last int64
		if err := tx.Model(&models.Transaction{}).
			Where("profile_id = ?", uid).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&last).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry.ProfileID = uid
		entry.Seq = last + 1
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
