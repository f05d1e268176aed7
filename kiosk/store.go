package kiosk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vms/database"
	"vms/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	keyContractorID = "contractorId"
	keyToken        = "token"
	keyLastScore    = "lastScore"
)

// Entry is one key of the kiosk's local state.
type Entry struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "kiosk_state"
}

// Store keeps the checked-in contractor and the last quiz score on the
// kiosk in a small sqlite file, so a restart does not lose the check-in.
type Store struct {
	db *gorm.DB
}

var _ workflow.LocalState = (*Store)(nil)

// OpenStore opens or creates the kiosk state file at path.
func OpenStore(path string) (*Store, error) {
	db, err := database.Open("sqlite", path, logger.Silent)
	if err != nil {
		return nil, fmt.Errorf("open kiosk store: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate kiosk store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ContractorID returns the checked-in contractor, or "" when there is none.
func (s *Store) ContractorID(ctx context.Context) (string, error) {
	return s.get(ctx, keyContractorID)
}

// Token returns the bearer token issued at check-in.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, keyToken)
}

// SaveCheckIn stores a fresh check-in and drops any previous score.
func (s *Store) SaveCheckIn(ctx context.Context, contractorID, token string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", keyLastScore).Delete(&Entry{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create([]Entry{
			{Name: keyContractorID, Value: contractorID},
			{Name: keyToken, Value: token},
		}).Error
	})
}

func (s *Store) SetLastScore(ctx context.Context, score int) error {
	return s.set(ctx, keyLastScore, strconv.Itoa(score))
}

// LastScore returns the most recent quiz score, if any.
func (s *Store) LastScore(ctx context.Context) (int, bool, error) {
	v, err := s.get(ctx, keyLastScore)
	if err != nil || v == "" {
		return 0, false, err
	}
	score, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt last score %q: %w", v, err)
	}
	return score, true, nil
}

// Clear forgets the contractor, token and score.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("name IN ?", []string{keyContractorID, keyToken, keyLastScore}).
		Delete(&Entry{}).Error
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&Entry{Name: key, Value: value}).Error
}
