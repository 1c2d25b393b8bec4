package store

import (
	"context"
	"errors"

	"portfolio/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteDataStore struct{ db *gorm.DB }

func (s *Store) SiteData() *SiteDataStore { return &SiteDataStore{db: s.DB} }

// GetOrCreate returns the singleton, inserting the defaults on first use.
// Concurrent first reads both succeed; the loser's insert is a no-op.
func (s *SiteDataStore) GetOrCreate(ctx context.Context) (*domain.SiteData, error) {
	var data domain.SiteData
	err := s.db.WithContext(ctx).First(&data, "doc_key = ?", domain.SingletonKey).Error
	if err == nil {
		return &data, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	data = domain.DefaultSiteData()
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&data).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&data, "doc_key = ?", domain.SingletonKey).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SiteDataStore) Save(ctx context.Context, data *domain.SiteData) error {
	data.Key = domain.SingletonKey
	return s.db.WithContext(ctx).Save(data).Error
}

type SkillsStore struct{ db *gorm.DB }

func (s *Store) Skills() *SkillsStore { return &SkillsStore{db: s.DB} }

func (s *SkillsStore) GetOrCreate(ctx context.Context) (*domain.SkillsData, error) {
	var data domain.SkillsData
	err := s.db.WithContext(ctx).First(&data, "doc_key = ?", domain.SingletonKey).Error
	if err == nil {
		return &data, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	data = domain.SkillsData{
		Key:        domain.SingletonKey,
		HardSkills: []domain.HardSkill{},
		SoftSkills: domain.DefaultSoftSkills(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&data).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&data, "doc_key = ?", domain.SingletonKey).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SkillsStore) Save(ctx context.Context, data *domain.SkillsData) error {
	data.Key = domain.SingletonKey
	return s.db.WithContext(ctx).Save(data).Error
}
