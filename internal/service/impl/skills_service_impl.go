package impl

import (
	"context"
	"strings"

	"portfolio/internal/domain"
	"portfolio/internal/dto"
	"portfolio/internal/store"

	"gorm.io/datatypes"
)

var (
	errHardSkillFields = domain.Invalid("Ikon dan nama hard skill wajib diisi.")
	errSoftSkillName   = domain.Invalid("Nama soft skill wajib diisi.")
	errSoftSkillIndex  = domain.Invalid("Indeks soft skill tidak valid.")
)

// SkillsServiceImpl rewrites the whole skills document on every mutation.
type SkillsServiceImpl struct {
	Store *store.Store
}

func NewSkillsServiceImpl(st *store.Store) *SkillsServiceImpl {
	return &SkillsServiceImpl{Store: st}
}

func (s *SkillsServiceImpl) Get(ctx context.Context) (*domain.SkillsData, error) {
	return s.Store.Skills().GetOrCreate(ctx)
}

func (s *SkillsServiceImpl) Update(ctx context.Context, u dto.SkillsUpdate) (*domain.SkillsData, error) {
	var hard []domain.HardSkill
	if u.HardSkills != nil {
		var err error
		if hard, err = normalizeHardSkills(*u.HardSkills); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, func(d *domain.SkillsData) error {
		if u.HardSkills != nil {
			d.HardSkills = hard
		}
		if u.SoftSkills != nil {
			d.SoftSkills = normalizeSoftSkills(*u.SoftSkills)
		}
		return nil
	})
}

func (s *SkillsServiceImpl) AddSoftSkill(ctx context.Context, name string) (*domain.SkillsData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errSoftSkillName
	}
	return s.mutate(ctx, func(d *domain.SkillsData) error {
		d.SoftSkills = append(d.SoftSkills, name)
		return nil
	})
}

func (s *SkillsServiceImpl) RemoveSoftSkill(ctx context.Context, index int) (*domain.SkillsData, error) {
	return s.mutate(ctx, func(d *domain.SkillsData) error {
		if index < 0 || index >= len(d.SoftSkills) {
			return errSoftSkillIndex
		}
		soft := make(datatypes.JSONSlice[string], 0, len(d.SoftSkills)-1)
		soft = append(soft, d.SoftSkills[:index]...)
		d.SoftSkills = append(soft, d.SoftSkills[index+1:]...)
		return nil
	})
}

func (s *SkillsServiceImpl) ReplaceHardSkills(ctx context.Context, skills []domain.HardSkill) (*domain.SkillsData, error) {
	hard, err := normalizeHardSkills(skills)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(d *domain.SkillsData) error {
		d.HardSkills = hard
		return nil
	})
}

func (s *SkillsServiceImpl) mutate(ctx context.Context, fn func(*domain.SkillsData) error) (*domain.SkillsData, error) {
	data, err := s.Store.Skills().GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	if err := s.Store.Skills().Save(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// normalizeHardSkills trims fields, applies the default level and gives
// every skill without an id one that is unique within the list.
func normalizeHardSkills(in []domain.HardSkill) ([]domain.HardSkill, error) {
	out := make([]domain.HardSkill, 0, len(in))
	var maxID int64
	for _, h := range in {
		if h.ID > maxID {
			maxID = h.ID
		}
	}
	for _, h := range in {
		h.Icon = strings.TrimSpace(h.Icon)
		h.Name = strings.TrimSpace(h.Name)
		h.Level = strings.TrimSpace(h.Level)
		if h.Icon == "" || h.Name == "" {
			return nil, errHardSkillFields
		}
		if h.Level == "" {
			h.Level = domain.DefaultSkillLevel
		}
		if h.ID == 0 {
			maxID++
			h.ID = maxID
		}
		out = append(out, h)
	}
	return out, nil
}

func normalizeSoftSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
