package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"weightlog/internal/domain"
	"weightlog/internal/observability"
)

// ErrNameRequired is returned by CompleteSetup without a display name.
var ErrNameRequired = fmt.Errorf("%w: name is required", domain.ErrValidation)

// ProfileService owns the height, goal, display name and first-run flag.
type ProfileService struct {
	kv domain.KVStore

	mu      sync.Mutex
	profile domain.Profile
	setup   bool
}

// NewProfileService creates a ProfileService persisting to kv. Call Load before use.
func NewProfileService(kv domain.KVStore) *ProfileService {
	return &ProfileService{kv: kv}
}

// SetupRequest carries the answers of the first-run flow.
type SetupRequest struct {
	Name     string   `json:"name"`
	HeightCm *float64 `json:"heightCm"`
	GoalKg   *float64 `json:"goalKg"`
}

// Load reads the profile keys. Values that do not parse as positive numbers
// are treated as unset.
func (s *ProfileService) Load(ctx context.Context) error {
	height, err := s.loadNumber(ctx, domain.KeyHeight)
	if err != nil {
		return err
	}
	goal, err := s.loadNumber(ctx, domain.KeyGoal)
	if err != nil {
		return err
	}
	name, _, err := s.kv.Get(ctx, domain.KeyName)
	if err != nil {
		return fmt.Errorf("load %s: %w", domain.KeyName, err)
	}
	flag, _, err := s.kv.Get(ctx, domain.KeySetup)
	if err != nil {
		return fmt.Errorf("load %s: %w", domain.KeySetup, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = domain.Profile{HeightCm: height, GoalKg: goal, Name: name}
	s.setup = flag != ""
	return nil
}

func (s *ProfileService) loadNumber(ctx context.Context, key string) (*float64, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !domain.PositiveFinite(v) {
		log.Printf("profile: ignoring malformed %s value %q", key, raw)
		observability.RecordRecovery(key)
		return nil, nil
	}
	return &v, nil
}

// Profile returns a copy of the current profile.
func (s *ProfileService) Profile() domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	p.HeightCm = copyFloat(p.HeightCm)
	p.GoalKg = copyFloat(p.GoalKg)
	return p
}

// IsSetup reports whether the first-run flow has been completed.
func (s *ProfileService) IsSetup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setup
}

// SetHeight stores the height in centimetres.
func (s *ProfileService) SetHeight(ctx context.Context, cm float64) error {
	if !domain.PositiveFinite(cm) {
		return domain.ErrInvalidHeight
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, domain.KeyHeight, formatNumber(cm)); err != nil {
		return fmt.Errorf("save height: %w", err)
	}
	s.profile.HeightCm = &cm
	return nil
}

// SetGoal stores the goal weight in kilograms.
func (s *ProfileService) SetGoal(ctx context.Context, kg float64) error {
	if !domain.PositiveFinite(kg) {
		return domain.ErrInvalidGoal
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, domain.KeyGoal, formatNumber(kg)); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	s.profile.GoalKg = &kg
	return nil
}

// SetName stores the display name.
func (s *ProfileService) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, domain.KeyName, name); err != nil {
		return fmt.Errorf("save name: %w", err)
	}
	s.profile.Name = name
	return nil
}

// CompleteSetup runs the first-run flow. The setup flag is written last so a
// failure part way leaves the user in the setup flow.
func (s *ProfileService) CompleteSetup(ctx context.Context, req SetupRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}
	if req.HeightCm != nil && !domain.PositiveFinite(*req.HeightCm) {
		return domain.ErrInvalidHeight
	}
	if req.GoalKg != nil && !domain.PositiveFinite(*req.GoalKg) {
		return domain.ErrInvalidGoal
	}

	if err := s.SetName(ctx, req.Name); err != nil {
		return err
	}
	if req.HeightCm != nil {
		if err := s.SetHeight(ctx, *req.HeightCm); err != nil {
			return err
		}
	}
	if req.GoalKg != nil {
		if err := s.SetGoal(ctx, *req.GoalKg); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, domain.KeySetup, "true"); err != nil {
		return fmt.Errorf("save setup flag: %w", err)
	}
	s.setup = true
	return nil
}

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
