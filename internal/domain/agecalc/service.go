package agecalc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/agemaster/internal/domain/enrichment"
	apperrors "github.com/yanqian/agemaster/pkg/errors"
	"github.com/yanqian/agemaster/pkg/util"
)

const compareConcurrency = 4

// Service exposes the age calculations behind the HTTP API.
type Service interface {
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
	Compare(ctx context.Context, req CompareRequest) (CompareResponse, error)
	Milestones(ctx context.Context, req MilestonesRequest) (MilestonesResponse, error)
}

type service struct {
	cfg     Config
	clock   util.Clock
	content enrichment.Gateway
	logger  *slog.Logger
}

// NewService wires up the age calculation domain.
func NewService(cfg Config, clock util.Clock, content enrichment.Gateway, logger *slog.Logger) Service {
	if cfg.LifeExpectancy <= 0 {
		cfg.LifeExpectancy = DefaultLifeExpectancy
	}
	if cfg.MaxCompare <= 0 {
		cfg.MaxCompare = 10
	}
	return &service{
		cfg:     cfg,
		clock:   clock,
		content: content,
		logger:  logger.With("component", "agecalc.service"),
	}
}

func (s *service) Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error) {
	birthRaw := strings.TrimSpace(req.BirthDate)
	if birthRaw == "" {
		return CalculateResponse{}, apperrors.Wrap(CodeInvalidInput, "Birth date is required", nil)
	}
	birth, err := ParseDate(birthRaw)
	if err != nil {
		return CalculateResponse{}, err
	}

	now := s.now()
	target := now
	if targetRaw := strings.TrimSpace(req.TargetDate); targetRaw != "" {
		if target, err = ParseDate(targetRaw); err != nil {
			return CalculateResponse{}, err
		}
	}

	record, err := BuildAgeRecord(birth, target, now)
	if err != nil {
		return CalculateResponse{}, err
	}

	age := enrichment.AgeContext{Years: record.Years, TotalDays: record.TotalDays}
	resp := CalculateResponse{
		Success:             true,
		AgeData:             record,
		ZodiacSign:          ZodiacSign(birth.Month(), birth.Day()),
		ChineseZodiac:       ChineseZodiac(birth.Year()),
		NextBirthday:        NextBirthday(birth, now),
		WeekdayBorn:         WeekdayOfBirth(birth),
		PlanetaryAges:       PlanetaryAges(birth, now),
		LifeCalendar:        EstimateLifeCalendar(record.ExactYears, s.cfg.LifeExpectancy),
		TimePerception:      TimePerceptionFactor(float64(record.Years)),
		HistoricalEvents:    HistoricalEvents(birth.Year()),
		Quote:               s.content.Quote(ctx, &age),
		FunFact:             s.content.FunFact(ctx, age),
		BirthDateFormatted:  birth.Format(DisplayLayout),
		TargetDateFormatted: target.Format(DisplayLayout),
	}
	s.logger.Debug("age calculated", "total_days", record.TotalDays, "zodiac", resp.ZodiacSign)
	return resp, nil
}

func (s *service) Compare(ctx context.Context, req CompareRequest) (CompareResponse, error) {
	if len(req.Persons) > s.cfg.MaxCompare {
		return CompareResponse{}, apperrors.Wrap(CodeInvalidInput, "Invalid persons data or too many persons", nil)
	}

	now := s.now()
	slots := make([]*Comparison, len(req.Persons))
	var g errgroup.Group
	g.SetLimit(compareConcurrency)
	for i, person := range req.Persons {
		g.Go(func() error {
			slots[i] = s.comparePerson(person, now)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Comparison, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return CompareResponse{}, apperrors.Wrap(CodeInvalidInput, "No valid persons to compare", nil)
	}
	return CompareResponse{Success: true, Comparison: out}, nil
}

// comparePerson returns nil for entries that fail validation; they are skipped.
func (s *service) comparePerson(person PersonInput, now time.Time) *Comparison {
	raw := strings.TrimSpace(person.BirthDate)
	if raw == "" {
		return nil
	}
	birth, err := ParseDate(raw)
	if err != nil {
		return nil
	}
	record, err := BuildAgeRecord(birth, now, now)
	if err != nil {
		return nil
	}
	name := strings.TrimSpace(person.Name)
	if name == "" {
		name = "Person"
	}
	return &Comparison{
		Name:          name,
		AgeData:       record,
		Zodiac:        ZodiacSign(birth.Month(), birth.Day()),
		ChineseZodiac: ChineseZodiac(birth.Year()),
		BirthYear:     birth.Year(),
	}
}

func (s *service) Milestones(_ context.Context, req MilestonesRequest) (MilestonesResponse, error) {
	raw := strings.TrimSpace(req.BirthDate)
	if raw == "" {
		return MilestonesResponse{}, apperrors.Wrap(CodeInvalidInput, "Birth date is required", nil)
	}
	birth, err := ParseDate(raw)
	if err != nil {
		return MilestonesResponse{}, err
	}
	now := s.now()
	if birth.After(now) {
		return MilestonesResponse{}, apperrors.Wrap(CodeFutureBirthDate, "Birth date cannot be in the future", nil)
	}
	return MilestonesResponse{Success: true, Milestones: ProjectMilestones(birth, now)}, nil
}

func (s *service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}
