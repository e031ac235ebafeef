package analyses

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// Clock abstraction so record timestamps are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service implements the scoring use-cases. It is safe for concurrent use.
type Service struct {
	Scorer  analysis.Scorer
	History analysis.History
	Clock   Clock
	Logger  *zap.Logger
	// Timeout bounds each provider call. Zero means no explicit deadline.
	Timeout time.Duration

	mu     sync.Mutex
	lastID analysis.AnalysisID
}

// AnalyzeText scores a text prompt and records the result.
func (s *Service) AnalyzeText(ctx context.Context, promptText string) (*analysis.Record, error) {
	if promptText == "" {
		return nil, analysis.ErrNoInput
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.Scorer.ScoreText(ctx, promptText)
	if err != nil {
		s.logger().Error("text scoring failed", zap.Error(err))
		return nil, err
	}
	return s.record(res), nil
}

// AnalyzeImage scores raw image/document bytes and records the result.
func (s *Service) AnalyzeImage(ctx context.Context, data []byte, contentType string) (*analysis.Record, error) {
	if len(data) == 0 {
		return nil, analysis.ErrNoInput
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.Scorer.ScoreImage(ctx, data, contentType)
	if err != nil {
		s.logger().Error("image scoring failed", zap.Error(err), zap.String("content_type", contentType))
		return nil, err
	}
	return s.record(res), nil
}

// List returns all records, newest first.
func (s *Service) List() []*analysis.Record {
	return s.History.List()
}

// record builds the immutable Record and appends it to history. The id is a
// unix-millisecond timestamp bumped under the lock so concurrent requests in
// the same millisecond stay unique and ordered.
func (s *Service) record(res *analysis.Result) *analysis.Record {
	res.Clamp()
	now := s.Clock.Now()

	s.mu.Lock()
	id := analysis.AnalysisID(now.UnixMilli())
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.mu.Unlock()

	rec := &analysis.Record{
		ID:              id,
		CreatedDate:     now.UTC(),
		OverallScore:    res.Overall,
		DetailedScores:  res.Detailed,
		Recommendations: res.Recommendations,
		Feedback:        res.Feedback,
	}
	s.History.Append(rec)

	s.logger().Info("analysis recorded",
		zap.Int64("id", int64(rec.ID)),
		zap.Int("overall_score", rec.OverallScore),
	)
	return rec
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
