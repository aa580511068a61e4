package rank

import (
	"go.uber.org/zap"

	"aitools-engine/internal/domain"
	"aitools-engine/internal/logging"
)

// SafeMapper turns a panic while mapping one tool into the Other
// assignment so a bad record cannot abort a batch.
type SafeMapper struct {
	Mapper Mapper
	Log    *zap.Logger
}

func (s SafeMapper) Map(t domain.Tool) (out domain.Categories) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.OrNop(s.Log).Error("categorize failed", zap.String("slug", t.Slug), zap.Any("panic", rec))
			out = domain.OtherOnly(t.Categories.Original)
		}
	}()
	return s.Mapper.Map(t)
}
