package queries

import (
	"context"
	"time"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/services"
)

type EvaluateCartQueryHandler struct {
	engine *services.ValidationEngine
	now    func() time.Time
}

// NewEvaluateCartQueryHandler uses time.Now when now is nil.
func NewEvaluateCartQueryHandler(engine *services.ValidationEngine, now func() time.Time) EvaluateCartQueryHandler {
	if now == nil {
		now = time.Now
	}
	return EvaluateCartQueryHandler{engine: engine, now: now}
}

func (h EvaluateCartQueryHandler) Handle(_ context.Context, query EvaluateCartQuery) (EvaluateCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EvaluateCartQueryResponse{}, err
	}

	now := h.now()
	c := query.Cart()
	resp := EvaluateCartQueryResponse{
		Verdict:      h.engine.EvaluateAt(c, now),
		Totals:       cart.Summarize(c),
		LateWarnings: make(map[kernel.UUID]string),
	}
	calendar := h.engine.Calendar()
	for _, line := range c.Lines() {
		if msg, late := calendar.LateWarning(services.LineCity(line), line.DeliveryDate, now); late {
			resp.LateWarnings[line.ID] = msg
		}
	}
	return resp, nil
}
