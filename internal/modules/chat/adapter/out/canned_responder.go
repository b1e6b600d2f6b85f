package out

import (
	"context"

	"fathom/internal/modules/chat/domain"
	chatout "fathom/internal/modules/chat/port/out"
)

type CannedResponder struct {
	canned *domain.CannedResponder
}

func NewCannedResponder(canned *domain.CannedResponder) chatout.Responder {
	return &CannedResponder{canned: canned}
}

func (r *CannedResponder) Reply(_ context.Context, text string) (string, error) {
	return r.canned.Respond(domain.Classify(text)), nil
}
