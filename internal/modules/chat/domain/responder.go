package domain

import (
	"math/rand/v2"
	"sync"
)

var templates = map[Category][]string{
	CategorySad: {
		"I'm sorry you're feeling this way. What do you think is weighing on you the most right now?",
		"It sounds like things feel heavy at the moment. Would you like to talk about what happened?",
		"Sadness can tell us what matters to us. What do you miss or wish were different?",
	},
	CategoryAnxious: {
		"That sounds stressful. What is one small thing within your control right now?",
		"When worry builds up, naming it can help. What exactly are you most concerned about?",
		"Let's slow down for a moment. What would help you feel a little more grounded today?",
	},
	CategoryAngry: {
		"It makes sense to feel frustrated. What boundary or value feels like it was crossed?",
		"Anger often points to something important. What would you like to see change?",
		"Thank you for sharing that. How are you taking care of yourself while feeling this way?",
	},
	CategoryHappy: {
		"That's wonderful to hear! What made this moment feel so good?",
		"I love that. How could you bring a little more of this into your week?",
		"It's great to notice good moments. Who or what contributed to this feeling?",
	},
	CategoryConfused: {
		"It's okay not to have it all figured out. What options are you weighing?",
		"Feeling unsure is part of reflecting. What would you do if you knew you couldn't fail?",
		"Let's untangle it together. What feels most unclear right now?",
	},
	CategoryGeneral: {
		"Tell me more about that. How did it make you feel?",
		"What stands out to you most when you think about this?",
		"That's interesting. What do you think this says about what matters to you?",
		"How has this been showing up in your day to day life?",
	},
}

// CannedResponder picks replies uniformly from each category's templates.
type CannedResponder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewCannedResponder(rng *rand.Rand) *CannedResponder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &CannedResponder{rng: rng}
}

func (r *CannedResponder) Respond(category Category) string {
	pool, ok := templates[category]
	if !ok {
		pool = templates[CategoryGeneral]
	}
	r.mu.Lock()
	idx := r.rng.IntN(len(pool))
	r.mu.Unlock()
	return pool[idx]
}

func Templates(category Category) []string {
	return append([]string(nil), templates[category]...)
}
