package llm

// Exchange is one prior request/response pair from a predictor session.
type Exchange struct {
	Input  string
	Output string
}

// History is the ordered session memory a predictor replays into every model
// call, so the model can recognize content it has already acted on even when
// the title-based dedup upstream was bypassed. Bounded: when max is positive,
// the oldest exchanges are trimmed first.
type History struct {
	max       int
	exchanges []Exchange
}

// NewHistory creates a history keeping at most max exchanges. A max <= 0
// disables trimming entirely.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add appends an exchange, trimming the oldest entries past the bound.
func (h *History) Add(input, output string) {
	h.exchanges = append(h.exchanges, Exchange{Input: input, Output: output})
	if h.max > 0 && len(h.exchanges) > h.max {
		h.exchanges = h.exchanges[len(h.exchanges)-h.max:]
	}
}

// Exchanges returns the retained exchanges, oldest first.
func (h *History) Exchanges() []Exchange {
	return h.exchanges
}

// Len returns the number of retained exchanges.
func (h *History) Len() int { return len(h.exchanges) }
