package driving

import "github.com/custodia-labs/sift/internal/core/domain"

// SelectionToken identifies a selection at a point in time. Work started
// for a selection carries its token; results for an old token are stale.
type SelectionToken struct {
	Gen      uint64
	ResultID string
}

// SelectionController owns the focused index over the current results.
type SelectionController interface {
	SetResults(results []domain.SearchResult)
	MoveUp()
	MoveDown()
	SelectAt(i int) bool

	FocusedIndex() int
	Selected() (domain.SearchResult, bool)
	Results() []domain.SearchResult

	Token() SelectionToken
	IsCurrent(t SelectionToken) bool
}
