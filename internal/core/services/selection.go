package services

import (
	"sync"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
)

// SelectionToken is the driving port type.
type SelectionToken = driving.SelectionToken

// Ensure SelectionController implements the interface.
var _ driving.SelectionController = (*SelectionController)(nil)

// SelectionController owns the focused index over the current results.
type SelectionController struct {
	mu      sync.RWMutex
	policy  domain.SelectionPolicy
	results []domain.SearchResult
	cursor  domain.Cursor
	gen     uint64
}

// NewSelectionController creates a controller with the given policy.
func NewSelectionController(policy domain.SelectionPolicy) *SelectionController {
	if !policy.IsValid() {
		policy = domain.SelectionReset
	}
	return &SelectionController{policy: policy, cursor: domain.NewCursor(0)}
}

// SetResults replaces the list. Focus goes to the first result, unless the
// preserve policy applies and the focused result is still present.
func (c *SelectionController) SetResults(results []domain.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keepID string
	if c.policy == domain.SelectionPreserve {
		if r, ok := c.selectedLocked(); ok {
			keepID = r.ID
		}
	}

	c.results = results
	c.cursor.Reset(len(results))
	if keepID != "" {
		for i, r := range results {
			if r.ID == keepID {
				c.cursor.SelectAt(i)
				break
			}
		}
	}
	c.gen++
}

// MoveUp focuses the previous result with wraparound.
func (c *SelectionController) MoveUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor.Len() == 0 {
		return
	}
	c.cursor.MoveUp()
	c.gen++
}

// MoveDown focuses the next result with wraparound.
func (c *SelectionController) MoveDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor.Len() == 0 {
		return
	}
	c.cursor.MoveDown()
	c.gen++
}

// SelectAt focuses result i. It reports false when i is out of range.
func (c *SelectionController) SelectAt(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cursor.SelectAt(i) {
		return false
	}
	c.gen++
	return true
}

// FocusedIndex returns the focused index, or -1 when the list is empty.
func (c *SelectionController) FocusedIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor.Index()
}

// Selected returns the focused result.
func (c *SelectionController) Selected() (domain.SearchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedLocked()
}

// Results returns the list the controller navigates.
func (c *SelectionController) Results() []domain.SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.results
}

// Token returns the identity of the current selection.
func (c *SelectionController) Token() SelectionToken {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t := SelectionToken{Gen: c.gen}
	if r, ok := c.selectedLocked(); ok {
		t.ResultID = r.ID
	}
	return t
}

// IsCurrent reports whether work started under t may still be applied.
func (c *SelectionController) IsCurrent(t SelectionToken) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return t.Gen == c.gen
}

func (c *SelectionController) selectedLocked() (domain.SearchResult, bool) {
	i := c.cursor.Index()
	if i < 0 || i >= len(c.results) {
		return domain.SearchResult{}, false
	}
	return c.results[i], true
}
