package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/ports/driving"
	"github.com/custodia-labs/sift/internal/logger"
)

// Ensure AssistService implements the interface.
var _ driving.AssistService = (*AssistService)(nil)

const (
	// minSuggestLength is the trimmed length a query must exceed before
	// a completion is requested.
	minSuggestLength = 2

	// maxContentBytes bounds the file content sent with a prompt.
	maxContentBytes = 24576

	// maxHighlightPhrases bounds how many phrases are applied.
	maxHighlightPhrases = 32
)

// Fallback prompts, used when no PromptStore is set or a load fails.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const (
	defaultSuggestPrompt = `You are an assistant guiding users in their search through their files and integrations using natural language.
Provide a concise, one-line completion of what the user is typing. Reply with the missing words only, with no explanation and no quotes.`

	defaultSummarisePrompt = `You summarise files for a search tool. Reply with exactly one sentence describing what the file is about, with regard to the user's search when relevant.`

	defaultHighlightPrompt = `You find the parts of a file relevant to a search. Reply with the exact phrases copied from the file that matter for the search, one per line, and nothing else.`
)

// AssistService wraps an optional LLM for suggestions, summaries and
// highlighting. With no LLM every method returns "".
type AssistService struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	timeout time.Duration
}

// NewAssistService creates an assist service. llm and prompts may be nil.
func NewAssistService(llm driven.LLMService, prompts driven.PromptStore, timeout time.Duration) *AssistService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AssistService{llm: llm, prompts: prompts, timeout: timeout}
}

// Available reports whether an LLM is configured.
func (s *AssistService) Available() bool {
	return s.llm != nil
}

// Suggest completes text with a single line.
func (s *AssistService) Suggest(ctx context.Context, text string) string {
	if len(strings.TrimSpace(text)) <= minSuggestLength {
		return ""
	}
	reply := s.chat(ctx, driven.PromptSuggest, defaultSuggestPrompt, text, 40)
	return firstLine(reply)
}

// Summarise describes content in one sentence.
func (s *AssistService) Summarise(ctx context.Context, content, query string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	user := "Search: " + query + "\n\nFile:\n" + truncate(content, maxContentBytes)
	return strings.TrimSpace(s.chat(ctx, driven.PromptSummarise, defaultSummarisePrompt, user, 120))
}

// Highlight upper-cases every phrase of content the model marks as
// relevant to query. Phrases are matched literally; the reply is never
// compiled as a pattern.
func (s *AssistService) Highlight(ctx context.Context, content, query string) string {
	if strings.TrimSpace(content) == "" || strings.TrimSpace(query) == "" {
		return content
	}
	user := "Search: " + query + "\n\nFile:\n" + truncate(content, maxContentBytes)
	reply := s.chat(ctx, driven.PromptHighlight, defaultHighlightPrompt, user, 400)
	return HighlightPhrases(content, strings.Split(reply, "\n"))
}

// HighlightPhrases upper-cases case-insensitive literal occurrences of
// each phrase in content. Longer phrases are applied first.
func HighlightPhrases(content string, phrases []string) string {
	seen := make(map[string]bool)
	var clean []string
	for _, p := range phrases {
		p = strings.Trim(strings.TrimSpace(p), `"'-*• `)
		key := strings.ToLower(p)
		if len(p) < 2 || seen[key] {
			continue
		}
		seen[key] = true
		clean = append(clean, p)
		if len(clean) == maxHighlightPhrases {
			break
		}
	}
	sort.SliceStable(clean, func(i, j int) bool { return len(clean[i]) > len(clean[j]) })

	for _, p := range clean {
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(p))
		if err != nil {
			continue
		}
		content = re.ReplaceAllStringFunc(content, strings.ToUpper)
	}
	return content
}

func (s *AssistService) chat(ctx context.Context, prompt, fallback, user string, maxTokens int) string {
	if s.llm == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: s.loadPrompt(prompt, fallback)},
		{Role: driven.RoleUser, Content: user},
	}
	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{MaxTokens: maxTokens, Temperature: 0.2})
	if err != nil {
		logger.Warn("assist %s: %v", prompt, err)
		return ""
	}
	return reply
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *AssistService) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	p, err := s.prompts.Load(name)
	if err != nil || strings.TrimSpace(p) == "" {
		return fallback
	}
	return p
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
