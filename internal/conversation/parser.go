// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// Page payloads understood by the engine's pager.
const (
	PageNext = "next"
	PagePrev = "prev"
)

// KeywordParser matches user input to commands using keywords and simple
// patterns. Spoken transcripts go through the same rules as typed input.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
	payload string // fixed payload; when empty the first capture group is used
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regex: regexp.MustCompile(`(?i)^(?:search|find|look for)\s+(.+)$`), command: domain.CommandSearch},
		{regex: regexp.MustCompile(`(?i)^(?:open|get)\s+(\S+)$`), command: domain.CommandOpenRecipe},
		{regex: regexp.MustCompile(`(?i)^(?:select|pick)\s+(\d{1,3})$`), command: domain.CommandSelectResult},
		{regex: regexp.MustCompile(`(?i)^page\s+(\d+)$`), command: domain.CommandPage},
		{regex: regexp.MustCompile(`(?i)^(?:next(?: page)?|>)$`), command: domain.CommandPage, payload: PageNext},
		{regex: regexp.MustCompile(`(?i)^(?:prev(?:ious)?(?: page)?|back|<)$`), command: domain.CommandPage, payload: PagePrev},
		{regex: regexp.MustCompile(`(?i)^(?:more|\+|inc|increase|bigger)$`), command: domain.CommandIncreaseServings},
		{regex: regexp.MustCompile(`(?i)^(?:less|-|dec|decrease|smaller)$`), command: domain.CommandDecreaseServings},
		{regex: regexp.MustCompile(`(?i)^(?:servings|serves|for)\s+(\d+)(?:\s+people)?$`), command: domain.CommandSetServings},
		{regex: regexp.MustCompile(`(?i)^(?:add|shop|add to list|add to (?:the )?shopping list)$`), command: domain.CommandAddToList},
		{regex: regexp.MustCompile(`(?i)^(?:list|shopping|shopping list|cart)$`), command: domain.CommandShowList},
		{regex: regexp.MustCompile(`(?i)^(?:remove|del|delete|rm)\s+(\S+)$`), command: domain.CommandDeleteItem},
		{regex: regexp.MustCompile(`(?i)^(?:set|count)\s+(\S+\s+\S.*)$`), command: domain.CommandUpdateCount},
		{regex: regexp.MustCompile(`(?i)^(?:like|love|fav|favorite|favourite|unlike)$`), command: domain.CommandToggleFavorite},
		{regex: regexp.MustCompile(`(?i)^(?:likes|favorites|favourites|favs)$`), command: domain.CommandShowFavorites},
		{regex: regexp.MustCompile(`(?i)^(?:recipe|show|ingredients)$`), command: domain.CommandShowRecipe},
		{regex: regexp.MustCompile(`(?i)^export\s+(\S+)$`), command: domain.CommandExport},
		{regex: regexp.MustCompile(`(?i)^(?:read|read it|read aloud|say it)$`), command: domain.CommandReadAloud},
		{regex: regexp.MustCompile(`(?i)^(?:help|h|\?)$`), command: domain.CommandHelp},
		{regex: regexp.MustCompile(`(?i)^(?:quit|exit|q|bye)$`), command: domain.CommandQuit},
	}
	return p
}

// Parse converts user input into a command. Input that matches nothing comes
// back as CommandUnknown carrying the trimmed text.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number picks a result on the current page.
	if len(trimmed) <= 3 && isDigits(trimmed) {
		return &domain.Command{Type: domain.CommandSelectResult, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", rule.command)
		payload := rule.payload
		if payload == "" && len(m) > 1 {
			payload = strings.TrimSpace(m[1])
		}
		return &domain.Command{Type: rule.command, Payload: payload}, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
