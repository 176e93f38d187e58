package dialogue

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ParseErrorKind names the documented parser failure modes.
type ParseErrorKind string

const (
	EmptyScript   ParseErrorKind = "empty_script"
	NoTurnsFound  ParseErrorKind = "no_turns_found"
	MalformedLine ParseErrorKind = "malformed_line"
)

// ParseError reports why a generated script could not be parsed.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Message)
}

// stageDirectionRe matches bracketed cues like [laughs] which must not
// reach the speech synthesizer.
var stageDirectionRe = regexp.MustCompile(`\[[^\]]*\]`)

// Parser converts raw generated dialogue text into an ordered turn sequence.
//
// Continuation policy: a non-blank line that does not start with a recognized
// speaker label is appended to the current turn's text. Lines appearing before
// the first recognized label (model preamble) are ignored.
type Parser struct {
	logger  *zap.Logger
	labelRe *regexp.Regexp
	labels  map[string]Speaker
}

// NewParser creates a parser recognizing the two speakers by name.
// Canonical aliases ("Person A", "Host A") are always accepted so scripts
// keep parsing when the model falls back to the prompt example format.
// Label matching is case-insensitive; identity resolution is deterministic.
func NewParser(speakerA, speakerB string, logger *zap.Logger) *Parser {
	labels := map[string]Speaker{
		"person a": HostA,
		"person b": HostB,
		"host a":   HostA,
		"host b":   HostB,
		"hosta":    HostA,
		"hostb":    HostB,
		"a":        HostA,
		"b":        HostB,
	}
	if speakerA != "" {
		labels[strings.ToLower(speakerA)] = HostA
	}
	if speakerB != "" {
		labels[strings.ToLower(speakerB)] = HostB
	}

	alternatives := make([]string, 0, len(labels))
	for label := range labels {
		alternatives = append(alternatives, regexp.QuoteMeta(label))
	}

	// Models occasionally bold the label ("**Person A:** ...") or emit a
	// full-width colon.
	pattern := fmt.Sprintf(`(?i)^\s*\*{0,2}(%s)\*{0,2}\s*[:：]\s*(.*)$`, strings.Join(alternatives, "|"))

	return &Parser{
		logger:  logger,
		labelRe: regexp.MustCompile(pattern),
		labels:  labels,
	}
}

// Parse splits raw dialogue text into speaker turns, preserving source order.
// A recognized label with an empty utterance is dropped rather than kept as
// an empty turn.
func (p *Parser) Parse(raw string) ([]Turn, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Kind: EmptyScript, Message: "script text is empty"}
	}

	var (
		turns     []Turn
		current   *Turn
		unmatched int
	)

	flush := func() {
		if current == nil {
			return
		}
		text := cleanUtterance(current.Text)
		if text != "" {
			turns = append(turns, Turn{Speaker: current.Speaker, Text: text})
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := p.labelRe.FindStringSubmatch(line); m != nil {
			flush()
			speaker := p.labels[strings.ToLower(m[1])]
			current = &Turn{Speaker: speaker, Text: m[2]}
			continue
		}

		// Continuation of the current turn, or preamble before the first label.
		if current != nil {
			current.Text += " " + line
		} else {
			unmatched++
		}
	}
	flush()

	if len(turns) == 0 {
		return nil, &ParseError{Kind: NoTurnsFound, Message: "no recognized speaker labels in script"}
	}

	p.logger.Debug("script parsed",
		zap.Int("turns", len(turns)),
		zap.Int("ignored_preamble_lines", unmatched))

	return turns, nil
}

// cleanUtterance strips stage directions and normalizes whitespace.
func cleanUtterance(text string) string {
	text = stageDirectionRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
