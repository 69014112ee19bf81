package parser

import (
	"regexp"
	"strings"

	"emojidb/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type LineKind int

const (
	LineNone LineKind = iota
	LineEmoji
	LineVersion
	LineDate
)

func (k LineKind) String() string {
	switch k {
	case LineEmoji:
		return "emoji"
	case LineVersion:
		return "version"
	case LineDate:
		return "date"
	default:
		return "none"
	}
}

// Line is the result of parsing one source line. Emoji is set for LineEmoji,
// Value for LineVersion and LineDate.
type Line struct {
	Kind  LineKind
	Emoji models.Emoji
	Value string
}

var (
	// 2764 FE0F 200D 1F525 ; fully-qualified # ❤️‍🔥 E13.1 heart on fire
	reDataLine = regexp.MustCompile(
		`^\s*([0-9A-Fa-f]+(?:\s+[0-9A-Fa-f]+)*)\s*;\s+(\S+)\s+#\s*(\S+)\s+E(\d+(?:\.\d+)*)(?:\s+(.*))?$`,
	)
	reVersion = regexp.MustCompile(`^#+\s*Version:\s*(.*)$`)
	reDate    = regexp.MustCompile(`^#+\s*Date:\s*(.*)$`)
)

// Parser turns emoji-test.txt lines into records. It holds a title caser and
// is not safe for concurrent use.
type Parser struct {
	caser cases.Caser
}

func NewParser() *Parser {
	return &Parser{caser: cases.Title(language.Und)}
}

// ParseLine parses a single line with a throwaway Parser.
func ParseLine(line string) (Line, error) {
	return NewParser().ParseLine(line)
}

// ParseLine classifies line. Lines that are neither data nor metadata yield
// LineNone without an error; only an unknown status literal fails.
func (p *Parser) ParseLine(line string) (Line, error) {
	// Comments contain a '#' separator too, reject them before the data grammar.
	if !strings.HasPrefix(line, "#") {
		if m := reDataLine.FindStringSubmatch(line); m != nil {
			e, err := p.emojiFromMatch(m)
			if err != nil {
				return Line{}, err
			}
			return Line{Kind: LineEmoji, Emoji: e}, nil
		}
	}
	if m := reVersion.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineVersion, Value: strings.TrimSpace(m[1])}, nil
	}
	if m := reDate.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineDate, Value: strings.TrimSpace(m[1])}, nil
	}
	return Line{}, nil
}

// ParseRecord is the strict form of ParseLine for callers that expect a data line.
func (p *Parser) ParseRecord(line string) (models.Emoji, error) {
	l, err := p.ParseLine(line)
	if err != nil {
		return models.Emoji{}, err
	}
	if l.Kind != LineEmoji {
		return models.Emoji{}, ErrMalformedLine
	}
	return l.Emoji, nil
}

// TitleCase applies the description casing used by the parser.
func (p *Parser) TitleCase(s string) string {
	return p.caser.String(strings.TrimSpace(s))
}

func (p *Parser) emojiFromMatch(m []string) (models.Emoji, error) {
	status, err := models.ParseEmojiStatus(m[2])
	if err != nil {
		return models.Emoji{}, &UnknownStatusError{Token: m[2]}
	}
	return models.Emoji{
		Char:        m[3],
		Codes:       strings.Fields(m[1]),
		Status:      status,
		Description: p.TitleCase(m[5]),
		Version:     m[4],
	}, nil
}
