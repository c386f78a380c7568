package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"twstyle/style"
)

// Parser parses utility stylesheets into class rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Compile parses stylesheet and returns its lookup table. Table is always
// usable, returned error (if any) lists everything which was skipped.
func Compile(data []byte, log *zap.Logger, rootFontSize float64, source ...string) (style.Table, error) {
	sheet := NewParser(log).Parse(data, source...)
	return sheet.Table(rootFontSize), sheet.Err()
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	// grouped selectors arrive one by one before the ruleset begins
	var pending []string
	var count int

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			// @media variants are tagged classes resolved at runtime, other
			// blocks have nothing to offer
			atRule := string(data)
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule block", zap.String("rule", atRule))

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			count++

			props := p.parseDeclarations(parser)
			for _, sel := range selectors {
				class, ok := classFromSelector(sel)
				if !ok {
					sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+sel)
					p.log.Debug("Skipping selector", zap.String("selector", sel))
					continue
				}
				// each rule owns its properties
				propsCopy := make(map[string]Value, len(props))
				maps.Copy(propsCopy, props)
				sheet.Rules = append(sheet.Rules, Rule{
					Class:      class,
					Properties: propsCopy,
					SourceLine: count,
				})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			values := trimValue(parser.Values())
			if len(values) > 0 {
				props[strings.ToLower(string(data))] = parsePropertyValue(values)
			}

		case css.CustomPropertyGrammar:
			var sb strings.Builder
			for _, v := range trimValue(parser.Values()) {
				sb.Write(v.Data)
			}
			props[string(data)] = parseCustomValue(strings.TrimSpace(sb.String()))
		}
	}
}

// trimValue removes surrounding whitespace and trailing !important.
func trimValue(tokens []css.Token) []css.Token {
	isSpace := func(t css.Token) bool { return t.TokenType == css.WhitespaceToken }

	for len(tokens) > 0 && isSpace(tokens[0]) {
		tokens = tokens[1:]
	}
	end := len(tokens)
	for end > 0 && isSpace(tokens[end-1]) {
		end--
	}
	if end >= 2 && tokens[end-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[end-1].Data), "important") &&
		tokens[end-2].TokenType == css.DelimToken && string(tokens[end-2].Data) == "!" {
		end -= 2
	}
	for end > 0 && isSpace(tokens[end-1]) {
		end--
	}
	return tokens[:end]
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	val := Value{Raw: normalizeRaw(tokens)}

	if len(tokens) != 1 {
		return val
	}
	switch t := tokens[0]; t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(string(t.Data))
		val.Numeric = val.Unit != ""
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
		val.Numeric = true
	case css.NumberToken:
		var err error
		val.Value, err = strconv.ParseFloat(string(t.Data), 64)
		val.Numeric = err == nil
	}
	return val
}

// normalizeRaw joins value tokens back into text. Whitespace runs collapse to
// a single space and every comma is followed by exactly one space, parser does
// not keep whitespace after commas inside functions.
func normalizeRaw(tokens []css.Token) string {
	var sb strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			pendingSpace = sb.Len() > 0
		case css.CommaToken:
			sb.WriteString(", ")
			pendingSpace = false
		default:
			if pendingSpace && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.Write(t.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// parseCustomValue interprets custom property value. Those are not tokenized
// by the parser, so numbers have to be recognized here.
func parseCustomValue(raw string) Value {
	val := Value{Raw: raw}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		val.Value, val.Numeric = f, true
		return val
	}
	num, unit := parseDimension(raw)
	if unit != "" && strings.IndexFunc(unit, func(r rune) bool { return !unicode.IsLetter(r) && r != '%' }) < 0 {
		val.Value, val.Unit, val.Numeric = num, unit, true
	}
	return val
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		return 0, ""
	}
	return num, strings.ToLower(s[numEnd:])
}

// classFromSelector returns unescaped class name for simple class selectors
// (".text-lg", ".w-1\/2"). Anything else - elements, pseudo classes,
// combinators, compound selectors - is rejected.
func classFromSelector(sel string) (string, bool) {
	rest, found := strings.CutPrefix(sel, ".")
	if !found || len(rest) == 0 {
		return "", false
	}

	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '\\':
			if i+1 >= len(rest) {
				return "", false
			}
			i += unescape(rest[i+1:], &sb)
		case strings.IndexByte(".:#[]>+~*() \t\n", c) >= 0:
			return "", false
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), true
}

// unescape decodes single CSS escape (text after the backslash) into sb and
// returns number of bytes consumed.
func unescape(s string, sb *strings.Builder) int {
	n := 0
	for n < len(s) && n < 6 && isHex(s[n]) {
		n++
	}
	if n == 0 {
		r, size := utf8.DecodeRuneInString(s)
		sb.WriteRune(r)
		return size
	}
	code, _ := strconv.ParseUint(s[:n], 16, 32)
	if code == 0 || code > unicode.MaxRune {
		code = unicode.ReplacementChar
	}
	sb.WriteRune(rune(code))
	// single whitespace terminates hex escape
	if n < len(s) && (s[n] == ' ' || s[n] == '\t' || s[n] == '\n') {
		n++
	}
	return n
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
