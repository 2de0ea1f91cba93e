package ron

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports malformed RON input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ron: %s at offset %d", e.Msg, e.Offset)
}

// Unmarshal parses RON data and stores the result in the value pointed to by v.
func Unmarshal(data []byte, v any) error {
	val, err := Parse(data)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("ron: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("ron: %w", err)
	}
	return nil
}

// Parse parses a single RON value into its generic form: structs and maps
// become map[string]any, lists and tuples []any, integers int64, floats
// float64, enum unit variants their name as a string, None nil and Some(x) x.
func Parse(data []byte) (any, error) {
	p := &parser{src: string(data)}
	p.skipSpace()
	p.skipAttributes()
	val, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected trailing data %q", p.peekRune())
	}
	return val, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peekRune() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch {
		case strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexByte(p.src[p.pos:], '\n')
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 1
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if !unicode.IsSpace(r) {
				return
			}
			p.pos += size
		}
	}
}

// skipAttributes skips inner attributes such as #![enable(implicit_some)].
func (p *parser) skipAttributes() {
	for strings.HasPrefix(p.src[p.pos:], "#!") {
		end := strings.IndexByte(p.src[p.pos:], ']')
		if end < 0 {
			return
		}
		p.pos += end + 1
		p.skipSpace()
	}
}

func (p *parser) consume(b byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	c := p.src[p.pos]
	switch {
	case c == '"':
		return p.str()
	case c == 'r' && p.pos+1 < len(p.src) && (p.src[p.pos+1] == '"' || p.src[p.pos+1] == '#'):
		return p.rawStr()
	case c == '\'':
		return p.char()
	case c == '[':
		return p.list()
	case c == '{':
		return p.dict()
	case c == '(':
		return p.group()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(rune(c)):
		return p.identValue()
	}
	return nil, p.errorf("unexpected character %q", p.peekRune())
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isIdentPart(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *parser) identValue() (any, error) {
	name := p.ident()
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		if name == "Some" {
			p.pos++
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			p.consume(',')
			if !p.consume(')') {
				return nil, p.errorf("expected ')' to close Some")
			}
			return v, nil
		}
		return p.group()
	}
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "None":
		return nil, nil
	case "inf":
		return nil, p.errorf("non-finite numbers are not supported")
	}
	return name, nil
}

// group parses a parenthesised struct body, tuple or unit. A tuple with one
// element collapses to that element, matching newtype structs and variants.
func (p *parser) group() (any, error) {
	if !p.consume('(') {
		return nil, p.errorf("expected '('")
	}
	if p.consume(')') {
		return nil, nil
	}
	if p.isFieldStart() {
		fields := make(map[string]any)
		for {
			p.skipSpace()
			if p.consume(')') {
				return fields, nil
			}
			key := p.ident()
			if key == "" {
				return nil, p.errorf("expected field name")
			}
			if !p.consume(':') {
				return nil, p.errorf("expected ':' after field %q", key)
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			fields[key] = v
			if !p.consume(',') {
				if !p.consume(')') {
					return nil, p.errorf("expected ',' or ')' in struct")
				}
				return fields, nil
			}
		}
	}
	var items []any
	for {
		if p.consume(')') {
			break
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if !p.consume(',') {
			if !p.consume(')') {
				return nil, p.errorf("expected ',' or ')' in tuple")
			}
			break
		}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return items, nil
}

// isFieldStart reports whether the parser sits on "ident :".
func (p *parser) isFieldStart() bool {
	p.skipSpace()
	save := p.pos
	defer func() { p.pos = save }()
	if !isIdentStart(p.peekRune()) {
		return false
	}
	p.ident()
	p.skipSpace()
	return p.pos < len(p.src) && p.src[p.pos] == ':'
}

func (p *parser) list() (any, error) {
	p.pos++
	items := make([]any, 0)
	for {
		if p.consume(']') {
			return items, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if !p.consume(',') {
			if !p.consume(']') {
				return nil, p.errorf("expected ',' or ']' in list")
			}
			return items, nil
		}
	}
}

func (p *parser) dict() (any, error) {
	p.pos++
	m := make(map[string]any)
	for {
		if p.consume('}') {
			return m, nil
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, err := mapKey(k)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		if !p.consume(':') {
			return nil, p.errorf("expected ':' in map")
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		m[key] = v
		if !p.consume(',') {
			if !p.consume('}') {
				return nil, p.errorf("expected ',' or '}' in map")
			}
			return m, nil
		}
	}
}

func mapKey(k any) (string, error) {
	switch v := k.(type) {
	case string:
		return v, nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	}
	return "", fmt.Errorf("unsupported map key type %T", k)
}

func (p *parser) str() (any, error) {
	p.pos++
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			r, err := p.escape()
			if err != nil {
				return nil, err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *parser) char() (any, error) {
	p.pos++
	var r rune
	if p.pos < len(p.src) && p.src[p.pos] == '\\' {
		var err error
		if r, err = p.escape(); err != nil {
			return nil, err
		}
	} else {
		var size int
		r, size = utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
	}
	if p.pos >= len(p.src) || p.src[p.pos] != '\'' {
		return nil, p.errorf("unterminated char literal")
	}
	p.pos++
	return string(r), nil
}

func (p *parser) escape() (rune, error) {
	p.pos++
	if p.pos >= len(p.src) {
		return 0, p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case '\\', '"', '\'':
		return rune(c), nil
	case 'u':
		if p.pos >= len(p.src) || p.src[p.pos] != '{' {
			return 0, p.errorf("expected '{' in unicode escape")
		}
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return 0, p.errorf("unterminated unicode escape")
		}
		hex := p.src[p.pos+1 : p.pos+end]
		p.pos += end + 1
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, p.errorf("invalid unicode escape %q", hex)
		}
		return rune(n), nil
	case 'x':
		if p.pos+2 > len(p.src) {
			return 0, p.errorf("short hex escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+2], 16, 8)
		if err != nil {
			return 0, p.errorf("invalid hex escape")
		}
		p.pos += 2
		return rune(n), nil
	}
	return 0, p.errorf("unknown escape '\\%c'", c)
}

func (p *parser) rawStr() (any, error) {
	p.pos++
	hashes := 0
	for p.pos < len(p.src) && p.src[p.pos] == '#' {
		hashes++
		p.pos++
	}
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return nil, p.errorf("expected '\"' in raw string")
	}
	p.pos++
	terminator := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(p.src[p.pos:], terminator)
	if end < 0 {
		return nil, p.errorf("unterminated raw string")
	}
	s := p.src[p.pos : p.pos+end]
	p.pos += end + len(terminator)
	return s, nil
}

func (p *parser) number() (any, error) {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
	}
	rest := strings.ToLower(p.src[p.pos:])
	radix := strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0b")
	if radix {
		p.pos += 2
	}
	isFloat := false
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '_' || (c >= '0' && c <= '9'):
		case radix && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')):
		case !radix && (c == '.' || c == 'e' || c == 'E'):
			isFloat = true
		case !radix && (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E'):
		default:
			return p.parseNumber(start, isFloat)
		}
		p.pos++
	}
	return p.parseNumber(start, isFloat)
}

func (p *parser) parseNumber(start int, isFloat bool) (any, error) {
	text := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", text)}
		}
		return f, nil
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", text)}
	}
	return n, nil
}
