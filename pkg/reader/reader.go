// Package reader builds value trees from token streams. Leading quote
// characters accumulate into the quote level of the value they precede.
package reader

import (
	"strconv"

	"github.com/jacksonmowry/lisp/pkg/tokenizer"
	"github.com/jacksonmowry/lisp/pkg/types"
)

type Reader struct {
	pool     *types.Pool
	tokens   []types.Token
	position int
	current  types.Token
}

func New(pool *types.Pool, tokens []types.Token) *Reader {
	r := &Reader{
		pool:   pool,
		tokens: tokens,
	}
	r.readToken()
	return r
}

func (r *Reader) readToken() {
	if r.position >= len(r.tokens) {
		r.current = types.Token{Type: types.TokenType(-1)} // EOF token
	} else {
		r.current = r.tokens[r.position]
	}
	r.position++
}

func (r *Reader) atEOF() bool {
	return r.current.Type == types.TokenType(-1)
}

// Parse tokenizes text and reads a single expression from it. Trailing
// tokens after the expression are an error.
func Parse(pool *types.Pool, text string) (v *types.Value, err error) {
	defer types.RecoverExhausted(&err)

	tokens, err := tokenizer.NewTokenizer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &types.ParseError{Kind: types.ParseEmptyInput, Position: types.Position{Line: 1, Column: 1}}
	}

	r := New(pool, tokens)
	v, err = r.readExpr()
	if err != nil {
		return nil, err
	}

	if !r.atEOF() {
		pool.Deref(v)
		return nil, &types.ParseError{
			Kind:     types.ParseTrailingInput,
			Position: r.current.Position,
		}
	}

	return v, nil
}

// ParseAll tokenizes text and reads every top-level expression in order.
// The caller owns one reference on each returned value.
func ParseAll(pool *types.Pool, text string) (vs []*types.Value, err error) {
	defer types.RecoverExhausted(&err)

	tokens, err := tokenizer.NewTokenizer(text).Tokenize()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &types.ParseError{Kind: types.ParseEmptyInput, Position: types.Position{Line: 1, Column: 1}}
	}

	r := New(pool, tokens)
	var values []*types.Value
	for !r.atEOF() {
		v, err := r.readExpr()
		if err != nil {
			for _, parsed := range values {
				pool.Deref(parsed)
			}
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// readExpr reads one expression: any number of leading quotes followed
// by an atom or a list.
func (r *Reader) readExpr() (*types.Value, error) {
	quotes := 0
	for r.current.Type == types.QUOTE {
		quotes++
		r.readToken()
	}

	v, err := r.readDatum()
	if err != nil {
		return nil, err
	}
	v.Quoted = quotes
	return v, nil
}

func (r *Reader) readDatum() (*types.Value, error) {
	switch r.current.Type {
	case types.NUMBER:
		return r.readNumber()
	case types.STRING:
		v := r.pool.String(r.current.Value)
		r.readToken()
		return v, nil
	case types.SYMBOL:
		// nil reads as the Nil value, so a printed Nil reads back as itself.
		if r.current.Value == "nil" {
			v := r.pool.Nil()
			r.readToken()
			return v, nil
		}
		v := r.pool.Symbol(r.current.Value)
		r.readToken()
		return v, nil
	case types.LPAREN:
		return r.readList()
	case types.RPAREN:
		return nil, &types.ParseError{
			Kind:     types.ParseUnmatchedParen,
			Position: r.current.Position,
		}
	default:
		return nil, &types.ParseError{
			Kind:     types.ParseUnexpectedEOF,
			Position: r.lastPosition(),
		}
	}
}

func (r *Reader) readNumber() (*types.Value, error) {
	f, err := strconv.ParseFloat(r.current.Value, 64)
	if err != nil {
		return nil, &types.ParseError{
			Kind:     types.ParseInvalidNumber,
			Position: r.current.Position,
			Detail:   r.current.Value,
		}
	}
	v := r.pool.Number(f)
	r.readToken()
	return v, nil
}

// readList gathers expressions up to the closing paren into a
// right-nested cons chain terminated in Nil. () is the Nil value.
func (r *Reader) readList() (*types.Value, error) {
	open := r.current.Position
	r.readToken() // consume '('

	var elements []*types.Value
	for r.current.Type != types.RPAREN {
		if r.atEOF() {
			for _, el := range elements {
				r.pool.Deref(el)
			}
			return nil, &types.ParseError{
				Kind:     types.ParseUnexpectedEOF,
				Position: open,
				Detail:   "unterminated list",
			}
		}

		el, err := r.readExpr()
		if err != nil {
			for _, parsed := range elements {
				r.pool.Deref(parsed)
			}
			return nil, err
		}
		elements = append(elements, el)
	}
	r.readToken() // consume ')'

	list := r.pool.Nil()
	for i := len(elements) - 1; i >= 0; i-- {
		list = r.pool.Cons(elements[i], list)
	}
	return list, nil
}

func (r *Reader) lastPosition() types.Position {
	if len(r.tokens) > 0 {
		return r.tokens[len(r.tokens)-1].Position
	}
	return types.Position{Line: 1, Column: 1}
}
