package dsl

// Parser parses specification text into an AST. Each grammar section is
// driven by a fixed keyword literal and a fixed relative order:
//
//	Context = Type;            (optional)
//	States { A [= Type], ... }
//	InitialState ( A )
//	Events { E [= Type], ... }
//	Transitions { E [ A => B, ... ], ... }
//
// or, in the flat variant, a sequence of `E [ A => B, ... ] { code }?`
// blocks following the Events section with no Transitions{} wrapper.
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

// newParserAt creates a parser over the contents of a captured block,
// with token positions offset into the original input.
func newParserAt(input string, base int) *Parser {
	p := &Parser{lexer: newLexerAt(input, base)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) expect(t TokenType) error {
	if p.cur.Type != t {
		return syntaxErr(ErrUnexpectedToken, p.cur.Pos, "expected %v, got %v", t, p.cur.Type)
	}
	return nil
}

// expectKeyword checks that the current token is the given keyword literal.
func (p *Parser) expectKeyword(name string) error {
	if p.cur.Type != TokenSymbol || p.cur.Literal != name {
		return syntaxErr(ErrExpectedKeyword, p.cur.Pos, "expected %q, got %v %q", name, p.cur.Type, p.cur.Literal)
	}
	p.nextToken()
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Type != TokenSymbol {
		return "", syntaxErr(ErrUnexpectedToken, p.cur.Pos, "expected identifier, got %v", p.cur.Type)
	}
	lit := p.cur.Literal
	p.nextToken()
	return lit, nil
}

// Parse parses the input and returns a MachineNode.
func Parse(input string) (*MachineNode, error) {
	p := NewParser(input)
	return p.parseMachine()
}

func (p *Parser) parseMachine() (*MachineNode, error) {
	node := &MachineNode{}

	// `Context = Type;` (optional)
	if p.cur.Type == TokenSymbol && p.cur.Literal == "Context" {
		ctx, err := p.parseContext()
		if err != nil {
			return nil, err
		}
		node.Context = ctx
	}

	// `States { ... }`
	states, err := p.parseStates()
	if err != nil {
		return nil, err
	}
	node.States = states

	// `InitialState ( ... )`
	initial, err := p.parseInitialState()
	if err != nil {
		return nil, err
	}
	node.Initial = initial

	// `Events { ... }`
	events, err := p.parseEvents()
	if err != nil {
		return nil, err
	}
	node.Events = events

	// Grouped variant: `Transitions { ... }`. Flat variant: bare
	// `EVENT [ ... ] { code }?` blocks until end of input.
	if p.cur.Type == TokenSymbol && p.cur.Literal == "Transitions" {
		p.nextToken()
		if err := p.expect(TokenBlock); err != nil {
			return nil, err
		}
		transitions, err := parseTransitionList(p.cur.Literal, p.cur.Pos+1)
		if err != nil {
			return nil, err
		}
		node.Transitions = transitions
		p.nextToken()
	} else {
		for p.cur.Type != TokenEOF {
			t, err := p.parseTransition()
			if err != nil {
				return nil, err
			}
			node.Transitions = append(node.Transitions, t)
		}
	}

	if p.cur.Type != TokenEOF {
		return nil, syntaxErr(ErrUnexpectedToken, p.cur.Pos, "unexpected trailing %v %q", p.cur.Type, p.cur.Literal)
	}

	return node, nil
}

func (p *Parser) parseContext() (*ContextNode, error) {
	if err := p.expectKeyword("Context"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	p.nextToken()

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	p.nextToken()

	return &ContextNode{Type: typ}, nil
}

func (p *Parser) parseStates() ([]*StateNode, error) {
	if err := p.expectKeyword("States"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenBlock); err != nil {
		return nil, err
	}
	entries, err := parseDeclList(p.cur.Literal, p.cur.Pos+1)
	if err != nil {
		return nil, err
	}
	p.nextToken()

	states := make([]*StateNode, len(entries))
	for i, e := range entries {
		states[i] = &StateNode{Name: e.name, Type: e.typ}
	}
	return states, nil
}

func (p *Parser) parseInitialState() (string, error) {
	if err := p.expectKeyword("InitialState"); err != nil {
		return "", err
	}
	if err := p.expect(TokenLParen); err != nil {
		return "", err
	}
	p.nextToken()

	name, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	if err := p.expect(TokenRParen); err != nil {
		return "", err
	}
	p.nextToken()

	return name, nil
}

func (p *Parser) parseEvents() ([]*EventNode, error) {
	if err := p.expectKeyword("Events"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenBlock); err != nil {
		return nil, err
	}
	entries, err := parseDeclList(p.cur.Literal, p.cur.Pos+1)
	if err != nil {
		return nil, err
	}
	p.nextToken()

	events := make([]*EventNode, len(entries))
	for i, e := range entries {
		events[i] = &EventNode{Name: e.name, Type: e.typ}
	}
	return events, nil
}

// parseTransition parses one `EVENT [ from => to, ... ] { code }?` block.
func (p *Parser) parseTransition() (*TransitionNode, error) {
	event, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	p.nextToken()

	t := &TransitionNode{Event: event}
	for p.cur.Type != TokenRBracket {
		if p.cur.Type != TokenSymbol {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected source state, got %v", p.cur.Type)
		}
		from := p.cur.Literal
		p.nextToken()

		if p.cur.Type != TokenFatArrow {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected '=>', got %v", p.cur.Type)
		}
		p.nextToken()

		if p.cur.Type != TokenSymbol {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected destination state, got %v", p.cur.Type)
		}
		t.Pairs = append(t.Pairs, &PairNode{From: from, To: p.cur.Literal})
		p.nextToken()

		if p.cur.Type == TokenComma {
			p.nextToken()
			continue
		}
		if p.cur.Type != TokenRBracket {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected ',' or ']', got %v", p.cur.Type)
		}
	}
	p.nextToken() // consume ]

	// Optional opaque code block, captured verbatim.
	if p.cur.Type == TokenBlock {
		t.Code = p.cur.Literal
		p.nextToken()
	}

	return t, nil
}

// parseTransitionList parses the contents of a Transitions{...} block:
// comma-separated transition blocks with an optional trailing comma.
func parseTransitionList(input string, base int) ([]*TransitionNode, error) {
	p := newParserAt(input, base)

	var transitions []*TransitionNode
	for p.cur.Type != TokenEOF {
		t, err := p.parseTransition()
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)

		if p.cur.Type == TokenComma {
			p.nextToken()
		}
	}
	return transitions, nil
}

type declEntry struct {
	name string
	typ  string
}

// parseDeclList parses the contents of a States{...} or Events{...} block:
// comma-separated `name` or `name = Type` entries, optional trailing comma.
func parseDeclList(input string, base int) ([]declEntry, error) {
	p := newParserAt(input, base)

	var entries []declEntry
	for p.cur.Type != TokenEOF {
		if p.cur.Type != TokenSymbol {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected identifier, got %v", p.cur.Type)
		}
		entry := declEntry{name: p.cur.Literal}
		p.nextToken()

		if p.cur.Type == TokenAssign {
			p.nextToken()
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			entry.typ = typ
		}
		entries = append(entries, entry)

		if p.cur.Type == TokenComma {
			p.nextToken()
			continue
		}
		if p.cur.Type != TokenEOF {
			return nil, syntaxErr(ErrMalformedList, p.cur.Pos, "expected ',' got %v %q", p.cur.Type, p.cur.Literal)
		}
	}
	return entries, nil
}

// parseType consumes a type expression such as `Door`, `*Door`, `[]byte`,
// `pkg.Type` or `map[string]int` and returns its text.
func (p *Parser) parseType() (string, error) {
	start := p.cur.Pos
	var text string
	depth := 0

	for {
		switch p.cur.Type {
		case TokenSymbol, TokenStar:
			text += p.cur.Literal
		case TokenLBracket:
			depth++
			text += p.cur.Literal
		case TokenRBracket:
			depth--
			text += p.cur.Literal
		default:
			if depth == 0 && text != "" {
				return text, nil
			}
			return "", syntaxErr(ErrMalformedList, p.cur.Pos, "expected type expression starting at position %d", start)
		}
		p.nextToken()
	}
}
