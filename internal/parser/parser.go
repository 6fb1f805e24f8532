// Package parser implements the recursive-descent parser that turns a
// lexer.Token stream into an ast.File.
package parser

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
	"github.com/adi-family/tsp-gen/internal/lexer"
)

// Error reports an unexpected token during parsing.
type Error struct {
	Span     ast.Span
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d: expected %s, found %s", e.Span.Start, e.Expected, e.Found)
}

// Parse lexes and parses src into a File.
func Parse(src string) (*ast.File, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseFile()
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) peekKind() lexer.Kind { return p.toks[p.pos].Kind }

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k lexer.Kind, desc string) (lexer.Token, error) {
	if p.peekKind() != k {
		return lexer.Token{}, p.errHere(desc)
	}
	return p.advance(), nil
}

func (p *parser) errHere(expected string) error {
	t := p.cur()
	found := tokenDesc(t)
	return &Error{Span: t.Span, Expected: expected, Found: found}
}

func tokenDesc(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "EOF"
	}
	if t.Text != "" {
		return fmt.Sprintf("%q", t.Text)
	}
	return "token"
}

// identLike allows keywords to double as plain identifiers in identifier
// position, per the grammar's keyword/identifier overlap rule.
func identLike(k lexer.Kind) bool {
	switch k {
	case lexer.Ident,
		lexer.KwImport, lexer.KwUsing, lexer.KwNamespace, lexer.KwModel, lexer.KwEnum,
		lexer.KwUnion, lexer.KwScalar, lexer.KwAlias, lexer.KwInterface, lexer.KwExtends,
		lexer.KwOp, lexer.KwTrue, lexer.KwFalse:
		return true
	}
	return false
}

func (p *parser) expectIdent(desc string) (lexer.Token, error) {
	if !identLike(p.peekKind()) {
		return lexer.Token{}, p.errHere(desc)
	}
	return p.advance(), nil
}

func (p *parser) skipSeparators() {
	for p.peekKind() == lexer.Semicolon || p.peekKind() == lexer.Comma {
		p.advance()
	}
}

func (p *parser) parseFile() (*ast.File, error) {
	f := &ast.File{}
	for p.peekKind() != lexer.EOF {
		p.skipSeparators()
		if p.peekKind() == lexer.EOF {
			break
		}
		decl, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		f.Declarations = append(f.Declarations, decl)
	}
	return f, nil
}

func (p *parser) parseDottedName() (string, ast.Span, error) {
	first, err := p.expectIdent("identifier")
	if err != nil {
		return "", ast.Span{}, err
	}
	name := first.Text
	span := first.Span
	for p.peekKind() == lexer.Dot {
		p.advance()
		part, err := p.expectIdent("identifier")
		if err != nil {
			return "", ast.Span{}, err
		}
		name += "." + part.Text
		span.End = part.Span.End
	}
	return name, span, nil
}

func (p *parser) parseTopDecl() (ast.Declaration, error) {
	switch p.peekKind() {
	case lexer.KwImport:
		start := p.advance()
		str, err := p.expect(lexer.StringLit, "string literal")
		if err != nil {
			return ast.Declaration{}, err
		}
		return ast.NewImport(str.Text, ast.Span{Start: start.Span.Start, End: str.Span.End}), nil
	case lexer.KwUsing:
		start := p.advance()
		name, span, err := p.parseDottedName()
		if err != nil {
			return ast.Declaration{}, err
		}
		return ast.NewUsing(name, ast.Span{Start: start.Span.Start, End: span.End}), nil
	default:
		decorators, err := p.parseDecorators()
		if err != nil {
			return ast.Declaration{}, err
		}
		return p.parseDecoratedDecl(decorators)
	}
}

func (p *parser) parseDecorators() ([]ast.Decorator, error) {
	var decs []ast.Decorator
	for p.peekKind() == lexer.Decorator {
		tok := p.advance()
		dec := ast.Decorator{Name: tok.Text, Span: tok.Span}
		if p.peekKind() == lexer.LParen {
			p.advance()
			for p.peekKind() != lexer.RParen {
				val, err := p.parseValue()
				if err != nil {
					return nil, err
				}
				dec.Args = append(dec.Args, ast.DecoratorArg{Value: val})
				if p.peekKind() == lexer.Comma {
					p.advance()
					continue
				}
				break
			}
			end, err := p.expect(lexer.RParen, "')'")
			if err != nil {
				return nil, err
			}
			dec.Span.End = end.Span.End
		}
		decs = append(decs, dec)
	}
	return decs, nil
}

func (p *parser) parseDecoratedDecl(decorators []ast.Decorator) (ast.Declaration, error) {
	switch p.peekKind() {
	case lexer.KwNamespace:
		return p.parseNamespace(decorators)
	case lexer.KwModel:
		return p.parseModel(decorators)
	case lexer.KwEnum:
		return p.parseEnum(decorators)
	case lexer.KwUnion:
		return p.parseUnion(decorators)
	case lexer.KwScalar:
		return p.parseScalar(decorators)
	case lexer.KwAlias:
		return p.parseAlias()
	case lexer.KwInterface:
		return p.parseInterface(decorators)
	default:
		return ast.Declaration{}, p.errHere("namespace, model, enum, union, scalar, alias, or interface")
	}
}

func (p *parser) parseNamespace(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'namespace'
	name, _, err := p.parseDottedName()
	if err != nil {
		return ast.Declaration{}, err
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Declaration{}, err
	}
	ns := &ast.Namespace{Name: name}
	for p.peekKind() != lexer.RBrace {
		p.skipSeparators()
		if p.peekKind() == lexer.RBrace {
			break
		}
		innerDecs, err := p.parseDecorators()
		if err != nil {
			return ast.Declaration{}, err
		}
		var inner ast.Declaration
		switch p.peekKind() {
		case lexer.KwModel:
			inner, err = p.parseModel(innerDecs)
		case lexer.KwEnum:
			inner, err = p.parseEnum(innerDecs)
		case lexer.KwInterface:
			inner, err = p.parseInterface(innerDecs)
		default:
			return ast.Declaration{}, p.errHere("model, enum, or interface")
		}
		if err != nil {
			return ast.Declaration{}, err
		}
		ns.Declarations = append(ns.Declarations, inner)
	}
	end, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.NewNamespace(ns, decorators, ast.Span{Start: start.Span.Start, End: end.Span.End}), nil
}

func (p *parser) parseTypeParams() ([]string, error) {
	if p.peekKind() != lexer.LAngle {
		return nil, nil
	}
	p.advance()
	var params []string
	for p.peekKind() != lexer.RAngle {
		tok, err := p.expectIdent("type parameter")
		if err != nil {
			return nil, err
		}
		params = append(params, tok.Text)
		if p.peekKind() == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RAngle, "'>'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseModel(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'model'
	nameTok, err := p.expectIdent("model name")
	if err != nil {
		return ast.Declaration{}, err
	}
	typeParams, err := p.parseTypeParams()
	if err != nil {
		return ast.Declaration{}, err
	}
	m := &ast.Model{Name: nameTok.Text, TypeParams: typeParams}
	if p.peekKind() == lexer.KwExtends {
		p.advance()
		ref, err := p.parseTypeRef()
		if err != nil {
			return ast.Declaration{}, err
		}
		m.Extends = &ref
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Declaration{}, err
	}
	end, err := p.parseModelBody(m)
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.NewModel(m, decorators, ast.Span{Start: start.Span.Start, End: end}), nil
}

func (p *parser) parseModelBody(m *ast.Model) (int, error) {
	for p.peekKind() != lexer.RBrace {
		p.skipSeparators()
		if p.peekKind() == lexer.RBrace {
			break
		}
		if p.peekKind() == lexer.DotDotDot {
			p.advance()
			ref, err := p.parseTypeRef()
			if err != nil {
				return 0, err
			}
			m.SpreadRefs = append(m.SpreadRefs, ref)
			p.skipSeparators()
			continue
		}
		fieldDecs, err := p.parseDecorators()
		if err != nil {
			return 0, err
		}
		prop, err := p.parseProperty(fieldDecs)
		if err != nil {
			return 0, err
		}
		m.Properties = append(m.Properties, prop)
		p.skipSeparators()
	}
	end, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return 0, err
	}
	return end.Span.End, nil
}

func (p *parser) parseProperty(decorators []ast.Decorator) (ast.Property, error) {
	nameTok, err := p.expectIdent("field name")
	if err != nil {
		return ast.Property{}, err
	}
	optional := false
	if p.peekKind() == lexer.Question {
		p.advance()
		optional = true
	}
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return ast.Property{}, err
	}
	ref, err := p.parseTypeRef()
	if err != nil {
		return ast.Property{}, err
	}
	return ast.Property{
		Name:       nameTok.Text,
		Type:       ref,
		Optional:   optional,
		Decorators: decorators,
		Span:       ast.Span{Start: nameTok.Span.Start, End: ref.Span.End},
	}, nil
}

func (p *parser) parseEnum(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'enum'
	nameTok, err := p.expectIdent("enum name")
	if err != nil {
		return ast.Declaration{}, err
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Declaration{}, err
	}
	e := &ast.Enum{Name: nameTok.Text}
	for p.peekKind() != lexer.RBrace {
		p.skipSeparators()
		if p.peekKind() == lexer.RBrace {
			break
		}
		memberDecs, err := p.parseDecorators()
		if err != nil {
			return ast.Declaration{}, err
		}
		memberTok, err := p.expectIdent("enum member name")
		if err != nil {
			return ast.Declaration{}, err
		}
		member := ast.EnumMember{Name: memberTok.Text, Decorators: memberDecs}
		if p.peekKind() == lexer.Colon {
			p.advance()
			val, err := p.parseValue()
			if err != nil {
				return ast.Declaration{}, err
			}
			member.Value = &val
		}
		e.Members = append(e.Members, member)
		p.skipSeparators()
	}
	end, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.NewEnum(e, decorators, ast.Span{Start: start.Span.Start, End: end.Span.End}), nil
}

func (p *parser) parseUnion(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'union'
	nameTok, err := p.expectIdent("union name")
	if err != nil {
		return ast.Declaration{}, err
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Declaration{}, err
	}
	u := &ast.Union{Name: nameTok.Text}
	for p.peekKind() != lexer.RBrace {
		p.skipSeparators()
		if p.peekKind() == lexer.RBrace {
			break
		}
		variant, err := p.parseUnionVariant()
		if err != nil {
			return ast.Declaration{}, err
		}
		u.Variants = append(u.Variants, variant)
		p.skipSeparators()
	}
	end, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.NewUnion(u, decorators, ast.Span{Start: start.Span.Start, End: end.Span.End}), nil
}

func (p *parser) parseUnionVariant() (ast.UnionVariant, error) {
	// A named variant is `ident ':' type_ref`; disambiguate via lookahead
	// since a bare type_ref can itself start with an identifier.
	if identLike(p.peekKind()) && p.toks[p.pos+1].Kind == lexer.Colon {
		nameTok := p.advance()
		p.advance() // ':'
		ref, err := p.parseTypeRef()
		if err != nil {
			return ast.UnionVariant{}, err
		}
		return ast.UnionVariant{Name: nameTok.Text, Type: ref}, nil
	}
	ref, err := p.parseTypeRef()
	if err != nil {
		return ast.UnionVariant{}, err
	}
	return ast.UnionVariant{Type: ref}, nil
}

func (p *parser) parseScalar(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'scalar'
	nameTok, err := p.expectIdent("scalar name")
	if err != nil {
		return ast.Declaration{}, err
	}
	s := &ast.Scalar{Name: nameTok.Text}
	end := nameTok.Span.End
	if p.peekKind() == lexer.KwExtends {
		p.advance()
		baseTok, err := p.expectIdent("base scalar name")
		if err != nil {
			return ast.Declaration{}, err
		}
		s.Extends = baseTok.Text
		end = baseTok.Span.End
	}
	return ast.NewScalar(s, decorators, ast.Span{Start: start.Span.Start, End: end}), nil
}

func (p *parser) parseAlias() (ast.Declaration, error) {
	start := p.advance() // 'alias'
	nameTok, err := p.expectIdent("alias name")
	if err != nil {
		return ast.Declaration{}, err
	}
	typeParams, err := p.parseTypeParams()
	if err != nil {
		return ast.Declaration{}, err
	}
	if _, err := p.expect(lexer.Equals, "'='"); err != nil {
		return ast.Declaration{}, err
	}
	ref, err := p.parseTypeRef()
	if err != nil {
		return ast.Declaration{}, err
	}
	a := &ast.Alias{Name: nameTok.Text, TypeParams: typeParams, Type: ref}
	return ast.NewAlias(a, ast.Span{Start: start.Span.Start, End: ref.Span.End}), nil
}

func (p *parser) parseInterface(decorators []ast.Decorator) (ast.Declaration, error) {
	start := p.advance() // 'interface'
	nameTok, err := p.expectIdent("interface name")
	if err != nil {
		return ast.Declaration{}, err
	}
	iface := &ast.Interface{Name: nameTok.Text}
	if p.peekKind() == lexer.KwExtends {
		p.advance()
		for {
			ref, err := p.parseTypeRef()
			if err != nil {
				return ast.Declaration{}, err
			}
			iface.Extends = append(iface.Extends, ref)
			if p.peekKind() == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.LBrace, "'{'"); err != nil {
		return ast.Declaration{}, err
	}
	for p.peekKind() != lexer.RBrace {
		p.skipSeparators()
		if p.peekKind() == lexer.RBrace {
			break
		}
		opDecs, err := p.parseDecorators()
		if err != nil {
			return ast.Declaration{}, err
		}
		op, err := p.parseOperation(opDecs)
		if err != nil {
			return ast.Declaration{}, err
		}
		iface.Operations = append(iface.Operations, op)
		p.skipSeparators()
	}
	end, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.NewInterface(iface, decorators, ast.Span{Start: start.Span.Start, End: end.Span.End}), nil
}

func (p *parser) parseOperation(decorators []ast.Decorator) (ast.Operation, error) {
	hasOpKw := p.peekKind() == lexer.KwOp
	var opKwSpan ast.Span
	if hasOpKw {
		opKwSpan = p.advance().Span
	}
	nameTok, err := p.expectIdent("operation name")
	if err != nil {
		return ast.Operation{}, err
	}
	start := nameTok.Span
	if hasOpKw {
		start = opKwSpan
	}
	if _, err := p.expect(lexer.LParen, "'('"); err != nil {
		return ast.Operation{}, err
	}
	var params []ast.OperationParam
	for p.peekKind() != lexer.RParen {
		param, err := p.parseOperationParam()
		if err != nil {
			return ast.Operation{}, err
		}
		params = append(params, param)
		if p.peekKind() == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RParen, "')'"); err != nil {
		return ast.Operation{}, err
	}
	var ret ast.TypeRef
	if p.peekKind() == lexer.Colon {
		p.advance()
		ret, err = p.parseTypeRef()
		if err != nil {
			return ast.Operation{}, err
		}
	} else {
		ret = ast.TypeRef{Kind: ast.TypeNamed, Name: "void"}
	}
	return ast.Operation{
		Name:       nameTok.Text,
		Decorators: decorators,
		Params:     params,
		Return:     ret,
		Span:       ast.Span{Start: start.Start, End: ret.Span.End},
	}, nil
}

func (p *parser) parseOperationParam() (ast.OperationParam, error) {
	if p.peekKind() == lexer.DotDotDot {
		p.advance()
		ref, err := p.parseTypeRef()
		if err != nil {
			return ast.OperationParam{}, err
		}
		return ast.OperationParam{Spread: &ref}, nil
	}
	decorators, err := p.parseDecorators()
	if err != nil {
		return ast.OperationParam{}, err
	}
	nameTok, err := p.expectIdent("parameter name")
	if err != nil {
		return ast.OperationParam{}, err
	}
	optional := false
	if p.peekKind() == lexer.Question {
		p.advance()
		optional = true
	}
	if _, err := p.expect(lexer.Colon, "':'"); err != nil {
		return ast.OperationParam{}, err
	}
	ref, err := p.parseTypeRef()
	if err != nil {
		return ast.OperationParam{}, err
	}
	return ast.OperationParam{
		Name:       nameTok.Text,
		Type:       ref,
		Optional:   optional,
		Decorators: decorators,
	}, nil
}

// parseTypeRef parses a union (pipe) of intersections (amp) of array-suffixed
// atoms, matching the grammar's pipe-then-amp precedence.
func (p *parser) parseTypeRef() (ast.TypeRef, error) {
	first, err := p.parseIntersection()
	if err != nil {
		return ast.TypeRef{}, err
	}
	if p.peekKind() != lexer.Pipe {
		return first, nil
	}
	members := []ast.TypeRef{first}
	for p.peekKind() == lexer.Pipe {
		p.advance()
		next, err := p.parseIntersection()
		if err != nil {
			return ast.TypeRef{}, err
		}
		members = append(members, next)
	}
	return ast.TypeRef{
		Kind:         ast.TypeUnionInline,
		UnionMembers: members,
		Span:         ast.Span{Start: members[0].Span.Start, End: members[len(members)-1].Span.End},
	}, nil
}

// parseIntersection handles '&' composition by folding it into an anonymous
// model that spreads every operand, consistent with the spread-flattening
// semantics used elsewhere in the grammar.
func (p *parser) parseIntersection() (ast.TypeRef, error) {
	first, err := p.parseArraySuffixed()
	if err != nil {
		return ast.TypeRef{}, err
	}
	if p.peekKind() != lexer.Amp {
		return first, nil
	}
	spreads := []ast.TypeRef{first}
	for p.peekKind() == lexer.Amp {
		p.advance()
		next, err := p.parseArraySuffixed()
		if err != nil {
			return ast.TypeRef{}, err
		}
		spreads = append(spreads, next)
	}
	anon := &ast.Model{SpreadRefs: spreads}
	return ast.TypeRef{
		Kind:      ast.TypeAnonymous,
		AnonModel: anon,
		Span:      ast.Span{Start: spreads[0].Span.Start, End: spreads[len(spreads)-1].Span.End},
	}, nil
}

func (p *parser) parseArraySuffixed() (ast.TypeRef, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return ast.TypeRef{}, err
	}
	for p.peekKind() == lexer.LBracket {
		p.advance()
		closeTok, err := p.expect(lexer.RBracket, "']'")
		if err != nil {
			return ast.TypeRef{}, err
		}
		elem := atom
		atom = ast.TypeRef{
			Kind: ast.TypeArray,
			Elem: &elem,
			Span: ast.Span{Start: atom.Span.Start, End: closeTok.Span.End},
		}
	}
	return atom, nil
}

var builtinNames = map[string]bool{
	"string": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "boolean": true, "bytes": true,
	"plainDate": true, "plainTime": true, "utcDateTime": true, "offsetDateTime": true,
	"duration": true, "url": true, "null": true, "void": true, "never": true, "unknown": true,
}

func (p *parser) parseAtom() (ast.TypeRef, error) {
	switch p.peekKind() {
	case lexer.StringLit, lexer.IntLit, lexer.FloatLit, lexer.KwTrue, lexer.KwFalse:
		val, err := p.parseValue()
		if err != nil {
			return ast.TypeRef{}, err
		}
		return ast.TypeRef{Kind: ast.TypeLiteral, Literal: &val, Span: litSpan(val)}, nil
	case lexer.LBrace:
		return p.parseAnonymousModel()
	case lexer.LBracket:
		return p.parseTuple()
	}

	if !identLike(p.peekKind()) {
		return ast.TypeRef{}, p.errHere("type reference")
	}
	name, span, err := p.parseDottedName()
	if err != nil {
		return ast.TypeRef{}, err
	}
	if p.peekKind() == lexer.LAngle {
		p.advance()
		var args []ast.TypeRef
		for p.peekKind() != lexer.RAngle {
			arg, err := p.parseTypeRef()
			if err != nil {
				return ast.TypeRef{}, err
			}
			args = append(args, arg)
			if p.peekKind() == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
		end, err := p.expect(lexer.RAngle, "'>'")
		if err != nil {
			return ast.TypeRef{}, err
		}
		return ast.TypeRef{Kind: ast.TypeGeneric, Name: name, TypeArgs: args, Span: ast.Span{Start: span.Start, End: end.Span.End}}, nil
	}
	_ = builtinNames // builtin-ness is resolved by each emitter's mapping table, not here
	return ast.TypeRef{Kind: ast.TypeNamed, Name: name, Span: span}, nil
}

func (p *parser) parseTuple() (ast.TypeRef, error) {
	start := p.advance() // '['
	var elems []ast.TypeRef
	for p.peekKind() != lexer.RBracket {
		e, err := p.parseTypeRef()
		if err != nil {
			return ast.TypeRef{}, err
		}
		elems = append(elems, e)
		if p.peekKind() == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(lexer.RBracket, "']'")
	if err != nil {
		return ast.TypeRef{}, err
	}
	return ast.TypeRef{Kind: ast.TypeTuple, Elems: elems, Span: ast.Span{Start: start.Span.Start, End: end.Span.End}}, nil
}

func (p *parser) parseAnonymousModel() (ast.TypeRef, error) {
	start := p.advance() // '{'
	m := &ast.Model{IsAnonymousEnd: true}
	end, err := p.parseModelBody(m)
	if err != nil {
		return ast.TypeRef{}, err
	}
	return ast.TypeRef{Kind: ast.TypeAnonymous, AnonModel: m, Span: ast.Span{Start: start.Span.Start, End: end}}, nil
}

func litSpan(v ast.Value) ast.Span { return ast.Span{} }

func (p *parser) parseValue() (ast.Value, error) {
	switch p.peekKind() {
	case lexer.StringLit:
		tok := p.advance()
		return ast.Value{Kind: ast.ValString, Str: tok.Text}, nil
	case lexer.IntLit:
		tok := p.advance()
		var n int64
		fmt.Sscanf(tok.Text, "%d", &n)
		return ast.Value{Kind: ast.ValInt, Int: n}, nil
	case lexer.FloatLit:
		tok := p.advance()
		var f float64
		fmt.Sscanf(tok.Text, "%g", &f)
		return ast.Value{Kind: ast.ValFloat, Float: f}, nil
	case lexer.KwTrue:
		p.advance()
		return ast.Value{Kind: ast.ValBool, Bool: true}, nil
	case lexer.KwFalse:
		p.advance()
		return ast.Value{Kind: ast.ValBool, Bool: false}, nil
	case lexer.LBracket:
		p.advance()
		var arr []ast.Value
		for p.peekKind() != lexer.RBracket {
			v, err := p.parseValue()
			if err != nil {
				return ast.Value{}, err
			}
			arr = append(arr, v)
			if p.peekKind() == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBracket, "']'"); err != nil {
			return ast.Value{}, err
		}
		return ast.Value{Kind: ast.ValArray, Array: arr}, nil
	case lexer.LBrace:
		p.advance()
		obj := map[string]ast.Value{}
		for p.peekKind() != lexer.RBrace {
			keyTok, err := p.expectIdent("object key")
			if err != nil {
				return ast.Value{}, err
			}
			if _, err := p.expect(lexer.Colon, "':'"); err != nil {
				return ast.Value{}, err
			}
			v, err := p.parseValue()
			if err != nil {
				return ast.Value{}, err
			}
			obj[keyTok.Text] = v
			if p.peekKind() == lexer.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBrace, "'}'"); err != nil {
			return ast.Value{}, err
		}
		return ast.Value{Kind: ast.ValObject, Object: obj}, nil
	default:
		if identLike(p.peekKind()) {
			name, _, err := p.parseDottedName()
			if err != nil {
				return ast.Value{}, err
			}
			parts := splitDotted(name)
			if len(parts) > 1 {
				return ast.Value{Kind: ast.ValQualifiedIdent, Parts: parts}, nil
			}
			return ast.Value{Kind: ast.ValIdent, Ident: name}, nil
		}
		return ast.Value{}, p.errHere("literal value")
	}
}

func splitDotted(s string) []string {
	var parts []string
	cur := ""
	for _, c := range s {
		if c == '.' {
			parts = append(parts, cur)
			cur = ""
			continue
		}
		cur += string(c)
	}
	parts = append(parts, cur)
	return parts
}
