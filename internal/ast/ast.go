// Package ast defines the typed syntax tree produced by the parser.
//
// Declarations and type references are modelled as tagged variants: a Kind
// field selects which payload fields are meaningful, matched with an
// exhaustive switch in callers rather than an interface hierarchy.
package ast

// Span is a byte-offset range into the source text.
type Span struct {
	Start int
	End   int
}

// File is the root of a parsed TypeSpec document.
type File struct {
	Namespace    string // not set by the parser; namespaces appear as DeclNamespace declarations
	Declarations []Declaration
}

type DeclKind int

const (
	DeclImport DeclKind = iota
	DeclUsing
	DeclNamespace
	DeclModel
	DeclEnum
	DeclUnion
	DeclScalar
	DeclAlias
	DeclInterface
)

// Declaration is a tagged-union top-level (or namespace-nested) item.
type Declaration struct {
	kind DeclKind

	Name       string
	Span       Span
	Decorators []Decorator

	// DeclImport
	ImportPath string

	// DeclUsing
	UsingPath string

	// DeclNamespace
	Namespace *Namespace

	// DeclModel
	Model *Model

	// DeclEnum
	Enum *Enum

	// DeclUnion
	Union *Union

	// DeclScalar
	Scalar *Scalar

	// DeclAlias
	Alias *Alias

	// DeclInterface
	Interface *Interface
}

func (d Declaration) DeclKind() DeclKind { return d.kind }

func NewImport(path string, span Span) Declaration {
	return Declaration{kind: DeclImport, ImportPath: path, Span: span}
}

func NewUsing(path string, span Span) Declaration {
	return Declaration{kind: DeclUsing, UsingPath: path, Span: span}
}

func NewNamespace(n *Namespace, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclNamespace, Name: n.Name, Namespace: n, Decorators: decorators, Span: span}
}

func NewModel(m *Model, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclModel, Name: m.Name, Model: m, Decorators: decorators, Span: span}
}

func NewEnum(e *Enum, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclEnum, Name: e.Name, Enum: e, Decorators: decorators, Span: span}
}

func NewUnion(u *Union, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclUnion, Name: u.Name, Union: u, Decorators: decorators, Span: span}
}

func NewScalar(s *Scalar, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclScalar, Name: s.Name, Scalar: s, Decorators: decorators, Span: span}
}

func NewAlias(a *Alias, span Span) Declaration {
	return Declaration{kind: DeclAlias, Name: a.Name, Alias: a, Span: span}
}

func NewInterface(i *Interface, decorators []Decorator, span Span) Declaration {
	return Declaration{kind: DeclInterface, Name: i.Name, Interface: i, Decorators: decorators, Span: span}
}

// Namespace groups nested model/enum/interface declarations under a dotted
// name. Union, Scalar, and Alias declarations are not valid inside a
// namespace block body, matching the grammar's restricted nested-item set.
type Namespace struct {
	Name         string
	Declarations []Declaration
}

type Model struct {
	Name           string
	TypeParams     []string
	Extends        *TypeRef
	SpreadRefs     []TypeRef
	Properties     []Property
	IsAnonymousEnd bool // true when declared as part of an inline model literal
}

type Property struct {
	Name       string
	Type       TypeRef
	Optional   bool
	Decorators []Decorator
	Span       Span
}

type Enum struct {
	Name    string
	Members []EnumMember
}

// EnumMember.Value is nil when the member has no explicit value; emitters
// then use the member name as its value.
type EnumMember struct {
	Name       string
	Value      *Value
	Decorators []Decorator
}

type Union struct {
	Name     string
	Variants []UnionVariant
}

type UnionVariant struct {
	Name string // "" when the variant is unnamed
	Type TypeRef
}

type Scalar struct {
	Name    string
	Extends string // "" when not extending a builtin
}

type Alias struct {
	Name       string
	TypeParams []string
	Type       TypeRef
}

type Interface struct {
	Name       string
	Extends    []TypeRef
	Operations []Operation
}

type Operation struct {
	Name       string
	Decorators []Decorator
	Params     []OperationParam
	Return     TypeRef
	Span       Span
}

// OperationParam is either a named parameter or a spread of another model's
// properties into the parameter list (Spread != nil).
type OperationParam struct {
	Name       string
	Type       TypeRef
	Optional   bool
	Decorators []Decorator
	Spread     *TypeRef
}

type Decorator struct {
	Name string
	Args []DecoratorArg
	Span Span
}

type DecoratorArg struct {
	Value Value
}

type ValueKind int

const (
	ValString ValueKind = iota
	ValInt
	ValFloat
	ValBool
	ValIdent
	ValQualifiedIdent
	ValArray
	ValObject
)

type Value struct {
	Kind    ValueKind
	Str     string
	Int     int64
	Float   float64
	Bool    bool
	Ident   string
	Parts   []string // qualified ident parts, e.g. TaskStatus.pending
	Array   []Value
	Object  map[string]Value
}

type TypeRefKind int

const (
	TypeNamed TypeRefKind = iota
	TypeGeneric
	TypeArray
	TypeTuple
	TypeLiteral
	TypeAnonymous
	TypeUnionInline // a | b | c appearing inline as a TypeRef (not a named union decl)
)

// TypeRef is a tagged-variant type reference.
type TypeRef struct {
	Kind TypeRefKind
	Span Span

	// TypeNamed / TypeGeneric base name
	Name string

	// TypeGeneric
	TypeArgs []TypeRef

	// TypeArray
	Elem *TypeRef

	// TypeTuple
	Elems []TypeRef

	// TypeLiteral
	Literal *Value

	// TypeAnonymous
	AnonModel *Model

	// TypeUnionInline
	UnionMembers []TypeRef
}
