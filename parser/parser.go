// Package parser provides the awl reader.
//
//	expr    := <comment> | <term> | <sexpr> | <qexpr> | <eexpr> | <cexpr>
//	sexpr   := '(' <expr>* ')'
//	qexpr   := '{' <expr>* '}'
//	eexpr   := '\' <expr>
//	cexpr   := '@' <expr>
//	term    := <string> | <number> | <qsymbol> | <symbol>
//	number  := /-?([0-9]+[.][0-9]*|[.][0-9]+|[0-9]+)/
//	string  := '"' <strcontent> '"' | "'" <strcontent> "'"
//	qsymbol := ':' <symbol>
//	symbol  := /[a-zA-Z0-9_+\-*\/=<>!&%^?.]+/
//	comment := ';' /[^\n]*/
//
// The symbols true and false are read as booleans.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
	"github.com/voithos/awl/lisp"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQExpr
	nodeEExpr
	nodeCExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQExpr:   "QEXPR",
	nodeEExpr:   "EEXPR",
	nodeCExpr:   "CEXPR",
}

// SyntaxError is returned when source text cannot be read.
type SyntaxError struct {
	Name   string
	Offset int
}

func (e *SyntaxError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("syntax error at offset %d", e.Offset)
	}
	return fmt.Sprintf("%s: syntax error at offset %d", e.Name, e.Offset)
}

type reader struct{}

// NewReader returns a lisp.Reader for awl source.
func NewReader() lisp.Reader {
	return reader{}
}

func (reader) Read(name string, r io.Reader) ([]lisp.LVal, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, n, err := ParseLVal(text)
	if err != nil {
		return nil, &SyntaxError{Name: name, Offset: n}
	}
	return v, nil
}

// ParseLVal parses LVal values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in parsing.
func ParseLVal(text []byte) ([]lisp.LVal, int, error) {
	var v []lisp.LVal
	var s parsec.Scanner = parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		if lval := getLVal(root); lval != nil {
			if lisp.IsError(lval) {
				return v, s.GetCursor(), lisp.GoError(lval)
			}
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return v, s.GetCursor(), io.ErrUnexpectedEOF
	}
	return v, s.GetCursor(), nil
}

// Parse parses text and returns the single expression it contains.
func Parse(text string) (lisp.LVal, error) {
	v, n, err := ParseLVal([]byte(text))
	if err != nil {
		return nil, &SyntaxError{Offset: n}
	}
	if len(v) != 1 {
		return nil, fmt.Errorf("expected one expression but found %d", len(v))
	}
	return v[0], nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	escape := parsec.Atom(`\`, "ESCAPE")
	splice := parsec.Atom("@", "SPLICE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	str := parsec.Token(`(?:"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*')`, "STRING")
	number := parsec.Token(`-?(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)`, "NUMBER")
	qsymbol := parsec.Token(`:`+symbolPattern, "QSYMBOL")
	symbol := parsec.Token(symbolPattern, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		str,
		number,
		qsymbol,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	qexpr := parsec.And(astNode(nodeQExpr), openB, exprList, closeB)
	eexpr := parsec.And(astNode(nodeEExpr), escape, &expr)
	cexpr := parsec.And(astNode(nodeCExpr), splice, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, qexpr, eexpr, cexpr)
	return expr
}

const symbolPattern = `[a-zA-Z0-9_+\-*/=<>!&%^?.]+`

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return lisp.Errorf("unexpected node: %T", nodes[0])
		}
		return termLVal(term)
	case nodeSExpr:
		// We don't want terminal parsec nodes '(' and ')'
		return lisp.SExpr(lvals(nodes))
	case nodeQExpr:
		return lisp.QExpr(lvals(nodes))
	case nodeEExpr:
		return wrapLVal(nodes, lisp.EExpr)
	case nodeCExpr:
		return wrapLVal(nodes, lisp.CExpr)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func termLVal(term *parsec.Terminal) lisp.LVal {
	switch term.Name {
	case "STRING":
		return lisp.String(unquoteString(term.Value))
	case "NUMBER":
		if strings.Contains(term.Value, ".") {
			f, err := strconv.ParseFloat(term.Value, 64)
			if err != nil {
				return lisp.Errorf("bad number: %v (%s)", err, term.Value)
			}
			return lisp.Float(f)
		}
		x, err := strconv.ParseInt(term.Value, 10, 64)
		if err != nil {
			return lisp.Errorf("bad number: %v (%s)", err, term.Value)
		}
		return lisp.Int(x)
	case "QSYMBOL":
		return lisp.QSymbol(term.Value[1:])
	case "SYMBOL":
		switch term.Value {
		case "true":
			return lisp.Bool(true)
		case "false":
			return lisp.Bool(false)
		}
		return lisp.Symbol(term.Value)
	}
	return lisp.Errorf("unknown token: %s", term.Name)
}

// lvals drops the punctuation and comments in nodes.
func lvals(nodes []parsec.ParsecNode) []lisp.LVal {
	var cells []lisp.LVal
	for _, c := range nodes {
		if v, ok := c.(lisp.LVal); ok {
			cells = append(cells, v)
		}
	}
	return cells
}

func wrapLVal(nodes []parsec.ParsecNode, wrap func(lisp.LVal) *lisp.ExprVal) parsec.ParsecNode {
	cells := lvals(nodes)
	if len(cells) != 1 {
		return lisp.Errorf("escaped expression missing")
	}
	if lisp.IsError(cells[0]) {
		return cells[0]
	}
	return wrap(cells[0])
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only whitespace on a line
		return nil
	}
	lval, ok := nodes[0].(lisp.LVal)
	if !ok {
		// we can be here if there is only a comment on a line
		return nil
	}
	return lval
}

var escapes = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\"`, `"`,
	`\'`, `'`,
)

func unquoteString(s string) string {
	return escapes.Replace(s[1 : len(s)-1])
}

// Incomplete reports whether text ends inside an open list or string, in
// which case more input is needed to complete an expression.
func Incomplete(text []byte) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';':
			j := bytes.IndexByte(text[i:], '\n')
			if j < 0 {
				return depth > 0
			}
			i += j
		case c == '(' || c == '{':
			depth++
		case c == ')' || c == '}':
			depth--
		}
	}
	return depth > 0 || quote != 0
}
