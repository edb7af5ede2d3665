// Package sqlparse turns SQL statement text into the engine's structured
// operations. It covers exactly the dialect the engine executes: CREATE
// TABLE, CREATE INDEX, INSERT, single-table SELECT/UPDATE/DELETE with an
// equality WHERE.
package sqlparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridsql/gridsql/internal/engine"
	"github.com/gridsql/gridsql/internal/record"
	"github.com/gridsql/gridsql/internal/table"
)

type parser struct {
	toks []token
	pos  int
}

// Parse parses a single SQL statement into a structured operation.
// Policy: statement MUST end with ';'
func Parse(sql string) (engine.Operation, error) {
	s := strings.TrimSpace(sql)
	if s == "" {
		return nil, fmt.Errorf("sqlparse: empty statement")
	}
	if !strings.HasSuffix(s, ";") {
		return nil, fmt.Errorf("sqlparse: missing ';' terminator")
	}

	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}

	var op engine.Operation
	switch {
	case p.acceptKeyword("CREATE"):
		switch {
		case p.acceptKeyword("TABLE"):
			op, err = p.createTable()
		case p.acceptKeyword("INDEX"):
			op, err = p.createIndex()
		default:
			return nil, fmt.Errorf("sqlparse: expected TABLE or INDEX after CREATE")
		}
	case p.acceptKeyword("INSERT"):
		op, err = p.insert()
	case p.acceptKeyword("SELECT"):
		op, err = p.selectStmt()
	case p.acceptKeyword("UPDATE"):
		op, err = p.update()
	case p.acceptKeyword("DELETE"):
		op, err = p.deleteStmt()
	default:
		return nil, fmt.Errorf("sqlparse: unsupported statement %q", p.peek().text)
	}
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("sqlparse: trailing input after ';': %q", p.peek().text)
	}
	return op, nil
}

// CREATE TABLE t (col TYPE [PRIMARY KEY] [NOT NULL], ...)
func (p *parser) createTable() (engine.Operation, error) {
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var cols []record.Column
	for {
		col, err := p.columnDef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.acceptSymbol(",") {
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return engine.CreateTable{Name: name, Columns: cols}, nil
}

func (p *parser) columnDef() (record.Column, error) {
	name, err := p.ident()
	if err != nil {
		return record.Column{}, err
	}
	typName, err := p.ident()
	if err != nil {
		return record.Column{}, err
	}
	typ, err := dataType(typName)
	if err != nil {
		return record.Column{}, err
	}

	col := record.Column{Name: name, Type: typ, Nullable: true}
	for {
		switch {
		case p.acceptKeyword("PRIMARY"):
			if !p.acceptKeyword("KEY") {
				return record.Column{}, fmt.Errorf("sqlparse: expected KEY after PRIMARY")
			}
			col.PrimaryKey = true
			col.Nullable = false
		case p.acceptKeyword("NOT"):
			if !p.acceptKeyword("NULL") {
				return record.Column{}, fmt.Errorf("sqlparse: expected NULL after NOT")
			}
			col.Nullable = false
		default:
			return col, nil
		}
	}
}

// CREATE INDEX [name] ON t (col) — the optional index name is accepted and
// discarded, indexes are addressed by column.
func (p *parser) createIndex() (engine.Operation, error) {
	if !p.keywordIs("ON") && p.peek().kind == tokIdent {
		p.pos++ // index name
	}
	if !p.acceptKeyword("ON") {
		return nil, fmt.Errorf("sqlparse: expected ON in CREATE INDEX")
	}
	tbl, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	col, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return engine.CreateIndex{Table: tbl, Column: col}, nil
}

// INSERT INTO t VALUES (lit, ...)
func (p *parser) insert() (engine.Operation, error) {
	if !p.acceptKeyword("INTO") {
		return nil, fmt.Errorf("sqlparse: expected INTO after INSERT")
	}
	tbl, err := p.ident()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword("VALUES") {
		return nil, fmt.Errorf("sqlparse: expected VALUES")
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	var values record.Row
	for {
		v, err := p.literal()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.acceptSymbol(",") {
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return engine.Insert{Table: tbl, Values: values}, nil
}

// SELECT * | col[, col...] FROM t [WHERE col = lit]
func (p *parser) selectStmt() (engine.Operation, error) {
	var cols []string
	if !p.acceptSymbol("*") {
		for {
			col, err := p.ident()
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
			if p.acceptSymbol(",") {
				continue
			}
			break
		}
	}
	if !p.acceptKeyword("FROM") {
		return nil, fmt.Errorf("sqlparse: expected FROM")
	}
	tbl, err := p.ident()
	if err != nil {
		return nil, err
	}
	filter, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	return engine.Select{Table: tbl, Columns: cols, Filter: filter}, nil
}

// UPDATE t SET col = lit[, col = lit...] WHERE col = lit
func (p *parser) update() (engine.Operation, error) {
	tbl, err := p.ident()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword("SET") {
		return nil, fmt.Errorf("sqlparse: expected SET")
	}

	var assigns []table.Assignment
	for {
		col, err := p.ident()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		v, err := p.literal()
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, table.Assignment{Column: col, Value: v})
		if p.acceptSymbol(",") {
			continue
		}
		break
	}

	filter, err := p.requiredWhere("UPDATE")
	if err != nil {
		return nil, err
	}
	return engine.Update{Table: tbl, Assigns: assigns, Filter: filter}, nil
}

// DELETE FROM t WHERE col = lit
func (p *parser) deleteStmt() (engine.Operation, error) {
	if !p.acceptKeyword("FROM") {
		return nil, fmt.Errorf("sqlparse: expected FROM after DELETE")
	}
	tbl, err := p.ident()
	if err != nil {
		return nil, err
	}
	filter, err := p.requiredWhere("DELETE")
	if err != nil {
		return nil, err
	}
	return engine.Delete{Table: tbl, Filter: filter}, nil
}

func (p *parser) optionalWhere() (*table.Filter, error) {
	if !p.acceptKeyword("WHERE") {
		return nil, nil
	}
	col, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	v, err := p.literal()
	if err != nil {
		return nil, err
	}
	return &table.Filter{Column: col, Value: v}, nil
}

// requiredWhere rejects the statement at parse time when WHERE is absent;
// the table layer enforces the same rule again for structured callers.
func (p *parser) requiredWhere(stmt string) (*table.Filter, error) {
	f, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("sqlparse: %s requires a WHERE clause", stmt)
	}
	return f, nil
}

// literal parses one constant: integer, decimal float, 'text', true/false,
// NULL.
func (p *parser) literal() (record.Value, error) {
	t := p.peek()
	switch t.kind {
	case tokString:
		p.pos++
		return record.Text(t.text), nil
	case tokNumber:
		p.pos++
		if strings.Contains(t.text, ".") {
			f, err := strconv.ParseFloat(t.text, 64)
			if err != nil {
				return record.Value{}, fmt.Errorf("sqlparse: bad float literal %q", t.text)
			}
			return record.Float(f), nil
		}
		i, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return record.Value{}, fmt.Errorf("sqlparse: bad integer literal %q", t.text)
		}
		return record.Integer(i), nil
	case tokIdent:
		switch {
		case strings.EqualFold(t.text, "true"):
			p.pos++
			return record.Boolean(true), nil
		case strings.EqualFold(t.text, "false"):
			p.pos++
			return record.Boolean(false), nil
		case strings.EqualFold(t.text, "null"):
			p.pos++
			return record.Null(), nil
		}
	}
	return record.Value{}, fmt.Errorf("sqlparse: expected literal, got %q", t.text)
}

func dataType(name string) (record.DataType, error) {
	switch strings.ToUpper(name) {
	case "INTEGER", "INT", "BIGINT":
		return record.TypeInteger, nil
	case "FLOAT", "REAL", "DOUBLE":
		return record.TypeFloat, nil
	case "TEXT", "VARCHAR", "STRING":
		return record.TypeText, nil
	case "BOOLEAN", "BOOL":
		return record.TypeBoolean, nil
	default:
		return 0, fmt.Errorf("sqlparse: unknown type %q", name)
	}
}

// ---- token helpers ----

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) keywordIs(kw string) bool {
	t := p.peek()
	return t.kind == tokIdent && strings.EqualFold(t.text, kw)
}

func (p *parser) acceptKeyword(kw string) bool {
	if p.keywordIs(kw) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptSymbol(sym string) bool {
	t := p.peek()
	if t.kind == tokSymbol && t.text == sym {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectSymbol(sym string) error {
	if !p.acceptSymbol(sym) {
		return fmt.Errorf("sqlparse: expected %q, got %q", sym, p.peek().text)
	}
	return nil
}

func (p *parser) ident() (string, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return "", fmt.Errorf("sqlparse: expected identifier, got %q", t.text)
	}
	p.pos++
	return t.text, nil
}
