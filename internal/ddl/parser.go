package ddl

import (
	"fmt"
	"strings"
)

// Parse splits sqlText into statements and parses the first one as a
// CREATE TABLE. Trailing statements are ignored without warning: validation
// is scoped to a single table. An error is returned when no statement is
// present or the first statement is not a table creation.
func Parse(sqlText string) (*CreateTable, error) {
	stmts := splitStatements(stripComments(sqlText))
	if len(stmts) == 0 {
		return nil, fmt.Errorf("no SQL statement found")
	}
	return parseCreateTable(stmts[0])
}

func parseCreateTable(stmt string) (*CreateTable, error) {
	tokens := strings.Fields(strings.ToUpper(stmt))
	if len(tokens) < 2 || tokens[0] != "CREATE" || tokens[1] != "TABLE" {
		return nil, fmt.Errorf("first statement is not CREATE TABLE")
	}

	openIdx := strings.Index(stmt, "(")
	if openIdx == -1 {
		return nil, fmt.Errorf("CREATE TABLE: missing '('")
	}
	closeIdx := strings.LastIndex(stmt, ")")
	if closeIdx <= openIdx {
		return nil, fmt.Errorf("CREATE TABLE: missing or misplaced ')'")
	}

	head := strings.Fields(strings.TrimSpace(stmt[:openIdx]))
	// head is CREATE TABLE [IF NOT EXISTS] [schema.]name
	if len(head) < 3 {
		return nil, fmt.Errorf("CREATE TABLE: missing table name")
	}
	table := head[len(head)-1]
	if dot := strings.LastIndex(table, "."); dot != -1 {
		table = table[dot+1:]
	}
	table = unquoteIdent(table)

	colsPart := strings.TrimSpace(stmt[openIdx+1 : closeIdx])
	if colsPart == "" {
		return nil, fmt.Errorf("CREATE TABLE: no column definitions")
	}

	var columns []Column
	for _, def := range splitTopLevel(colsPart, ',') {
		def = strings.TrimSpace(def)
		if def == "" {
			continue
		}
		parts := strings.Fields(def)
		if isTableConstraint(parts[0]) {
			continue
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid column definition: %q", def)
		}
		columns = append(columns, Column{
			Name: unquoteIdent(parts[0]),
			Type: declaredType(parts[1:]),
		})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("CREATE TABLE: no valid columns")
	}

	return &CreateTable{Table: table, Columns: columns}, nil
}

// stripComments removes "--" line comments and "/* */" block comments that
// sit outside quoted strings. The terminating newline of a line comment is
// kept and a block comment is replaced by a space, so tokens around a
// comment stay separated.
func stripComments(s string) string {
	var (
		b     strings.Builder
		quote byte
	)
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
			b.WriteByte(ch)
			i++
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
			b.WriteByte(ch)
			i++
		case ch == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case ch == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			if i+1 < len(s) {
				i += 2
			} else {
				i = len(s) // unterminated comment swallows the rest
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// splitStatements splits SQL text on semicolons that sit outside quoted
// strings. Empty fragments (trailing semicolons, blank lines) are dropped.
func splitStatements(s string) []string {
	var (
		out   []string
		start int
		quote rune // active quote char, 0 if none
	)
	for i, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == ';':
			if frag := strings.TrimSpace(s[start:i]); frag != "" {
				out = append(out, frag)
			}
			start = i + 1
		}
	}
	if frag := strings.TrimSpace(s[start:]); frag != "" {
		out = append(out, frag)
	}
	return out
}

// splitTopLevel splits on sep only at parenthesis depth zero and outside
// quotes, so DECIMAL(10,2) stays a single definition.
func splitTopLevel(s string, sep rune) []string {
	var (
		out   []string
		start int
		depth int
		quote rune
	)
	for i, ch := range s {
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"' || ch == '`':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == sep && depth == 0:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// declaredType joins the tokens after the column name up to the first
// column-constraint keyword, keeping multi-word types like DOUBLE PRECISION
// intact.
func declaredType(parts []string) string {
	end := len(parts)
	for i, p := range parts {
		if isColumnConstraint(strings.TrimRight(p, ",")) {
			end = i
			break
		}
	}
	return strings.Join(parts[:end], " ")
}

var tableConstraints = map[string]bool{
	"PRIMARY": true, "FOREIGN": true, "UNIQUE": true, "CONSTRAINT": true,
	"KEY": true, "INDEX": true, "CHECK": true,
}

var columnConstraints = map[string]bool{
	"NOT": true, "NULL": true, "DEFAULT": true, "PRIMARY": true,
	"UNIQUE": true, "REFERENCES": true, "CHECK": true, "COLLATE": true,
	"GENERATED": true, "CONSTRAINT": true, "COMMENT": true,
	"AUTO_INCREMENT": true, "AUTOINCREMENT": true,
}

func isTableConstraint(tok string) bool {
	return tableConstraints[strings.ToUpper(tok)]
}

func isColumnConstraint(tok string) bool {
	return columnConstraints[strings.ToUpper(tok)]
}

// unquoteIdent strips one layer of identifier quoting: "name", `name` or
// [name].
func unquoteIdent(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') ||
			(first == '`' && last == '`') ||
			(first == '[' && last == ']') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
