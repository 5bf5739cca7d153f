package codegen

// MultiStatement collects statements that end up either as a single lambda
// expression or as a braced lambda body.
type MultiStatement struct {
	statements []CodeBlock
}

// Add appends a statement, without its trailing semicolon
func (m *MultiStatement) Add(format string, args ...interface{}) *MultiStatement {
	m.statements = append(m.statements, Of(format, args...))
	return m
}

// AddBlock appends a prebuilt statement
func (m *MultiStatement) AddBlock(c CodeBlock) *MultiStatement {
	m.statements = append(m.statements, c)
	return m
}

// AddAll appends the statements of another instance
func (m *MultiStatement) AddAll(o *MultiStatement) *MultiStatement {
	m.statements = append(m.statements, o.statements...)
	return m
}

// IsEmpty reports whether no statement was added
func (m *MultiStatement) IsEmpty() bool {
	return len(m.statements) == 0
}

// IsMulti reports whether a braced body is required
func (m *MultiStatement) IsMulti() bool {
	return len(m.statements) > 1
}

// ToCodeBlock renders each statement on its own line
func (m *MultiStatement) ToCodeBlock() CodeBlock {
	b := NewBuilder()
	for _, s := range m.statements {
		b.AddBlock(s).Add(";\n")
	}
	return b.Build()
}

// ToLambda renders the statements as the body of a lambda whose declaration is
// prefix, e.g. "(bd) ->"
func (m *MultiStatement) ToLambda(prefix string) CodeBlock {
	b := NewBuilder()
	b.Add("$L", prefix)
	if len(m.statements) == 1 {
		b.Add(" ").AddBlock(m.statements[0])
		return b.Build()
	}
	b.Add(" {\n").Indent()
	b.AddBlock(m.ToCodeBlock())
	b.Unindent().Add("}")
	return b.Build()
}
