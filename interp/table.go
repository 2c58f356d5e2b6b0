package interp

// Entry is the symbol-table record of one declared variable. Value is nil
// until the first assignment.
type Entry struct {
	Name  string
	Type  Type
	Value *Value
}

// Table maps variable names to their declared type and current value.
// Names are kept in declaration order for output.
type Table struct {
	entries map[string]*Entry
	order   []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Declare registers name with type typ and no value. It reports false and
// leaves the table untouched when name is already declared.
func (t *Table) Declare(name string, typ Type) bool {
	if _, exists := t.entries[name]; exists {
		return false
	}
	t.entries[name] = &Entry{Name: name, Type: typ}
	t.order = append(t.order, name)
	return true
}

// Lookup returns the entry for name.
func (t *Table) Lookup(name string) (*Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Get returns the current value of name; ok is false when the name is
// undeclared or has never been assigned.
func (t *Table) Get(name string) (v Value, ok bool) {
	e, found := t.entries[name]
	if !found || e.Value == nil {
		return Value{}, false
	}
	return *e.Value, true
}

// set stores v as the value of a declared name. Type checking is the caller's job.
func (t *Table) set(name string, v Value) {
	val := v
	t.entries[name].Value = &val
}

// Len returns the number of declared variables.
func (t *Table) Len() int { return len(t.order) }

// Names returns the declared names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Bindings returns a copy of every entry in declaration order.
func (t *Table) Bindings() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, name := range t.order {
		e := *t.entries[name]
		if e.Value != nil {
			v := *e.Value
			e.Value = &v
		}
		out = append(out, e)
	}
	return out
}
