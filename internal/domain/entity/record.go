package entity

// Record is one flattened report row, ordered like its schema's header.
type Record []string

// Cell is the rendered form of a single fact before the schema resolves absence and failure.
type Cell struct {
	State FactState
	Text  string
}

// TextCell returns a present cell holding text.
func TextCell(text string) Cell {
	return Cell{State: FactPresent, Text: text}
}

// CellOf renders a fact into a cell. Absent and failed facts carry no text;
// the column decides how they are shown.
func CellOf[T any](f Fact[T], render func(T) string) Cell {
	if f.State != FactPresent {
		return Cell{State: f.State}
	}
	return TextCell(render(f.Value))
}

// Column declares one report column: its header name, what to print when the
// fact is absent or failed, and how to extract the fact from the collected set.
type Column[F any] struct {
	Name   string
	Absent string
	// Failed is printed when collection failed. Empty means "same as Absent".
	Failed string
	Value  func(F) Cell
}

// Schema is the single ordered declaration shared by the header and every row.
type Schema[F any] struct {
	Columns []Column[F]
}

// NewSchema cria um schema a partir das colunas, na ordem em que aparecem.
func NewSchema[F any](columns ...Column[F]) Schema[F] {
	return Schema[F]{Columns: columns}
}

// Header returns the column names in declared order.
func (s Schema[F]) Header() []string {
	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c.Name
	}
	return header
}

// Assemble builds a record from collected facts. It never leaves a cell blank
// for a missing fact: absent or failed values fall back to the column defaults.
func (s Schema[F]) Assemble(facts F) Record {
	record := make(Record, len(s.Columns))
	for i, c := range s.Columns {
		var cell Cell
		if c.Value != nil {
			cell = c.Value(facts)
		}
		record[i] = c.resolve(cell)
	}
	return record
}

func (c Column[F]) resolve(cell Cell) string {
	switch cell.State {
	case FactPresent:
		return cell.Text
	case FactFailed:
		if c.Failed != "" {
			return c.Failed
		}
		return c.Absent
	default:
		return c.Absent
	}
}
