package entity

// FactState classifica o resultado da coleta de um fato.
type FactState int

const (
	// FactAbsent means the provider confirmed the fact is not configured or has no data.
	// It is the zero value, so a fact that was never collected reads as absent.
	FactAbsent FactState = iota
	// FactPresent means a value was extracted.
	FactPresent
	// FactFailed means collection failed for a reason other than confirmed absence.
	FactFailed
)

func (s FactState) String() string {
	switch s {
	case FactPresent:
		return "present"
	case FactFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Fact is one independently collected attribute of a resource.
type Fact[T any] struct {
	State FactState
	Value T
	Err   error
}

// Present wraps a collected value.
func Present[T any](v T) Fact[T] {
	return Fact[T]{State: FactPresent, Value: v}
}

// Absent returns a fact the provider reported as not configured.
func Absent[T any]() Fact[T] {
	return Fact[T]{State: FactAbsent}
}

// Failed returns a fact whose collection hit an unexpected error.
func Failed[T any](err error) Fact[T] {
	return Fact[T]{State: FactFailed, Err: err}
}

func (f Fact[T]) IsPresent() bool { return f.State == FactPresent }
func (f Fact[T]) IsAbsent() bool  { return f.State == FactAbsent }
func (f Fact[T]) IsFailed() bool  { return f.State == FactFailed }

// ValueOr devolve o valor quando presente, ou o default caso contrário.
func (f Fact[T]) ValueOr(def T) T {
	if f.State == FactPresent {
		return f.Value
	}
	return def
}
