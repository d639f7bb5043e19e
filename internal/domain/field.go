package domain

// Field is a tri-state patch value: a field can be left untouched (unset),
// cleared to NULL, or set to a concrete value. Partial updates use Field so
// that "not provided" and "provided as empty" stay distinguishable all the
// way down to the SQL layer.
type Field[T any] struct {
	state fieldState
	value T
}

type fieldState uint8

const (
	fieldUnset fieldState = iota
	fieldClear
	fieldSet
)

// Unset leaves the stored value unchanged.
func Unset[T any]() Field[T] { return Field[T]{} }

// Clear sets the stored value to NULL.
func Clear[T any]() Field[T] { return Field[T]{state: fieldClear} }

// Set replaces the stored value with v.
func Set[T any](v T) Field[T] { return Field[T]{state: fieldSet, value: v} }

func (f Field[T]) IsUnset() bool { return f.state == fieldUnset }
func (f Field[T]) IsClear() bool { return f.state == fieldClear }
func (f Field[T]) IsSet() bool   { return f.state == fieldSet }

// Value returns the set value and true, or the zero value and false when the
// field is unset or cleared.
func (f Field[T]) Value() (T, bool) {
	if f.state != fieldSet {
		var zero T
		return zero, false
	}
	return f.value, true
}

// CampsitePatch is a partial update of a campsite. Every field defaults to
// unset.
type CampsitePatch struct {
	Name        Field[string]
	Description Field[string]
	DateVisited Field[string]
	Rating      Field[int]
	City        Field[string]
	State       Field[string]
	Country     Field[string]
	Notes       Field[string]
	Lat         Field[float64]
	Lng         Field[float64]
}

// IsEmpty reports whether the patch touches no fields at all.
func (p CampsitePatch) IsEmpty() bool {
	return p.Name.IsUnset() && p.Description.IsUnset() && p.DateVisited.IsUnset() &&
		p.Rating.IsUnset() && p.City.IsUnset() && p.State.IsUnset() &&
		p.Country.IsUnset() && p.Notes.IsUnset() && p.Lat.IsUnset() && p.Lng.IsUnset()
}
