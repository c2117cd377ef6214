package sqlet

import "strconv"

// Row is an owned snapshot of one result row: the row's values plus the
// column-name index shared by every row of the same Select. A Row keeps
// no reference to the cursor that produced it, so it may be retained
// after the sequence advances or ends.
type Row struct {
	values []Value
	index  map[string]int
}

// Column constrains a column selector to a column name or a zero-based
// position.
type Column interface {
	string | int
}

// Convertible is the closed set of static types a Value can be extracted
// into. The pointer forms are the nullable variants: extracting *T from
// SQL NULL succeeds with a nil pointer, and otherwise delegates to T.
type Convertible interface {
	Value | int64 | float64 | string | []byte |
		*Value | *int64 | *float64 | *string | *[]byte
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.values)
}

// Value returns the value at the given zero-based position. The column
// set of a query is fixed and known at the call site, so an out-of-range
// position is a programming error: Value panics rather than returning an
// error. Use TryGet for a recoverable lookup.
func (r Row) Value(position int) Value {
	return r.values[position]
}

// TryGet extracts the value selected by column, a name or a zero-based
// position, into the requested static type. It returns a
// *ConversionError naming the selector when the column does not exist or
// its value's storage class does not convert to T. A type mismatch is
// never papered over with a zero value.
func TryGet[T Convertible, C Column](row Row, column C) (T, error) {
	var zero T

	value, ok := row.resolve(column)
	if !ok {
		return zero, &ConversionError{Column: describeColumn(column)}
	}

	out, ok := convert[T](value)
	if !ok {
		return zero, &ConversionError{Column: describeColumn(column)}
	}
	return out, nil
}

// Get is TryGet for call sites where the column and type are statically
// known to be correct: any extraction failure is a programming error and
// panics with the *ConversionError. Use TryGet to handle failures as
// values.
func Get[T Convertible, C Column](row Row, column C) T {
	out, err := TryGet[T](row, column)
	if err != nil {
		panic(err)
	}
	return out
}

func (r Row) resolve(column any) (Value, bool) {
	switch selector := column.(type) {
	case string:
		i, ok := r.index[selector]
		if !ok {
			return Value{}, false
		}
		return r.values[i], true
	case int:
		if selector < 0 || selector >= len(r.values) {
			return Value{}, false
		}
		return r.values[selector], true
	}
	return Value{}, false
}

func describeColumn(column any) string {
	switch selector := column.(type) {
	case string:
		return selector
	case int:
		return strconv.Itoa(selector)
	}
	return "?"
}

// convert is the extraction table: for each Convertible type it defines
// exactly which storage classes are accepted. Anything else reports
// false.
func convert[T Convertible](value Value) (T, bool) {
	var out T
	switch target := any(&out).(type) {
	case *Value:
		*target = value
	case *int64:
		n, ok := value.Int64()
		if !ok {
			return out, false
		}
		*target = n
	case *float64:
		f, ok := value.Float64()
		if !ok {
			return out, false
		}
		*target = f
	case *string:
		s, ok := value.Text()
		if !ok {
			return out, false
		}
		*target = s
	case *[]byte:
		b, ok := value.Blob()
		if !ok {
			return out, false
		}
		*target = b
	case **Value:
		if value.IsNull() {
			break
		}
		v := value
		*target = &v
	case **int64:
		if value.IsNull() {
			break
		}
		n, ok := value.Int64()
		if !ok {
			return out, false
		}
		*target = &n
	case **float64:
		if value.IsNull() {
			break
		}
		f, ok := value.Float64()
		if !ok {
			return out, false
		}
		*target = &f
	case **string:
		if value.IsNull() {
			break
		}
		s, ok := value.Text()
		if !ok {
			return out, false
		}
		*target = &s
	case **[]byte:
		if value.IsNull() {
			break
		}
		b, ok := value.Blob()
		if !ok {
			return out, false
		}
		*target = &b
	default:
		return out, false
	}
	return out, true
}
