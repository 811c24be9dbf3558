package diamond

// Selection holds the chosen values per filterable field. A field with no
// entry, or an empty entry, selects nothing. Selections are values: With
// returns a new Selection and never touches the receiver.
type Selection struct {
	values map[Field][]string
}

// NewSelection builds a selection from explicit value lists.
func NewSelection(values map[Field][]string) Selection {
	s := Selection{values: make(map[Field][]string, len(values))}
	for f, v := range values {
		s.values[f] = append([]string(nil), v...)
	}
	return s
}

// DefaultSelection selects every distinct value of every field.
func DefaultSelection(d *Dataset) Selection {
	return NewSelection(Options(d))
}

// With replaces the selection of one field.
func (s Selection) With(f Field, values []string) Selection {
	next := Selection{values: make(map[Field][]string, len(s.values)+1)}
	for k, v := range s.values {
		next.values[k] = v
	}
	next.values[f] = append([]string(nil), values...)
	return next
}

// Values returns the selected values of f.
func (s Selection) Values(f Field) []string {
	return append([]string(nil), s.values[f]...)
}

// Contains reports whether v is selected for f.
func (s Selection) Contains(f Field, v string) bool {
	for _, sel := range s.values[f] {
		if sel == v {
			return true
		}
	}
	return false
}

// Restrict drops every value that is not among the options of its field and
// returns the dropped values.
func (s Selection) Restrict(options map[Field][]string) (Selection, []string) {
	var dropped []string
	next := Selection{values: make(map[Field][]string, len(s.values))}
	for f, values := range s.values {
		allowed := make(map[string]bool, len(options[f]))
		for _, o := range options[f] {
			allowed[o] = true
		}
		kept := make([]string, 0, len(values))
		for _, v := range values {
			if allowed[v] {
				kept = append(kept, v)
			} else {
				dropped = append(dropped, string(f)+"="+v)
			}
		}
		next.values[f] = OrderValues(f, kept)
	}
	return next, dropped
}

func (s Selection) set(f Field) map[string]struct{} {
	set := make(map[string]struct{}, len(s.values[f]))
	for _, v := range s.values[f] {
		set[v] = struct{}{}
	}
	return set
}
