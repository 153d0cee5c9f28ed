package cursor

// Insertion records that Len bytes were inserted at offset At of the
// original text.
type Insertion struct {
	At  int
	Len int
}

// TransformOffset maps an offset in the original text to the text after
// the insertions. An offset moves past every insertion made at or before
// it. Insertions must be sorted by At.
func TransformOffset(offset int, inserts []Insertion) int {
	shift := 0
	for _, ins := range inserts {
		if ins.At > offset {
			break
		}
		shift += ins.Len
	}
	return offset + shift
}

// TransformSelection maps both ends of a selection through the insertions.
func TransformSelection(sel Selection, inserts []Insertion) Selection {
	return sel.Map(func(offset int) int {
		return TransformOffset(offset, inserts)
	})
}
