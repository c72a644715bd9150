package diff

// OpType identifies the kind of a single diff operation.
type OpType string

const (
	OpAdd    OpType = "add"
	OpRemove OpType = "remove"
	OpChange OpType = "change"
	OpNested OpType = "diff"
	OpSet    OpType = "set"
)

// Op is one operation in a diff tree.
type Op interface {
	Type() OpType
}

// Add records a value present only in the target.
type Add struct {
	NewValue any
}

// Type implements Op.
func (Add) Type() OpType { return OpAdd }

// Remove records a value present only in the source.
type Remove struct {
	OldValue any
}

// Type implements Op.
func (Remove) Type() OpType { return OpRemove }

// Change records a value present on both sides with different content.
// OldValue is informational: the patcher does not check it.
type Change struct {
	OldValue any
	NewValue any
}

// Type implements Op.
func (Change) Type() OpType { return OpChange }

// Nested holds the diff of a nested map field.
type Nested struct {
	Diff *Diff
}

// Type implements Op.
func (Nested) Type() OpType { return OpNested }

// SetDiff holds the difference between two string sets.
type SetDiff struct {
	Added   []string
	Removed []string
}

// Type implements Op.
func (SetDiff) Type() OpType { return OpSet }

// IsEmpty reports whether the set diff adds and removes nothing.
func (s SetDiff) IsEmpty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0
}

func opsEqual(a, b Op, eq func(x, y any) bool) bool {
	switch av := a.(type) {
	case Add:
		bv, ok := b.(Add)
		return ok && eq(av.NewValue, bv.NewValue)
	case Remove:
		bv, ok := b.(Remove)
		return ok && eq(av.OldValue, bv.OldValue)
	case Change:
		bv, ok := b.(Change)
		return ok && eq(av.OldValue, bv.OldValue) && eq(av.NewValue, bv.NewValue)
	case Nested:
		bv, ok := b.(Nested)
		return ok && av.Diff.EqualFunc(bv.Diff, eq)
	case SetDiff:
		bv, ok := b.(SetDiff)
		return ok && setsEqual(av.Added, bv.Added) && setsEqual(av.Removed, bv.Removed)
	default:
		return false
	}
}
