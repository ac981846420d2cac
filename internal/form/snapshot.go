package form

import (
	"fmt"
	"slices"
)

// Field identifies one tracked control of the form.
type Field int

const (
	FieldText Field = iota
	FieldChoice
	FieldToggle
)

// Fields lists every tracked field in display order.
var Fields = []Field{FieldText, FieldChoice, FieldToggle}

// String returns the control name used on the wire and in scripts.
func (f Field) String() string {
	switch f {
	case FieldText:
		return "textInput"
	case FieldChoice:
		return "radioInput"
	case FieldToggle:
		return "checkboxInput"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Choices are the options of the single-choice selector.
var Choices = []string{"option1", "option2", "option3"}

// ValidChoice reports whether v is one of Choices.
func ValidChoice(v string) bool {
	return slices.Contains(Choices, v)
}

// Snapshot is an immutable record of every tracked field value.
// Snapshots compare with ==.
type Snapshot struct {
	Text   string `json:"textInput" yaml:"textInput" toml:"textInput"`
	Choice string `json:"radioInput" yaml:"radioInput" toml:"radioInput"`
	Toggle bool   `json:"checkboxInput" yaml:"checkboxInput" toml:"checkboxInput"`
}

// Default returns the values a freshly mounted form starts with.
func Default() Snapshot {
	return Snapshot{Choice: Choices[0]}
}

// Equal reports structural equality.
func (s Snapshot) Equal(other Snapshot) bool {
	return s == other
}

// Diff returns the fields whose values differ between s and other.
func (s Snapshot) Diff(other Snapshot) []Field {
	var out []Field
	if s.Text != other.Text {
		out = append(out, FieldText)
	}
	if s.Choice != other.Choice {
		out = append(out, FieldChoice)
	}
	if s.Toggle != other.Toggle {
		out = append(out, FieldToggle)
	}
	return out
}

func (s Snapshot) String() string {
	return fmt.Sprintf("{text:%q choice:%s toggle:%t}", s.Text, s.Choice, s.Toggle)
}

// Merge folds remote into local using base as the common ancestor. A field
// the user changed since base keeps its local value; every other field takes
// the remote value.
func Merge(base, local, remote Snapshot) Snapshot {
	out := local
	if local.Text == base.Text {
		out.Text = remote.Text
	}
	if local.Choice == base.Choice {
		out.Choice = remote.Choice
	}
	if local.Toggle == base.Toggle {
		out.Toggle = remote.Toggle
	}
	return out
}
