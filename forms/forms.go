package forms

// Field defines a public type used by authgate APIs.
//
// Field instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Field string

const (
	// FieldEmail is an exported constant or variable used by the authentication engine.
	FieldEmail Field = "email"
	// FieldPassword is an exported constant or variable used by the authentication engine.
	FieldPassword Field = "password"
	// FieldConfirm is an exported constant or variable used by the authentication engine.
	FieldConfirm Field = "confirm"
	// FieldKey is an exported constant or variable used by the authentication engine.
	FieldKey Field = "key"
)

// Item defines a public type used by authgate APIs.
//
// Item instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Item struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// Errors defines a public type used by authgate APIs.
//
// Errors instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Fields and Global stay nil until the first message lands in them. Renderers
// branch on key presence, so an absent map and an absent key both mean
// "no error" and must not be materialized as empty slices.
type Errors struct {
	Fields map[Field][]string `json:"fields,omitempty"`
	Global []string           `json:"global,omitempty"`
}

// Empty reports whether no message landed in any bucket.
func (e Errors) Empty() bool {
	return len(e.Fields) == 0 && len(e.Global) == 0
}

// Append adds one message to the named field bucket, creating the bucket on
// first use and preserving arrival order within it.
func (e *Errors) Append(field Field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[Field][]string, 2)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// AppendGlobal adds one message to the global bucket.
func (e *Errors) AppendGlobal(message string) {
	e.Global = append(e.Global, message)
}

// Normalize describes the normalize operation and its observable behavior.
//
// Normalize may return an error when input validation, dependency calls, or security checks fail.
// Normalize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Every item routes to exactly one bucket: the named field when it is in the
// known set, the global bucket when the item names no param or an unknown one.
// Unknown params are never dropped.
func Normalize(known []Field, items []Item) Errors {
	var out Errors

	for _, item := range items {
		if item.Param != "" && fieldKnown(known, Field(item.Param)) {
			out.Append(Field(item.Param), item.Message)
			continue
		}
		out.AppendGlobal(item.Message)
	}

	return out
}

func fieldKnown(known []Field, f Field) bool {
	for _, k := range known {
		if k == f {
			return true
		}
	}
	return false
}
