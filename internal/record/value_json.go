package record

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// wireValue is the JSON shape of a Value, consumed by the wire server and the
// remote client. Floats travel as their scaled integers.
type wireValue struct {
	Type string `json:"type"`
	Int  int64  `json:"value,omitempty"`
	Str  string `json:"text,omitempty"`
	Bool bool   `json:"flag,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	w := wireValue{}
	switch v.Kind {
	case KindNull:
		w.Type = "null"
	case KindInteger:
		w.Type = "integer"
		w.Int = v.Int
	case KindFloat:
		w.Type = "float"
		w.Int = v.Int
	case KindText:
		w.Type = "text"
		w.Str = v.Str
	case KindBoolean:
		w.Type = "boolean"
		w.Bool = v.Bool
	default:
		return nil, fmt.Errorf("record: unhandled value kind %d", v.Kind)
	}
	return json.Marshal(w)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var w wireValue
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("record: bad value json: %w", err)
	}
	switch w.Type {
	case "null":
		*v = Null()
	case "integer":
		*v = Integer(w.Int)
	case "float":
		*v = FloatScaled(w.Int)
	case "text":
		*v = Text(w.Str)
	case "boolean":
		*v = Boolean(w.Bool)
	default:
		return fmt.Errorf("record: unknown value type %q", w.Type)
	}
	return nil
}
