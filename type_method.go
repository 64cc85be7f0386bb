package costbasis

import "fmt"

// Method defines the accounting method used to pick the lots a disposal
// consumes.
type Method int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO Method = iota
	// LIFO (Last-In, First-Out) consumes the newest lots first.
	LIFO
	// Average collapses all lots into a single lot whose unit cost is the
	// quantity-weighted average of all acquisitions.
	Average
)

// Methods lists all supported methods.
var Methods = []Method{FIFO, LIFO, Average}

func (m Method) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case Average:
		return "avg"
	default:
		return "unknown"
	}
}

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "avg", "average":
		return Average, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

func (m Method) MarshalText() ([]byte, error) {
	if m < FIFO || m > Average {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
