package model

// Keys under which steps record their parameters.
const (
	KeyFlatDepth       = "flat_depth"
	KeyDipLeft         = "dip_left"
	KeyDipRight        = "dip_right"
	KeyFoldShape       = "fold_shape"
	KeyFaultTop        = "fault_top"
	KeyFaultBottom     = "fault_bottom"
	KeyFaultShift      = "fault_shift"
	KeyWaterBottom     = "water_bottom"
	KeyGaussianSaltTop = "gaussian_salt_top"
	KeyGaussianVSalt   = "gaussian_vsalt"
	KeyEllipticCenter  = "elliptic_center"
	KeyEllipticAxes    = "elliptic_ab"
	KeyEllipticVSalt   = "elliptic_vsalt"
)

// History is an append-only provenance log. Each key holds the values
// recorded under it in recording order.
type History struct {
	keys    []string
	entries map[string][]any
}

// NewHistory returns an empty log.
func NewHistory() *History {
	return &History{entries: make(map[string][]any)}
}

// Record appends a copy of value under key.
func (h *History) Record(key string, value any) {
	if _, ok := h.entries[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.entries[key] = append(h.entries[key], cloneValue(value))
}

// Has reports whether anything was recorded under key.
func (h *History) Has(key string) bool {
	return len(h.entries[key]) > 0
}

// Len returns the number of values recorded under key.
func (h *History) Len(key string) int {
	return len(h.entries[key])
}

// Keys returns the recorded keys in first-recorded order.
func (h *History) Keys() []string {
	return append([]string(nil), h.keys...)
}

// All returns a copy of the values recorded under key.
func (h *History) All(key string) []any {
	vals := h.entries[key]
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = cloneValue(v)
	}

	return out
}

// Last returns a copy of the most recent value recorded under key.
func (h *History) Last(key string) (any, bool) {
	vals := h.entries[key]
	if len(vals) == 0 {
		return nil, false
	}

	return cloneValue(vals[len(vals)-1]), true
}

// Snapshot returns a copy of the whole log, suitable for export.
func (h *History) Snapshot() map[string][]any {
	out := make(map[string][]any, len(h.entries))
	for _, k := range h.keys {
		out[k] = h.All(k)
	}

	return out
}

// LastOf returns the most recent value recorded under key if it has type T.
func LastOf[T any](h *History, key string) (T, bool) {
	var zero T
	v, ok := h.Last(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// AllOf returns the values recorded under key that have type T.
func AllOf[T any](h *History, key string) []T {
	out := []T{}
	for _, v := range h.All(key) {
		if typed, ok := v.(T); ok {
			out = append(out, typed)
		}
	}

	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []float64:
		return append([]float64(nil), val...)
	case []int:
		return append([]int(nil), val...)
	case [][]int:
		return CloneRows(val)
	default:
		return v
	}
}
