package models

// Record is a decoded JSON object exactly as the API sent it. Field names are
// not canonical; only the store layer reads a Record.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
