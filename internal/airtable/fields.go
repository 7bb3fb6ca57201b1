package airtable

// Typed accessors into a record's loosely-typed fields map. Airtable
// omits empty fields entirely, so every accessor tolerates absence.

func (r *record) stringField(name string) string {
	if v, ok := r.Fields[name].(string); ok {
		return v
	}
	return ""
}

func (r *record) boolField(name string) bool {
	if v, ok := r.Fields[name].(bool); ok {
		return v
	}
	return false
}

func (r *record) intField(name string) int {
	// JSON numbers decode as float64
	if v, ok := r.Fields[name].(float64); ok {
		return int(v)
	}
	return 0
}

func (r *record) stringSliceField(name string) []string {
	raw, ok := r.Fields[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// attachmentURLField returns the url of the first attachment in an
// attachment-type field, or "" when the field is empty.
func (r *record) attachmentURLField(name string) string {
	raw, ok := r.Fields[name].([]interface{})
	if !ok || len(raw) == 0 {
		return ""
	}
	first, ok := raw[0].(map[string]interface{})
	if !ok {
		return ""
	}
	if u, ok := first["url"].(string); ok {
		return u
	}
	return ""
}
