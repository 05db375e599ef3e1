// Package types provides core data types for the showtimes search service.
package types

// EventNameField is the record attribute searched by name.
const EventNameField = "eventName"

// Record is one item of the showtimes table: a mapping from attribute name to
// its decoded value. Records are owned by the table; the service only reads them.
type Record map[string]interface{}

// EventName returns the record's eventName attribute.
// A missing or non-string attribute yields the empty string.
func (r Record) EventName() string {
	name, _ := r[EventNameField].(string)
	return name
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
