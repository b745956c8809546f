package store

import "sort"

// TOTPField holds an otpauth:// URI for one-time codes.
const TOTPField = "totpurl"

// primaryFields are shown before any other field, in this order.
var primaryFields = []string{"login", "username", "password"}

// Record is a named set of secret fields.
type Record struct {
	Name   string
	Fields map[string]string
}

// Field is a single key/value pair of a Record.
type Field struct {
	Key   string
	Value string
}

// Get returns the value of a field.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// TOTPURL returns the record's otpauth URI, if any.
func (r *Record) TOTPURL() string {
	return r.Fields[TOTPField]
}

// Ordered returns the fields with login, username and password first,
// followed by the remaining fields sorted by key.
func (r *Record) Ordered() []Field {
	fields := make([]Field, 0, len(r.Fields))
	seen := make(map[string]bool, len(primaryFields))

	for _, key := range primaryFields {
		if v, ok := r.Fields[key]; ok {
			fields = append(fields, Field{Key: key, Value: v})
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(r.Fields))
	for key := range r.Fields {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fields = append(fields, Field{Key: key, Value: r.Fields[key]})
	}
	return fields
}

func copyFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
