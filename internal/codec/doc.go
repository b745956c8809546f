// Package codec converts secret field tables to and from TOML text.
//
// A secret's plaintext is a flat TOML document of string keys and string
// values:
//
//	login = "me@example.com"
//	password = "hunter2"
//	totpurl = "otpauth://totp/Example?secret=JBSWY3DPEHPK3PXP"
//
// Keys are written in sorted order. Nested tables and non-string values are
// rejected on decode with errors.ErrFormat.
package codec
