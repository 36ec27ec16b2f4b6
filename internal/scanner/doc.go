// Package scanner finds likely secrets committed to project files.
//
// Lines are checked against a fixed set of patterns (cloud keys, JWTs,
// private key headers, password assignments) and quoted strings are
// checked for high Shannon entropy. Findings carry only a masked preview,
// never the matched text.
package scanner
