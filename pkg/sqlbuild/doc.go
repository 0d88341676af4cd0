// Package sqlbuild renders parameterized Postgres fragments from sparse caller input.
//
// Every fragment is returned as a Clause: SQL text carrying $1..$n placeholders and the
// argument slice bound to them by position. Column names never come from the caller; they
// are resolved through a static ColumnMapping and quoted as identifiers.
package sqlbuild
