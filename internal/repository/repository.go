// Package repository holds the raw SQL for every table. Queries use named
// arguments and scan with pgx.RowToStructByName, so selected column names
// must match the model db tags.
//
// Errors are wrapped with "table:<name>" so sqlerr can name the entity in
// not-found responses.
package repository
