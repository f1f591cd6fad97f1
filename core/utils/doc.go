// Package utils provides loose and strict conversions of untyped values, as they
// arrive from option bags, configuration files and database rows.
package utils
