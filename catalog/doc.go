// Package catalog loads the book catalog from a comma separated file.
//
// Each line holds one book: id, name, pageCount, authorFirstName, authorLastName, bookType.
// Parsing is best-effort: lines without an integer id are skipped, a page count that is not
// an integer becomes 0, missing trailing fields stay empty and extra fields are ignored.
//
// The Postgres alternative lives in the postgrescatalog subpackage.
package catalog
