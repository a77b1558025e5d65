package circulation

// Book is a catalog entry. Books are immutable once the catalog is loaded.
type Book struct {
	ID              int
	Name            string
	PageCount       int
	AuthorFirstName string
	AuthorLastName  string
	BookType        string
}

// AuthorName returns the author's first and last name separated by a space.
func (b Book) AuthorName() string {
	switch {
	case b.AuthorFirstName == "":
		return b.AuthorLastName
	case b.AuthorLastName == "":
		return b.AuthorFirstName
	default:
		return b.AuthorFirstName + " " + b.AuthorLastName
	}
}
