package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrCatalogUnreadable is returned when the catalog source cannot be opened or read.
var ErrCatalogUnreadable = errors.New("catalog is not readable")

const (
	fieldID = iota
	fieldName
	fieldPageCount
	fieldAuthorFirstName
	fieldAuthorLastName
	fieldBookType
)

// LogMsgLineSkipped is logged for each catalog line that could not be turned into a book.
const LogMsgLineSkipped = "catalog line skipped"

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Warn(msg string, args ...any)
}

// Option configures the CSV reader.
type Option func(*reader)

// WithLogger sets the logger that reports skipped lines.
func WithLogger(logger Logger) Option {
	return func(r *reader) {
		r.logger = logger
	}
}

type reader struct {
	logger Logger
}

// LoadFile reads the catalog from the file at path.
func LoadFile(path string, options ...Option) ([]circulation.Book, error) {
	file, err := os.Open(path) //nolint:gosec // the path is operator supplied
	if err != nil {
		return nil, errors.Join(ErrCatalogUnreadable, err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file, options...)
}

// ReadCSV reads the catalog from r, in file order.
func ReadCSV(r io.Reader, options ...Option) ([]circulation.Book, error) {
	rd := &reader{}
	for _, option := range options {
		option(rd)
	}

	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	books := make([]circulation.Book, 0)

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rd.skipped(parseErr.StartLine, err.Error())
				continue
			}

			return nil, errors.Join(ErrCatalogUnreadable, err)
		}

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		line, _ := csvReader.FieldPos(0)

		book, ok := bookFrom(record)
		if !ok {
			rd.skipped(line, "id is not an integer")
			continue
		}

		books = append(books, book)
	}

	return books, nil
}

func bookFrom(record []string) (circulation.Book, bool) {
	id, err := strconv.Atoi(field(record, fieldID))
	if err != nil {
		return circulation.Book{}, false
	}

	pageCount, err := strconv.Atoi(field(record, fieldPageCount))
	if err != nil {
		pageCount = 0
	}

	return circulation.Book{
		ID:              id,
		Name:            field(record, fieldName),
		PageCount:       pageCount,
		AuthorFirstName: field(record, fieldAuthorFirstName),
		AuthorLastName:  field(record, fieldAuthorLastName),
		BookType:        field(record, fieldBookType),
	}, true
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func (r *reader) skipped(line int, reason string) {
	if r.logger != nil {
		r.logger.Warn(LogMsgLineSkipped, "line", line, "reason", reason)
	}
}
