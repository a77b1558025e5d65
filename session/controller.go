package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	dueDateLayout = "2006-01-02 15:04:05"

	choiceExit          = 0
	choiceAddMember     = 1
	choiceIssueBook     = 2
	choiceReturnBook    = 3
	choiceListBorrowed  = 4
	choiceCalculateFine = 5
	choiceCatalog       = 6
	choiceHistory       = 7

	promptChoice     = "Enter your choice: "
	promptMemberID   = "Enter Member ID: "
	promptMemberName = "Enter Member Name: "
	promptBookID     = "Enter Book ID: "
	promptRetry      = "Invalid input. Please enter a valid integer: "
)

// Store is the part of the record store the session drives. *circulation.Store satisfies it.
type Store interface {
	AddMember(ctx context.Context, memberID int, name string) circulation.Member
	Issue(ctx context.Context, memberID int, bookID int) (circulation.Loan, error)
	Return(ctx context.Context, memberID int, bookID int) (circulation.Book, error)
	ListBorrowed(ctx context.Context, memberID int) ([]string, error)
	ComputeFine(ctx context.Context, memberID int, now time.Time) (int, error)
	FindMember(ctx context.Context, memberID int) (circulation.Member, error)
	ListBookIDs() []int
	Catalog() []circulation.Book
}

// History returns the journaled circulation events of a member. *shell.Recorder satisfies it.
type History interface {
	History(ctx context.Context, memberID int) (core.DomainEvents, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistory enables the circulation history menu entry.
func WithHistory(history History) Option {
	return func(c *Controller) {
		c.history = history
	}
}

// WithClock sets the time source used for fine calculation. A nil clock is ignored.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// Controller runs the menu loop against a Store.
type Controller struct {
	store    Store
	in       io.Reader
	out      io.Writer
	history  History
	clock    func() time.Time
	lines    *lineReader
	writeErr error
}

func New(store Store, in io.Reader, out io.Writer, options ...Option) *Controller {
	c := &Controller{
		store: store,
		in:    in,
		out:   out,
		clock: time.Now,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Run shows the menu and handles choices until the operator exits, the input ends or ctx is done.
// Exit and end of input return nil; cancellation returns the context error.
func (c *Controller) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.lines = newLineReader(ctx, c.in)

	for {
		c.printMenu()

		choice, err := c.readInt(ctx, promptChoice)
		if err != nil {
			return c.finish(err)
		}

		if choice == choiceExit {
			c.println("Exiting the Library System. Goodbye!")
			return c.finish(nil)
		}

		if err := c.handle(ctx, choice); err != nil {
			return c.finish(err)
		}
	}
}

func (c *Controller) handle(ctx context.Context, choice int) error {
	switch choice {
	case choiceAddMember:
		return c.addMember(ctx)
	case choiceIssueBook:
		return c.issueBook(ctx)
	case choiceReturnBook:
		return c.returnBook(ctx)
	case choiceListBorrowed:
		return c.listBorrowed(ctx)
	case choiceCalculateFine:
		return c.calculateFine(ctx)
	case choiceCatalog:
		c.showCatalog()
		return nil
	case choiceHistory:
		if c.history != nil {
			return c.showHistory(ctx)
		}
	}

	c.println("Invalid choice. Please enter a valid option.")

	return nil
}

func (c *Controller) addMember(ctx context.Context) error {
	memberID, err := c.readInt(ctx, promptMemberID)
	if err != nil {
		return err
	}

	c.print(promptMemberName)
	name, err := c.lines.nextNonBlank(ctx)
	if err != nil {
		return err
	}

	member := c.store.AddMember(ctx, memberID, strings.TrimSpace(name))
	c.printf("Member %s added successfully. Member ID: %d\n", member.Name, member.ID)

	return nil
}

func (c *Controller) issueBook(ctx context.Context) error {
	memberID, bookID, err := c.readMemberAndBook(ctx)
	if err != nil {
		return err
	}

	loan, err := c.store.Issue(ctx, memberID, bookID)
	if err != nil {
		c.reportLoanError(err, memberID, bookID)
		return nil
	}

	member, _ := c.store.FindMember(ctx, memberID)
	c.printf("Book %s issued to %s. Due date: %s\n", c.bookName(bookID), member.Name, loan.DueDate.Format(dueDateLayout))

	return nil
}

func (c *Controller) returnBook(ctx context.Context) error {
	memberID, bookID, err := c.readMemberAndBook(ctx)
	if err != nil {
		return err
	}

	book, err := c.store.Return(ctx, memberID, bookID)
	if err != nil {
		c.reportLoanError(err, memberID, bookID)
		return nil
	}

	member, _ := c.store.FindMember(ctx, memberID)
	c.printf("Book %s returned by %s.\n", book.Name, member.Name)

	return nil
}

func (c *Controller) readMemberAndBook(ctx context.Context) (int, int, error) {
	memberID, err := c.readInt(ctx, promptMemberID)
	if err != nil {
		return 0, 0, err
	}

	c.printAvailableBookIDs()

	bookID, err := c.readInt(ctx, promptBookID)
	if err != nil {
		return 0, 0, err
	}

	return memberID, bookID, nil
}

func (c *Controller) reportLoanError(err error, memberID int, bookID int) {
	var alreadyLoaned circulation.BookAlreadyLoanedError

	switch {
	case errors.As(err, &alreadyLoaned):
		c.printf("Book %s is already issued to member %d.\n", c.bookName(bookID), alreadyLoaned.HolderID)
		return
	case errors.Is(err, circulation.ErrLoanNotFound):
		c.print("This book was not issued to the member. ")
	default:
		c.print("Member or book not found. ")
	}

	c.printAvailableBookIDs()
	c.printf("Member ID: %d, Book ID: %d\n", memberID, bookID)
}

func (c *Controller) listBorrowed(ctx context.Context) error {
	memberID, err := c.readInt(ctx, promptMemberID)
	if err != nil {
		return err
	}

	names, err := c.store.ListBorrowed(ctx, memberID)
	if err != nil {
		c.printf("Member not found. Member ID: %d\n", memberID)
		return nil
	}

	member, _ := c.store.FindMember(ctx, memberID)
	c.printf("Books borrowed by %s: %s\n", member.Name, strings.Join(names, ", "))

	return nil
}

func (c *Controller) calculateFine(ctx context.Context) error {
	memberID, err := c.readInt(ctx, promptMemberID)
	if err != nil {
		return err
	}

	fine, err := c.store.ComputeFine(ctx, memberID, c.clock())
	if err != nil {
		c.printf("Member not found. Member ID: %d\n", memberID)
		return nil
	}

	member, _ := c.store.FindMember(ctx, memberID)
	c.printf("Fine for %s: £%d\n", member.Name, fine)

	return nil
}

func (c *Controller) showCatalog() {
	books := c.store.Catalog()
	if len(books) == 0 {
		c.println("The catalog is empty.")
		return
	}

	c.println("Catalog:")
	for _, book := range books {
		c.printf("%d: %s by %s (%d pages, %s)\n", book.ID, book.Name, book.AuthorName(), book.PageCount, book.BookType)
	}
}

func (c *Controller) showHistory(ctx context.Context) error {
	memberID, err := c.readInt(ctx, promptMemberID)
	if err != nil {
		return err
	}

	events, err := c.history.History(ctx, memberID)
	if err != nil {
		c.printf("Circulation history is not available: %v\n", err)
		return nil
	}

	if len(events) == 0 {
		c.printf("No circulation history for Member ID: %d\n", memberID)
		return nil
	}

	c.printf("Circulation history of Member ID: %d\n", memberID)
	for _, event := range events {
		c.printf("%s %s\n", event.HasOccurredAt().Format(dueDateLayout), describeEvent(event))
	}

	return nil
}

func describeEvent(event core.DomainEvent) string {
	switch e := event.(type) {
	case core.MemberRegistered:
		return "registered as " + e.MemberName
	case core.BookIssued:
		return "issued book " + strconv.Itoa(e.BookID) + ", due " + e.DueDate.Format(dueDateLayout)
	case core.BookReturned:
		return "returned book " + strconv.Itoa(e.BookID)
	case core.IssuingBookFailed:
		return "issuing book " + strconv.Itoa(e.BookID) + " failed: " + e.FailureInfo
	case core.ReturningBookFailed:
		return "returning book " + strconv.Itoa(e.BookID) + " failed: " + e.FailureInfo
	default:
		return event.IsEventType()
	}
}

func (c *Controller) bookName(bookID int) string {
	for _, book := range c.store.Catalog() {
		if book.ID == bookID {
			return book.Name
		}
	}

	return strconv.Itoa(bookID)
}

// readInt prompts until the operator enters a valid integer.
func (c *Controller) readInt(ctx context.Context, prompt string) (int, error) {
	c.print(prompt)

	for {
		line, err := c.lines.nextNonBlank(ctx)
		if err != nil {
			return 0, err
		}

		value, err := ParseInt(line)
		if err == nil {
			return value, nil
		}

		c.print(promptRetry)
	}
}

func (c *Controller) printMenu() {
	c.print("\n------ Library System Menu ------\n" +
		"1. Add Member\n" +
		"2. Issue Book\n" +
		"3. Return Book\n" +
		"4. Display Borrowed Books\n" +
		"5. Calculate Fine\n" +
		"6. Display Catalog\n")

	if c.history != nil {
		c.print("7. Display Circulation History\n")
	}

	c.print("0. Exit\n")
}

func (c *Controller) printAvailableBookIDs() {
	ids := c.store.ListBookIDs()

	texts := make([]string, 0, len(ids))
	for _, id := range ids {
		texts = append(texts, strconv.Itoa(id))
	}

	c.printf("Available Book IDs: %s\n", strings.Join(texts, ", "))
}

// finish maps end of input to a regular exit and reports the first write error.
func (c *Controller) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		err = nil
	}

	if err == nil {
		return c.writeErr
	}

	return err
}

func (c *Controller) print(text string) {
	c.printf("%s", text)
}

func (c *Controller) println(text string) {
	c.printf("%s\n", text)
}

func (c *Controller) printf(format string, args ...any) {
	if c.writeErr != nil {
		return
	}

	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.writeErr = err
	}
}
