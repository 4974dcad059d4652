package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"booktracker/internal/database/books"
	"booktracker/internal/entities"
	"booktracker/internal/stats"
)

// BookStore is the persistence surface the books controller needs.
type BookStore interface {
	List(orderBy string) ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	Insert(book *entities.Book) error
	Update(book *entities.Book) error
	Delete(id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// bookRequest carries the editable fields of a book, from either a JSON
// body or an HTML form.
type bookRequest struct {
	Title      string `json:"title" form:"title"`
	Author     string `json:"author" form:"author"`
	ISBN       string `json:"isbn" form:"isbn"`
	TotalPages int    `json:"total_pages" form:"total_pages"`
	Shelf      string `json:"shelf" form:"shelf"`
}

func (r bookRequest) toBook() entities.Book {
	return entities.Book{
		Title:      r.Title,
		Author:     r.Author,
		ISBN:       r.ISBN,
		TotalPages: r.TotalPages,
		Shelf:      entities.Shelf(r.Shelf),
	}
}

// validate rejects input the repository would silently coerce: forms
// and the API report an unknown shelf instead of defaulting it.
func (r bookRequest) validate() error {
	if r.Shelf != "" && !entities.Shelf(r.Shelf).Valid() {
		return errors.New("shelf must be one of: reading, to_read, finished")
	}
	if r.TotalPages < 0 {
		return errors.New("total pages must be zero or positive")
	}
	return nil
}

// --- HTML views ---

// LibraryPage renders the library listing with shelf counts and
// edit/delete forms. The sort column comes from ?sort=.
func (ctrl *BooksController) LibraryPage(c *gin.Context) {
	allBooks, err := ctrl.store.List(c.Query("sort"))
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	counts := stats.ShelfCounts(allBooks)

	c.HTML(http.StatusOK, "library", pageData(c, gin.H{
		"Books":       allBooks,
		"TotalBooks":  len(allBooks),
		"ShelfCounts": counts,
		"Shelves":     entities.Shelves(),
		"Sort":        c.Query("sort"),
	}))
}

// AddBookPage renders the add-book form.
func (ctrl *BooksController) AddBookPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add-book", pageData(c, gin.H{
		"Shelves": entities.Shelves(),
	}))
}

// CreateBook handles the add-book form post.
func (ctrl *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/books/new", "Invalid form input.")
		return
	}
	if err := req.validate(); err != nil {
		redirectWithError(c, "/books/new", err.Error())
		return
	}

	book := req.toBook()
	if err := ctrl.store.Insert(&book); err != nil {
		if errors.Is(err, books.ErrInvalidBook) {
			redirectWithError(c, "/books/new", "Title and Author are required.")
			return
		}
		redirectWithError(c, "/books/new", "Could not save the book.")
		return
	}

	redirectWithMessage(c, "/", "Added \""+book.Title+"\".")
}

// UpdateBook handles the edit form post from the library page.
func (ctrl *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithError(c, "/", "Invalid form input.")
		return
	}
	if err := req.validate(); err != nil {
		redirectWithError(c, "/", err.Error())
		return
	}

	book := req.toBook()
	book.ID = id
	if err := ctrl.store.Update(&book); err != nil {
		if errors.Is(err, books.ErrInvalidBook) {
			redirectWithError(c, "/", "Title and Author are required.")
			return
		}
		redirectWithError(c, "/", "Could not update the book.")
		return
	}

	redirectWithMessage(c, "/", "Book updated.")
}

// DeleteBook handles the delete form post. Deleting a book also removes
// all of its sessions.
func (ctrl *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.store.Delete(id); err != nil {
		redirectWithError(c, "/", "Could not delete the book.")
		return
	}

	redirectWithMessage(c, "/", "Book removed.")
}

// --- JSON API ---

// ListBooks returns all books, sorted by ?sort= (title, author,
// added_at or shelf).
func (ctrl *BooksController) ListBooks(c *gin.Context) {
	allBooks, err := ctrl.store.List(c.Query("sort"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": allBooks, "count": len(allBooks)})
}

// CreateBookJSON inserts a book from a JSON body.
func (ctrl *BooksController) CreateBookJSON(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := req.toBook()
	if err := ctrl.store.Insert(&book); err != nil {
		if errors.Is(err, books.ErrInvalidBook) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	respondCreated(c, book)
}

// UpdateBookJSON rewrites a book's editable fields from a JSON body.
func (ctrl *BooksController) UpdateBookJSON(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := req.toBook()
	book.ID = id
	if err := ctrl.store.Update(&book); err != nil {
		if errors.Is(err, books.ErrInvalidBook) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	updated, err := ctrl.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "reload book")
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

// DeleteBookJSON removes a book and its sessions.
func (ctrl *BooksController) DeleteBookJSON(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctrl.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	if err := ctrl.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, "book deleted ("+strconv.FormatUint(uint64(id), 10)+")")
}
