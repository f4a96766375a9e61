package store

import "errors"

// Sentinel errors returned by document stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when no document with the requested id
	// exists in the collection.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrDocumentExists is returned when a document is created with a
	// caller-supplied id that is already taken in the collection.
	ErrDocumentExists = errors.New("document already exists")

	// ErrRevisionConflict is returned when an optimistic-locking check fails:
	// the revision supplied with an update does not match the stored one,
	// meaning another writer modified the document in between.
	ErrRevisionConflict = errors.New("document revision conflict occurred")

	// ErrInvalidFieldPath is returned when a filter or sort field is not a
	// dotted identifier path.
	ErrInvalidFieldPath = errors.New("invalid document field path")

	// ErrInvalidCollection is returned for an empty or malformed collection name.
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrInvalidDocumentID is returned for an id that cannot be stored safely.
	ErrInvalidDocumentID = errors.New("invalid document id")

	// ErrMissingParentID is returned when a document of a nested collection
	// (for example a submission) does not carry the id of its parent form.
	ErrMissingParentID = errors.New("document has no parent id")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL store when a statement fails before any document logic applies.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan document row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan document rows")
)

// Encoding and file system errors shared by the file store and the upload stores.
var (
	// ErrEncodingDocument is returned when a document cannot be marshaled to JSON.
	ErrEncodingDocument = errors.New("failed to encode document")

	// ErrDecodingDocument is returned when stored bytes are not a JSON object.
	ErrDecodingDocument = errors.New("failed to decode document")

	// ErrReadingFile is returned when a stored file cannot be read.
	ErrReadingFile = errors.New("failed to read file")

	// ErrWritingFile is returned when a file cannot be written or renamed
	// into place.
	ErrWritingFile = errors.New("failed to write file")

	// ErrRemovingFile is returned when a stored file cannot be deleted.
	ErrRemovingFile = errors.New("failed to remove file")

	// ErrInvalidUploadPath is returned when asked to remove a path outside
	// the upload root.
	ErrInvalidUploadPath = errors.New("invalid upload path")
)
