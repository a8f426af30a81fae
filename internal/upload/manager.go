package upload

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/job-intake/backend/internal/models"
)

const (
	// DefaultMaxFileSize caps each staged file part.
	DefaultMaxFileSize int64 = 50 << 20
	// DefaultMaxFieldSize caps each text field value.
	DefaultMaxFieldSize int64 = 1 << 20

	defaultMimeType = "application/octet-stream"
	defaultEncoding = "7bit"
)

// Limits bounds what a single submission may carry.
type Limits struct {
	MaxFileSize  int64
	MaxFieldSize int64
	// Fields maps each accepted file field to its maximum file count.
	Fields map[string]int
}

// DefaultLimits returns the limits used for application submissions.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:  DefaultMaxFileSize,
		MaxFieldSize: DefaultMaxFieldSize,
		Fields:       DefaultFieldLimits(),
	}
}

// Store defines the interface needed from the staging layer.
type Store interface {
	Save(name string, r io.Reader) (*models.StagedFile, error)
	Remove(id string) error
	Dir() string
}

// Result is the outcome of a successfully processed submission.
type Result struct {
	Fields map[string][]string
	Files  map[string][]models.UploadedFile
}

// Manager validates and stages multipart submissions.
type Manager struct {
	store  Store
	limits Limits
}

// NewManager creates a new submission processor.
func NewManager(store Store, limits Limits) *Manager {
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = DefaultMaxFileSize
	}
	if limits.MaxFieldSize <= 0 {
		limits.MaxFieldSize = DefaultMaxFieldSize
	}
	if limits.Fields == nil {
		limits.Fields = DefaultFieldLimits()
	}
	return &Manager{store: store, limits: limits}
}

// Process streams the multipart body of r. Every file part is checked against
// the field limits and the type policy before any of its bytes are staged. If
// any part is rejected, files already staged for the request are removed and
// the error is returned; no partial result is produced.
//
// A request that is not multipart carries no fields and no files.
func (m *Manager) Process(r *http.Request) (*Result, error) {
	result := &Result{
		Fields: make(map[string][]string),
		Files:  make(map[string][]models.UploadedFile),
	}

	mr, err := r.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		return result, nil
	}
	if err != nil {
		return nil, &Error{Code: CodeMalformed, Message: "Malformed multipart body", Err: err}
	}

	p := &pass{Manager: m, ctx: r.Context(), result: result, counts: make(map[string]int)}
	if err := p.run(mr); err != nil {
		p.discard()
		return nil, err
	}

	return result, nil
}

// pass holds the per-request state of one Process call.
type pass struct {
	*Manager
	ctx    context.Context
	result *Result
	counts map[string]int
	staged []string
}

func (p *pass) run(mr *multipart.Reader) error {
	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}

		// Raw parts keep their Content-Transfer-Encoding header and bytes.
		part, err := mr.NextRawPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &Error{Code: CodeMalformed, Message: "Malformed multipart body", Err: err}
		}

		err = p.handlePart(part)
		part.Close()
		if err != nil {
			return err
		}
	}
}

func (p *pass) handlePart(part *multipart.Part) error {
	field := part.FormName()
	if field == "" {
		return nil
	}

	filename, isFile := partFilename(part)
	if !isFile {
		return p.readField(field, part)
	}
	// An empty file input still sends a part; it carries no file.
	if filename == "" {
		return nil
	}

	return p.stageFile(field, filename, part)
}

func (p *pass) readField(field string, part *multipart.Part) error {
	data, err := io.ReadAll(io.LimitReader(part, p.limits.MaxFieldSize+1))
	if err != nil {
		return &Error{Code: CodeMalformed, Field: field, Message: "Malformed multipart body", Err: err}
	}
	if int64(len(data)) > p.limits.MaxFieldSize {
		return &Error{Code: CodeFieldTooLong, Field: field, Message: "Field value too long"}
	}

	p.result.Fields[field] = append(p.result.Fields[field], string(data))
	return nil
}

func (p *pass) stageFile(field, filename string, part *multipart.Part) error {
	limit, ok := p.limits.Fields[field]
	if !ok || p.counts[field] >= limit {
		return &Error{Code: CodeUnexpectedFile, Field: field, Message: "Unexpected field"}
	}
	p.counts[field]++

	mimeType := partMimeType(part)
	if err := Check(field, filename, mimeType); err != nil {
		return policyError(field, err)
	}

	src := &cappedReader{ctx: p.ctx, r: part, remaining: p.limits.MaxFileSize}
	staged, err := p.store.Save(filename, src)
	if err != nil {
		switch {
		case errors.Is(err, errFileTooLarge):
			return &Error{Code: CodeFileTooLarge, Field: field, Message: errFileTooLarge.Error(), Err: err}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case src.readErr != nil:
			return &Error{Code: CodeMalformed, Field: field, Message: "Malformed multipart body", Err: err}
		default:
			return &Error{Code: CodeStaging, Field: field, Message: "Failed to stage file", Err: err}
		}
	}
	p.staged = append(p.staged, staged.ID)

	encoding := part.Header.Get("Content-Transfer-Encoding")
	if encoding == "" {
		encoding = defaultEncoding
	}

	p.result.Files[field] = append(p.result.Files[field], models.UploadedFile{
		FieldName:    field,
		OriginalName: filename,
		Encoding:     encoding,
		MimeType:     mimeType,
		Destination:  p.store.Dir(),
		FileName:     staged.ID,
		Path:         staged.Path,
		Size:         staged.Size,
	})
	return nil
}

// discard removes everything staged so far.
func (p *pass) discard() {
	for _, id := range p.staged {
		_ = p.store.Remove(id)
	}
	p.staged = nil
}

// partFilename reports the filename parameter of the part and whether the
// parameter was present at all.
func partFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	if _, ok := params["filename"]; !ok {
		return "", false
	}
	return part.FileName(), true
}

func partMimeType(part *multipart.Part) string {
	raw := strings.TrimSpace(part.Header.Get("Content-Type"))
	if raw == "" {
		return defaultMimeType
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return raw
	}
	return mediaType
}

// cappedReader fails with errFileTooLarge once more than remaining bytes
// have been read, and stops early when ctx is done.
type cappedReader struct {
	ctx       context.Context
	r         io.Reader
	remaining int64
	readErr   error
}

func (c *cappedReader) Read(b []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	if int64(len(b)) > c.remaining+1 {
		b = b[:c.remaining+1]
	}
	n, err := c.r.Read(b)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, errFileTooLarge
	}
	if err != nil && err != io.EOF {
		c.readErr = err
	}
	return n, err
}
