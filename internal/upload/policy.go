package upload

import "strings"

// File fields accepted on an application submission.
const (
	FieldResume      = "resume"
	FieldWorkHistory = "work_history"
	FieldVideo       = "video"
)

var allowedDocumentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xlsx": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// DefaultFieldLimits is the maximum number of files accepted per file field.
// File parts under any other field name are rejected as unexpected.
func DefaultFieldLimits() map[string]int {
	return map[string]int{
		FieldResume:      1,
		FieldWorkHistory: 1,
		FieldVideo:       1,
	}
}

// IsAllowed reports whether a file part passes the type allow-list for its field.
// Documents are matched on lower-cased extension, videos on the exact declared
// MIME type. Fields without a policy are always allowed.
func IsAllowed(fieldName, extension, mimeType string) bool {
	switch fieldName {
	case FieldResume, FieldWorkHistory:
		return allowedDocumentExts[strings.ToLower(extension)]
	case FieldVideo:
		return allowedVideoTypes[mimeType]
	default:
		return true
	}
}

// Check applies IsAllowed to a file part and returns the matching sentinel
// error when it is rejected.
func Check(fieldName, filename, mimeType string) error {
	if IsAllowed(fieldName, Extension(filename), mimeType) {
		return nil
	}
	if fieldName == FieldVideo {
		return ErrInvalidVideoType
	}
	return ErrInvalidDocumentType
}

// Extension returns the suffix of name starting at its last dot. A name whose
// only dot is the leading one (".pdf") has no extension.
func Extension(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}
