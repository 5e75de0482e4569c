// Package viewer decides how a document locator is presented and renders that decision.
package viewer

import (
	"regexp"
	"strings"

	"advocatehub/internal/model"
)

// Mode is a rendering directive kind.
type Mode string

const (
	ModeNoOp          Mode = "noop"
	ModeEmbedDocument Mode = "embed_document"
	ModeEmbedImage    Mode = "embed_image"
	ModeLinkOut       Mode = "link_out"
)

// Declared type hints understood by Select.
const (
	DeclaredPDF   = "pdf"
	DeclaredImage = "image"
)

var imageExt = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)$`)

// Directive is the selected mode plus the locator it applies to, unmodified.
type Directive struct {
	Mode    Mode   `json:"mode"`
	Locator string `json:"locator,omitempty"`
}

// Select maps a reference to exactly one directive. Rules are checked in order and
// the first match wins. The pdf suffix check is case-sensitive, the image one is not.
func Select(ref model.DocumentReference) Directive {
	if ref.Locator == "" {
		return Directive{Mode: ModeNoOp}
	}
	if ref.DeclaredType == DeclaredPDF || strings.HasSuffix(ref.Locator, ".pdf") {
		return Directive{Mode: ModeEmbedDocument, Locator: ref.Locator}
	}
	if ref.DeclaredType == DeclaredImage || imageExt.MatchString(ref.Locator) {
		return Directive{Mode: ModeEmbedImage, Locator: ref.Locator}
	}
	return Directive{Mode: ModeLinkOut, Locator: ref.Locator}
}

// DeclaredTypeFor maps a stored MIME type to a declared type hint, or "" when none applies.
func DeclaredTypeFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case ct == "application/pdf":
		return DeclaredPDF
	case strings.HasPrefix(ct, "image/"):
		return DeclaredImage
	default:
		return ""
	}
}
