package ports

import "github.com/xlxfoxxlx/carrierd/internal/domain/models"

// StringCatalog resolves message kinds to localized template strings and
// supplies the fragment separator. Implementations must be total: every kind
// resolves to a string, possibly empty.
type StringCatalog interface {
	Separator() string
	Message(kind models.MessageKind) string
}

// Localizer maps an original carrier name to its localized display name.
// The second return is false when no mapping exists and the input should be
// shown unchanged.
type Localizer interface {
	LocalName(original string) (string, bool)
}
