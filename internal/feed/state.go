package feed

import "github.com/augcode13-glitch/paapimg/internal/domain"

// Tab — вкладка ленты
type Tab string

const (
	TabCurated   Tab = "curated"
	TabFavorites Tab = "favorites"
)

// ParseTab проверяет значение, пришедшее от клиента
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabCurated, TabFavorites:
		return Tab(s), true
	}
	return "", false
}

// State — то, что должно быть на экране в данный момент.
// Для вкладки избранного Photos строится из строк избранного,
// Loading и HasMore относятся только к ленте.
type State struct {
	Tab         Tab            `json:"tab"`
	SearchTerm  string         `json:"search_term"`
	Page        int            `json:"page"`
	HasMore     bool           `json:"has_more"`
	Loading     bool           `json:"loading"`
	Empty       bool           `json:"empty"`
	SignedIn    bool           `json:"signed_in"`
	Photos      []domain.Photo `json:"photos"`
	FavoriteIDs []string       `json:"favorite_ids"`
}

// ToggleStatus — исход переключения избранного
type ToggleStatus string

const (
	ToggleAdded          ToggleStatus = "added"
	ToggleRemoved        ToggleStatus = "removed"
	ToggleSignInRequired ToggleStatus = "sign_in_required"
	ToggleFailed         ToggleStatus = "failed"
)

// SignInPrompt показывается пользователю без сессии
const SignInPrompt = "Please sign in to save favorites"

// ToggleResult возвращается вместо ошибки: операции ленты не падают
type ToggleResult struct {
	Status   ToggleStatus `json:"status"`
	Prompt   string       `json:"prompt,omitempty"`
	Favorite bool         `json:"favorite"`
}
