package constants

import "time"

// Durable storage keys
const (
	StorageKeyAccessToken  = "access_token"
	StorageKeyRefreshToken = "refresh_token"
)

// Transport defaults
const (
	DefaultAPIBaseURL     = "http://localhost:8080/api/v1/"
	DefaultRequestTimeout = 10 * time.Second
	ContentTypeJSON       = "application/json"

	MessageSuccess      = "Success"
	MessageUnauthorized = "Unauthorized! Please log in again."
	MessageFallback     = "Something went wrong"
	MessageNetworkError = "Network error"
	MessageRegistered   = "Account created successfully"
)

// Entity defaults
const (
	DefaultBoardColor   = "#579DFF"
	DefaultBoardIcon    = "💻"
	DefaultColumnColor  = "#579DFF"
	DefaultTaskPriority = 3
	MinTaskPriority     = 1
	MaxTaskPriority     = 5
)

// Task priority levels
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityNormal = 3
	PriorityHigh   = 4
	PriorityUrgent = 5
)

// PriorityLabels maps a priority level to its display label.
var PriorityLabels = map[int]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityNormal: "Normal",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

// BoardColors is the predefined palette offered when creating a board.
var BoardColors = []string{
	"#579DFF", "#6E59A5", "#E56B6F",
	"#F0A04B", "#34A0A4", "#57CC99",
	"#3A86FF", "#FFB703", "#FF6D00",
	"#6A4C93", "#0081A7", "#2A9D8F",
}

// BoardIcon describes one selectable board icon.
type BoardIcon struct {
	ID    string
	Emoji string
	Name  string
}

var BoardIcons = []BoardIcon{
	{ID: "dev", Emoji: "💻", Name: "IT / Development"},
	{ID: "marketing", Emoji: "📢", Name: "Marketing"},
	{ID: "sales", Emoji: "💰", Name: "Sales"},
	{ID: "design", Emoji: "🎨", Name: "Design"},
	{ID: "product", Emoji: "📦", Name: "Product"},
	{ID: "support", Emoji: "🎧", Name: "Customer Support"},
	{ID: "hr", Emoji: "🧑‍💼", Name: "Human Resource"},
	{ID: "meeting", Emoji: "📅", Name: "Meetings"},
	{ID: "finance", Emoji: "📊", Name: "Finance"},
	{ID: "strategy", Emoji: "🎯", Name: "Strategy"},
}

// Navigation targets handed back to the UI layer
const (
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteHome     = "/home"
)

// Development backend
const (
	MinPasswordLength = 6
	TokenIssuer       = "taskboard-mockapi"
	AccessTokenTTL    = 24 * time.Hour
	RefreshTokenTTL   = 7 * 24 * time.Hour
)

// Gin context keys used by the development backend
const (
	ContextKeyUserID      = "user_id"
	ContextKeyClaims      = "claims"
	ContextKeyBoard       = "board"
	ContextKeyBoardMember = "board_member"
	ContextKeyColumn      = "column"
	ContextKeyTask        = "task"
)

// Token types carried in the typ claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const MaxAvatarSize = 2 << 20
