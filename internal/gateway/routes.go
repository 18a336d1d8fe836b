package gateway

import (
	"net/url"
	"strings"
)

// AuthRoutes are the authentication endpoints. Deployments disagree on
// whether login and register live under /users or /auth.
type AuthRoutes struct {
	Login    string
	Register string
	Logout   string
	Refresh  string
}

var (
	UsersAuthRoutes = AuthRoutes{
		Login:    "/users/login",
		Register: "/users/register",
		Logout:   "/auth/logout",
		Refresh:  "/auth/refresh",
	}
	PrefixedAuthRoutes = AuthRoutes{
		Login:    "/auth/login",
		Register: "/auth/register",
		Logout:   "/auth/logout",
		Refresh:  "/auth/refresh",
	}
)

// RoutesFor returns the route set for AUTH_ROUTE_STYLE. Anything other than
// "auth" selects the /users variant.
func RoutesFor(style string) AuthRoutes {
	if strings.EqualFold(style, "auth") {
		return PrefixedAuthRoutes
	}
	return UsersAuthRoutes
}

const (
	PathProfile  = "/users/me"
	PathAvatar   = "/users/upload/avatar"
	PathBoards   = "/boards"
	PathMyBoards = "/boards/user"
	PathColumns  = "/columns"
	PathTasks    = "/tasks"
)

func boardPath(id string) string  { return PathBoards + "/" + url.PathEscape(id) }
func columnPath(id string) string { return PathColumns + "/" + url.PathEscape(id) }
func taskPath(id string) string   { return PathTasks + "/" + url.PathEscape(id) }

func columnTasksPath(columnID string) string {
	return columnPath(columnID) + "/tasks"
}
