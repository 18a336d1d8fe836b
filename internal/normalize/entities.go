package normalize

import (
	"sort"

	"github.com/yukikurage/taskboard-client/internal/constants"
	"github.com/yukikurage/taskboard-client/internal/models"
)

var (
	boardNameKeys       = []string{"name", "title"}
	boardColorKeys      = []string{"color"}
	boardIconKeys       = []string{"icon"}
	boardBackgroundKeys = []string{"background", "backgroundImage"}
	boardUpdatedKeys    = []string{"updated_at", "updatedAt"}
	boardNestedKeys     = []string{"columns", "members", "Members"}

	columnBoardKeys    = []string{"board_id", "boardId"}
	columnNameKeys     = []string{"name", "title"}
	columnColorKeys    = []string{"color"}
	columnPositionKeys = []string{"position", "order"}
	columnTaskKeys     = []string{"tasks"}

	taskColumnKeys      = []string{"column_id", "columnId"}
	taskBoardKeys       = []string{"board_id", "boardId"}
	taskTitleKeys       = []string{"title", "name"}
	taskDescriptionKeys = []string{"description"}
	taskAssigneeKeys    = []string{"assignee"}
	taskPriorityKeys    = []string{"priority"}
	taskStartKeys       = []string{"start_date", "startDate"}
	taskEndKeys         = []string{"end_date", "endDate", "due_date", "dueDate"}

	memberIDKeys   = []string{"id", "_id", "userId", "user_id"}
	memberNameKeys = []string{"name", "username", "email"}
	memberListKeys = []string{"members", "Members"}

	userIDKeys       = append(append([]string{}, IDKeys...), "userId", "user_id")
	userNameKeys     = []string{"name", "fullName", "full_name"}
	userUsernameKeys = []string{"username"}
	userEmailKeys    = []string{"email"}
	userAvatarKeys   = []string{"avatar", "avatar_url", "avatarUrl"}

	accessTokenKeys  = []string{"access_token", "accessToken", "token"}
	refreshTokenKeys = []string{"refresh_token", "refreshToken"}
)

var (
	boardKnown  = keySet(IDKeys, boardNameKeys, boardColorKeys, boardIconKeys, boardBackgroundKeys, boardUpdatedKeys, boardNestedKeys)
	columnKnown = keySet(IDKeys, columnBoardKeys, columnNameKeys, columnColorKeys, columnPositionKeys, columnTaskKeys)
	taskKnown   = keySet(IDKeys, taskColumnKeys, taskBoardKeys, taskTitleKeys, taskDescriptionKeys,
		taskAssigneeKeys, taskPriorityKeys, taskStartKeys, taskEndKeys)
)

// Board builds a canonical board from rec.
func Board(rec models.Record) models.Board {
	return MergeBoard(models.Board{}, rec)
}

// MergeBoard patches b with the fields present in rec.
func MergeBoard(b models.Board, rec models.Record) models.Board {
	if id := ID(rec); id != "" {
		b.ID = id
	}
	if Has(rec, boardNameKeys...) {
		b.Name = String(rec, boardNameKeys...)
	}
	if Has(rec, boardColorKeys...) {
		b.Color = String(rec, boardColorKeys...)
	}
	if Has(rec, boardIconKeys...) {
		b.Icon = String(rec, boardIconKeys...)
	}
	if Has(rec, boardBackgroundKeys...) {
		b.Background = String(rec, boardBackgroundKeys...)
	}
	if t, ok := Time(rec, boardUpdatedKeys...); ok {
		b.UpdatedAt = t
	}
	if b.Color == "" {
		b.Color = constants.DefaultBoardColor
	}
	b.Extra = extras(b.Extra, rec, boardKnown)
	return b
}

// Boards normalizes a board list payload.
func Boards(payload any) []models.Board {
	recs := Records(payload, "boards")
	out := make([]models.Board, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Board(rec))
	}
	return out
}

// Column builds a canonical column from rec.
func Column(rec models.Record) models.Column {
	return MergeColumn(models.Column{}, rec)
}

// MergeColumn patches c with the fields present in rec.
func MergeColumn(c models.Column, rec models.Record) models.Column {
	if id := ID(rec); id != "" {
		c.ID = id
	}
	if Has(rec, columnBoardKeys...) {
		c.BoardID = String(rec, columnBoardKeys...)
	}
	if Has(rec, columnNameKeys...) {
		c.Name = String(rec, columnNameKeys...)
	}
	if Has(rec, columnColorKeys...) {
		c.Color = String(rec, columnColorKeys...)
	}
	if n, ok := Int(rec, columnPositionKeys...); ok {
		c.Position = n
	}
	if Has(rec, columnTaskKeys...) {
		c.Tasks = Tasks(rec[columnTaskKeys[0]])
	}
	if c.Color == "" {
		c.Color = constants.DefaultColumnColor
	}
	if c.Tasks == nil {
		c.Tasks = []models.Task{}
	}
	c.Extra = extras(c.Extra, rec, columnKnown)
	return c
}

// Columns normalizes a column list and orders it by position. Columns with
// equal positions keep their payload order.
func Columns(payload any) []models.Column {
	recs := Records(payload, "columns")
	out := make([]models.Column, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Column(rec))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// Task builds a canonical task from rec.
func Task(rec models.Record) models.Task {
	return MergeTask(models.Task{}, rec)
}

// MergeTask patches t with the fields present in rec.
func MergeTask(t models.Task, rec models.Record) models.Task {
	if id := ID(rec); id != "" {
		t.ID = id
	}
	if Has(rec, taskColumnKeys...) {
		t.ColumnID = String(rec, taskColumnKeys...)
	}
	if Has(rec, taskBoardKeys...) {
		t.BoardID = String(rec, taskBoardKeys...)
	}
	if Has(rec, taskTitleKeys...) {
		t.Title = String(rec, taskTitleKeys...)
	}
	if Has(rec, taskDescriptionKeys...) {
		t.Description = String(rec, taskDescriptionKeys...)
	}
	if Has(rec, taskAssigneeKeys...) {
		t.Assignee = assignee(rec[taskAssigneeKeys[0]])
	}
	if Has(rec, taskPriorityKeys...) {
		n, _ := Int(rec, taskPriorityKeys...)
		t.Priority = Priority(n)
	}
	if Has(rec, taskStartKeys...) {
		t.StartDate, _ = Time(rec, taskStartKeys...)
	}
	if Has(rec, taskEndKeys...) {
		t.EndDate, _ = Time(rec, taskEndKeys...)
	}
	if t.Priority == 0 {
		t.Priority = constants.DefaultTaskPriority
	}
	t.Extra = extras(t.Extra, rec, taskKnown)
	return t
}

// Tasks normalizes a task list payload, given either as a list or as an
// object with a tasks field.
func Tasks(payload any) []models.Task {
	recs := Records(payload, "tasks")
	out := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Task(rec))
	}
	return out
}

// Priority clamps n into the valid range. Zero means unset.
func Priority(n int) int {
	switch {
	case n == 0:
		return constants.DefaultTaskPriority
	case n < constants.MinTaskPriority:
		return constants.MinTaskPriority
	case n > constants.MaxTaskPriority:
		return constants.MaxTaskPriority
	}
	return n
}

func assignee(v any) string {
	if rec, ok := asRecord(v); ok {
		return Member(rec).Name
	}
	return toString(v)
}

// Member builds a board member from rec.
func Member(rec models.Record) models.Member {
	return models.Member{
		ID:   String(rec, memberIDKeys...),
		Name: String(rec, memberNameKeys...),
	}
}

// Members reads the member list of a board record.
func Members(board models.Record) []models.Member {
	recs := Records(map[string]any(board), memberListKeys...)
	out := make([]models.Member, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Member(rec))
	}
	return out
}

// User builds a user profile from a /users/me style payload.
func User(rec models.Record) models.User {
	return MergeUser(models.User{}, rec)
}

// MergeUser patches u with the fields present in rec.
func MergeUser(u models.User, rec models.Record) models.User {
	rec = Unwrap(rec, "user")
	if id := String(rec, userIDKeys...); id != "" {
		u.ID = id
	}
	if Has(rec, userUsernameKeys...) {
		u.Username = String(rec, userUsernameKeys...)
	}
	if Has(rec, userEmailKeys...) {
		u.Email = String(rec, userEmailKeys...)
	}
	if Has(rec, userAvatarKeys...) {
		u.Avatar = String(rec, userAvatarKeys...)
	}
	if Has(rec, userNameKeys...) {
		u.Name = String(rec, userNameKeys...)
	}
	if u.Name == "" {
		u.Name = u.Username
	}
	if u.Name == "" {
		u.Name = u.Email
	}
	return u
}

// Tokens extracts the access and refresh tokens from a login or refresh
// payload, which is either the bare access token or an object.
func Tokens(payload any) (access, refresh string) {
	if s, ok := payload.(string); ok {
		return s, ""
	}
	rec, ok := asRecord(payload)
	if !ok {
		return "", ""
	}
	rec = Unwrap(rec, "tokens")
	return String(rec, accessTokenKeys...), String(rec, refreshTokenKeys...)
}
