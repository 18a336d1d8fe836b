package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskboard-client/internal/database"
	"github.com/yukikurage/taskboard-client/internal/repository"
	"github.com/yukikurage/taskboard-client/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

// apiSuite wires the full route table over an in-memory SQLite database
type apiSuite struct {
	suite.Suite
	db     *gorm.DB
	svc    Services
	router *gin.Engine
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("sqlite", ":memory:", logger.Silent)
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(database.Migrate(db))
	s.db = db

	boards := services.NewBoardService(repository.NewBoardRepository(db), repository.NewColumnRepository(db))
	s.svc = Services{
		Auth:   services.NewAuthService(repository.NewUserRepository(db), repository.NewTokenRepository(db), testSecret),
		Boards: boards,
		Tasks:  services.NewTaskService(repository.NewTaskRepository(db), boards),
	}

	nullLogger, _ := test.NewNullLogger()
	s.router = gin.New()
	RegisterRoutes(s.router.Group("/api/v1"), s.svc, nullLogger)
}

func (s *apiSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// signup creates a user and returns its ID and an access token
func (s *apiSuite) signup(username string) (string, string) {
	user, err := s.svc.Auth.Register(services.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "supersecret",
	})
	s.Require().NoError(err)
	pair, err := s.svc.Auth.IssueTokens(user.ID)
	s.Require().NoError(err)
	return user.ID, pair.AccessToken
}

func (s *apiSuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	return s.send(method, path, reader, "application/json", token)
}

func (s *apiSuite) send(method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1"+path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) body(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// data returns the envelope payload as an object
func (s *apiSuite) data(w *httptest.ResponseRecorder) map[string]any {
	data, ok := s.body(w)["data"].(map[string]any)
	s.Require().True(ok, w.Body.String())
	return data
}

func (s *apiSuite) createBoard(token, name string) string {
	w := s.request(http.MethodPost, "/boards", map[string]string{"name": name}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.data(w)["_id"].(string)
}

func (s *apiSuite) createColumn(token, boardID, name string) string {
	w := s.request(http.MethodPost, "/columns", map[string]string{"board_id": boardID, "name": name}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.data(w)["id"].(string)
}

func (s *apiSuite) createTask(token, columnID string, fields map[string]any) string {
	body := map[string]any{"column_id": columnID}
	for k, v := range fields {
		body[k] = v
	}
	w := s.request(http.MethodPost, "/tasks", body, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.data(w)["_id"].(string)
}
