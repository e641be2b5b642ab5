package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/dto"
	"github.com/mkoga/todo-api/internal/models"
	"github.com/mkoga/todo-api/internal/repository"
	"github.com/mkoga/todo-api/internal/services"
	"github.com/mkoga/todo-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TodoHandlerTestSuite defines the test suite for TodoHandler
type TodoHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	now    time.Time
}

// SetupTest runs before each test
func (suite *TodoHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Todo{})
	suite.Require().NoError(err)

	suite.now = time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC)

	userRepo := repository.NewUserRepository(suite.db)
	todoRepo := repository.NewTodoRepository(suite.db)
	todoHandler := NewTodoHandler(services.NewTodoService(todoRepo, userRepo, func() time.Time {
		return suite.now
	}))
	userHandler := NewUserHandler(services.NewUserService(userRepo))

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	users := suite.router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}
	todos := suite.router.Group("/todos")
	{
		todos.GET("", todoHandler.ListTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.GET("/:id", todoHandler.GetTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}
}

// TearDownTest runs after each test
func (suite *TodoHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TodoHandlerTestSuite) request(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

type todoEnvelope struct {
	Success bool             `json:"success"`
	Data    dto.TodoResponse `json:"data"`
}

type todoListEnvelope struct {
	Success    bool                     `json:"success"`
	Data       []dto.TodoResponse       `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func (suite *TodoHandlerTestSuite) TestUserTodoLifecycle() {
	// POST /users
	w := suite.request("POST", "/users", gin.H{"name": "Alice", "email": "alice@x.io"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var userResp userEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &userResp))
	aliceID := userResp.Data.ID

	// POST /todos owned by Alice
	w = suite.request("POST", "/todos", gin.H{"title": "Read book", "userId": aliceID})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var todoResp todoEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &todoResp))
	assert.False(suite.T(), todoResp.Data.IsExpired)
	suite.Require().NotNil(todoResp.Data.User)
	assert.Equal(suite.T(), "alice@x.io", todoResp.Data.User.Email)

	// GET /todos?userId=
	w = suite.request("GET", fmt.Sprintf("/todos?userId=%d", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var listResp todoListEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(suite.T(), listResp.Data, 1)

	// DELETE /users/:id cascades
	w = suite.request("DELETE", fmt.Sprintf("/users/%d", aliceID), nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.request("GET", fmt.Sprintf("/todos?userId=%d", aliceID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Empty(suite.T(), listResp.Data)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_UnknownUser() {
	w := suite.request("POST", "/todos", gin.H{"title": "Orphan", "userId": 999})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Todo{}).Count(&count).Error)
	assert.Zero(suite.T(), count)
}

func (suite *TodoHandlerTestSuite) TestCreateTodo_BlankTitle() {
	w := suite.request("POST", "/todos", gin.H{"title": "   "})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestListTodos_Pagination() {
	user := &models.User{Name: "Alice", Email: "alice@x.io"}
	suite.Require().NoError(suite.db.Create(user).Error)

	base := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		todo := &models.Todo{
			Title:     fmt.Sprintf("todo-%d", i),
			UserID:    &user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		suite.Require().NoError(suite.db.Create(todo).Error)
	}

	w := suite.request("GET", fmt.Sprintf("/todos?userId=%d&page=2&limit=2", user.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp todoListEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	// Newest-first ordering: page 2 of limit 2 holds the 3rd and 4th newest.
	suite.Require().Len(resp.Data, 2)
	assert.Equal(suite.T(), "todo-3", resp.Data[0].Title)
	assert.Equal(suite.T(), "todo-2", resp.Data[1].Title)

	assert.Equal(suite.T(), 2, resp.Pagination.Page)
	assert.Equal(suite.T(), 2, resp.Pagination.Limit)
	assert.EqualValues(suite.T(), 5, resp.Pagination.Total)
	assert.Equal(suite.T(), 3, resp.Pagination.TotalPages)
}

func (suite *TodoHandlerTestSuite) TestListTodos_InvalidQuery() {
	w := suite.request("GET", "/todos?userId=abc", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("GET", "/todos?completed=banana", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestGetTodo_ExpiresWithSimulatedTime() {
	w := suite.request("POST", "/todos", gin.H{
		"title":       "T",
		"startedTime": "2024-01-01T00:00:00Z",
		"duration":    1,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created todoEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Require().False(created.Data.IsExpired, "still inside the one-minute window")

	// Advance past the window and read again.
	suite.now = time.Date(2024, 1, 1, 0, 2, 0, 0, time.UTC)

	w = suite.request("GET", fmt.Sprintf("/todos/%d", created.Data.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var fetched todoEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.True(suite.T(), fetched.Data.IsExpired)

	// The stale stored flag is corrected in the background.
	suite.Require().Eventually(func() bool {
		var stored models.Todo
		if err := suite.db.First(&stored, created.Data.ID).Error; err != nil {
			return false
		}
		return stored.IsExpired
	}, 2*time.Second, 10*time.Millisecond)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_NotFound() {
	w := suite.request("PATCH", "/todos/42", gin.H{"title": "nope"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_NoFields() {
	suite.Require().NoError(suite.db.Create(&models.Todo{Title: "keep"}).Error)

	w := suite.request("PATCH", "/todos/1", gin.H{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TodoHandlerTestSuite) TestUpdateTodo_Success() {
	suite.Require().NoError(suite.db.Create(&models.Todo{Title: "old", Tags: []string{"a"}}).Error)

	w := suite.request("PATCH", "/todos/1", gin.H{"completed": true, "tags": []string{"b", "c"}})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp todoEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(suite.T(), resp.Data.Completed)
	assert.Equal(suite.T(), []string{"b", "c"}, resp.Data.Tags)
	assert.Equal(suite.T(), "old", resp.Data.Title)
}

func (suite *TodoHandlerTestSuite) TestDeleteTodo() {
	suite.Require().NoError(suite.db.Create(&models.Todo{Title: "gone"}).Error)

	w := suite.request("DELETE", "/todos/1", nil)
	assert.Equal(suite.T(), http.StatusNoContent, w.Code)

	w = suite.request("GET", "/todos/1", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTodoHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TodoHandlerTestSuite))
}
