package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
)

// fakeAPI mimics the parts of JSONPlaceholder the tests hit.
type fakeAPI struct {
	*httptest.Server
	hits int32
}

func userJSON(id int) string {
	return fmt.Sprintf(`{"id":%d,"name":"User %d","username":"user%d","email":"user%d@example.org","address":{"city":"Gwenborough"},"active":%t}`,
		id, id, id, id, id%2 == 1)
}

func usersJSON() string {
	parts := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		parts = append(parts, userJSON(i))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := &fakeAPI{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		atomic.AddInt32(&api.hits, 1)
		c.Next()
	})

	r.GET("/users", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(usersJSON()))
	})
	r.GET("/users/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 || id > 10 {
			c.Data(http.StatusNotFound, "application/json; charset=utf-8", []byte("{}"))
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(userJSON(id)))
	})
	r.GET("/empty", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte("[]"))
	})
	r.GET("/status/:code", func(c *gin.Context) {
		code, _ := strconv.Atoi(c.Param("code"))
		c.Data(code, "application/json; charset=utf-8", []byte(fmt.Sprintf(`{"status":%d}`, code)))
	})
	r.POST("/posts", func(c *gin.Context) {
		if c.ContentType() != "application/json" {
			c.Data(http.StatusUnsupportedMediaType, "text/plain", []byte("json required"))
			return
		}
		var in struct {
			Title  string `json:"title"`
			Body   string `json:"body"`
			UserID int    `json:"userId"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Data(http.StatusBadRequest, "text/plain", []byte(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, struct {
			Title  string `json:"title"`
			Body   string `json:"body"`
			UserID int    `json:"userId"`
			ID     int    `json:"id"`
		}{in.Title, in.Body, in.UserID, 101})
	})

	api.Server = httptest.NewServer(r)
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) Hits() int32 { return atomic.LoadInt32(&a.hits) }
