package http

import (
	"errors"
	"log"
	"net/http"
	"time"

	"newsroom/internal/domain"
	"newsroom/internal/pipeline"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type authorResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type articleResponse struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	AuthorID  uint            `json:"author_id"`
	Author    *authorResponse `json:"author,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type roleResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type userResponse struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Roles    []roleResponse `json:"roles"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	dbMode := "no-db"
	if s.store != nil && s.store.DB != nil {
		dbMode = "db"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
}

func (s *Server) handleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the newsroom API."})
}

func (s *Server) handleNoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Message: "Route not found."})
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "username and password are required")
		return
	}
	user, err := s.users.FindByUsername(c.Request.Context(), body.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeErrorCode(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password.")
			return
		}
		writeInternal(c, "login lookup", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		writeErrorCode(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password.")
		return
	}
	signed, err := s.tokens.Issue(user.Username)
	if err != nil {
		writeInternal(c, "issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

func (s *Server) handleListArticles(c *gin.Context) {
	articles, err := s.articles.List(c.Request.Context())
	if err != nil {
		writeInternal(c, "list articles", err)
		return
	}
	out := make([]articleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, toArticleResponse(article))
	}
	c.JSON(http.StatusOK, gin.H{"articles": out})
}

func (s *Server) handleCreateArticle(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return
	}
	var body struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "title is required")
		return
	}
	article := domain.Article{
		Title:    body.Title,
		Body:     body.Body,
		AuthorID: caller.ID,
	}
	if err := s.articles.Create(c.Request.Context(), &article); err != nil {
		writeInternal(c, "create article", err)
		return
	}
	c.JSON(http.StatusCreated, toArticleResponse(article))
}

func (s *Server) handleGetArticle(c *gin.Context) {
	article, ok := resolvedArticle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(*article))
}

func (s *Server) handleUpdateArticle(c *gin.Context) {
	article, ok := resolvedArticle(c)
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "title is required")
		return
	}
	article.Title = body.Title
	article.Body = body.Body
	if err := s.articles.Update(c.Request.Context(), article); err != nil {
		writeInternal(c, "update article", err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(*article))
}

func (s *Server) handleDeleteArticle(c *gin.Context) {
	article, ok := resolvedArticle(c)
	if !ok {
		return
	}
	if err := s.articles.Delete(c.Request.Context(), article.ID); err != nil {
		writeInternal(c, "delete article", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetRole(c *gin.Context) {
	role, ok := resolvedRole(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRoleResponse(*role))
}

func (s *Server) handleUpdateRole(c *gin.Context) {
	role, ok := resolvedRole(c)
	if !ok {
		return
	}
	var body struct {
		Name        string   `json:"name" binding:"required"`
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "name is required")
		return
	}
	role.Name = body.Name
	role.Permissions = body.Permissions
	if err := s.roles.Update(c.Request.Context(), role); err != nil {
		writeInternal(c, "update role", err)
		return
	}
	c.JSON(http.StatusOK, toRoleResponse(*role))
}

func (s *Server) handleGetUser(c *gin.Context) {
	rc, ok := requestBag(c)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return
	}
	user, ok := rc.User()
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

func resolvedArticle(c *gin.Context) (*domain.Article, bool) {
	rc, ok := requestBag(c)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return nil, false
	}
	article, ok := rc.Article()
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return nil, false
	}
	return article, true
}

func resolvedRole(c *gin.Context) (*domain.Role, bool) {
	rc, ok := requestBag(c)
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return nil, false
	}
	role, ok := rc.Role()
	if !ok {
		writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
		return nil, false
	}
	return role, true
}

func toArticleResponse(article domain.Article) articleResponse {
	resp := articleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Body:      article.Body,
		AuthorID:  article.AuthorID,
		CreatedAt: article.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: article.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if article.Author != nil {
		resp.Author = &authorResponse{ID: article.Author.ID, Username: article.Author.Username}
	}
	return resp
}

func toRoleResponse(role domain.Role) roleResponse {
	return roleResponse{ID: role.ID, Name: role.Name, Permissions: role.Permissions}
}

func toUserResponse(user domain.User) userResponse {
	resp := userResponse{ID: user.ID, Username: user.Username, Roles: make([]roleResponse, 0, len(user.Roles))}
	for _, role := range user.Roles {
		resp.Roles = append(resp.Roles, toRoleResponse(role))
	}
	return resp
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: message})
}

func writeInternal(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	writeErrorCode(c, http.StatusInternalServerError, pipeline.CodeInternal, pipeline.MsgInternal)
}
