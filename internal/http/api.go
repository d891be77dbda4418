package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-server/internal/auth"
	"portfolio-server/internal/domain"
	"portfolio-server/internal/repository"
	"portfolio-server/internal/service"
)

const maxUploadSize = 10 << 20 // 10MB, matches the media host limit

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	photos     service.PhotoService
	categories service.CategoryService
	tokens     *auth.TokenManager
	logger     *logrus.Logger
}

func NewHandler(users service.UserService, photos service.PhotoService, categories service.CategoryService, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		users:      users,
		photos:     photos,
		categories: categories,
		tokens:     tokens,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.MaxMultipartMemory = maxUploadSize

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.login)
			authGroup.GET("/verify", h.requireAuth(), h.verify)
			authGroup.PUT("/change-password", h.requireAuth(), h.changePassword)
			authGroup.PUT("/profile", h.requireAuth(), h.updateProfile)
		}

		api.GET("/photos", h.listPhotos)
		api.GET("/photos/:id", h.getPhoto)
		api.POST("/photos", h.requireAuth(), h.uploadPhoto)
		api.PUT("/photos/:id", h.requireAuth(), h.updatePhoto)
		api.DELETE("/photos/:id", h.requireAuth(), h.deletePhoto)

		api.GET("/categories", h.listCategories)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Errorf("authenticate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Errorf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userToResponse(user),
	})
}

func (h *Handler) verify(c *gin.Context) {
	claims := claimsFrom(c)

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}
		h.logger.Errorf("load user %d: %v", claims.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password are required"})
		return
	}

	claims := claimsFrom(c)
	if err := h.users.ChangePassword(c.Request.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusForbidden, gin.H{"error": "current password is incorrect"})
		default:
			h.logger.Errorf("change password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := claimsFrom(c)
	user, err := h.users.UpdateProfile(c.Request.Context(), claims.UserID, req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Errorf("update profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) listPhotos(c *gin.Context) {
	photos, err := h.photos.List(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list photos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]PhotoResponse, len(photos))
	for i := range photos {
		resp[i] = photoToResponse(photos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	photo, err := h.photos.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		h.logger.Errorf("get photo %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, photoToResponse(*photo))
}

func (h *Handler) uploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 10MB limit"})
		return
	}

	var categoryID *int64
	if raw := c.PostForm("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		categoryID = &id
	}

	photo, err := h.photos.Upload(c.Request.Context(), service.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CategoryID:  categoryID,
		IsFeatured:  parseFormBool(c.PostForm("is_featured")),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile), errors.Is(err, service.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMediaStore):
			h.logger.Errorf("upload photo: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "media store unavailable"})
		default:
			h.logger.Errorf("upload photo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		}
		return
	}

	c.JSON(http.StatusOK, photoToResponse(*photo))
}

type updatePhotoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CategoryID  *int64 `json:"category_id"`
	IsFeatured  bool   `json:"is_featured"`
}

func (h *Handler) updatePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.photos.Update(c.Request.Context(), id, repository.PhotoUpdate{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsFeatured:  req.IsFeatured,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		h.logger.Errorf("update photo %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo updated"})
}

func (h *Handler) deletePhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.photos.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		h.logger.Errorf("delete photo %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseFormBool(value string) bool {
	switch value {
	case "1", "true", "on":
		return true
	}
	return false
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}

type PhotoResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	URL          string  `json:"url"`
	OriginalName string  `json:"original_name"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name"`
	CategorySlug *string `json:"category_slug"`
	IsFeatured   bool    `json:"is_featured"`
	OrderIndex   int     `json:"order_index"`
	UploadedAt   string  `json:"uploaded_at"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func photoToResponse(photo domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           photo.ID,
		Title:        photo.Title,
		Description:  photo.Description,
		URL:          photo.URL,
		OriginalName: photo.OriginalName,
		CategoryID:   photo.CategoryID,
		CategoryName: photo.CategoryName,
		CategorySlug: photo.CategorySlug,
		IsFeatured:   photo.IsFeatured,
		OrderIndex:   photo.OrderIndex,
		UploadedAt:   photo.UploadedAt.Format(time.RFC3339),
	}
}

func categoryToResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}
