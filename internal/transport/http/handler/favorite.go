package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interno-chat/internal/app"
	"interno-chat/internal/transport/http/response"
)

type FavoriteHandler struct {
	favoriteService *app.FavoriteService
}

type CreateFavoriteRequest struct {
	Title          string   `json:"title" binding:"max=255"`
	QuestionText   string   `json:"question_text"`
	SQLCorrect     string   `json:"sql_correct"`
	Dialect        string   `json:"dialect"`
	Tags           []string `json:"tags"`
	IsPinned       bool     `json:"is_pinned"`
	ConversationID *string  `json:"conversation_id"`
}

// UpdateFavoriteRequest uses pointers so absent keys stay untouched.
type UpdateFavoriteRequest struct {
	Title          *string   `json:"title" binding:"omitempty,max=255"`
	QuestionText   *string   `json:"question_text"`
	SQLCorrect     *string   `json:"sql_correct"`
	Dialect        *string   `json:"dialect"`
	Tags           *[]string `json:"tags"`
	IsPinned       *bool     `json:"is_pinned"`
	ConversationID *string   `json:"conversation_id"`
}

func NewFavoriteHandler(favoriteService *app.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), userID, app.FavoriteInput{
		Title:          req.Title,
		QuestionText:   req.QuestionText,
		SQLCorrect:     req.SQLCorrect,
		Dialect:        req.Dialect,
		Tags:           req.Tags,
		IsPinned:       req.IsPinned,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		writeServiceError(c, err, "add favorite failed")
		return
	}
	response.JSON(c, http.StatusCreated, favorite)
}

// List serves GET /favorites?user_id=. Callers may only read their own list;
// without user_id the token user's list is returned.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	raw := c.Query("user_id")
	if raw == "" {
		h.list(c, userID)
		return
	}
	requested, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || requested == 0 {
		response.FieldError(c, "user_id", "user_id query parameter must be a positive integer")
		return
	}
	if uint(requested) != userID {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "cannot list favorites of another user")
		return
	}
	h.list(c, userID)
}

func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	h.list(c, userID)
}

func (h *FavoriteHandler) list(c *gin.Context, userID uint) {
	favorites, err := h.favoriteService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "list favorites failed")
		return
	}
	response.OK(c, favorites)
}

func (h *FavoriteHandler) GetByConversation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	favorite, err := h.favoriteService.GetFavoriteByConversation(c.Request.Context(), userID, c.Param("conversation_id"))
	if err != nil {
		writeServiceError(c, err, "get favorite failed")
		return
	}
	response.OK(c, favorite)
}

func (h *FavoriteHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	favorite, err := h.favoriteService.UpdateFavorite(c.Request.Context(), userID, favoriteID, app.FavoritePatch{
		Title:          req.Title,
		ConversationID: req.ConversationID,
		QuestionText:   req.QuestionText,
		SQLCorrect:     req.SQLCorrect,
		Dialect:        req.Dialect,
		Tags:           req.Tags,
		IsPinned:       req.IsPinned,
	})
	if err != nil {
		writeServiceError(c, err, "update favorite failed")
		return
	}
	response.OK(c, favorite)
}

func (h *FavoriteHandler) Use(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorite, err := h.favoriteService.UseFavorite(c.Request.Context(), userID, favoriteID)
	if err != nil {
		writeServiceError(c, err, "use favorite failed")
		return
	}
	response.OK(c, favorite)
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	favoriteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.DeleteFavorite(c.Request.Context(), userID, favoriteID); err != nil {
		writeServiceError(c, err, "delete favorite failed")
		return
	}
	response.OK(c, gin.H{"message": "deleted"})
}
