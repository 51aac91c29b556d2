package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rmedina-dev/inkwell-backend/database"
	"github.com/rmedina-dev/inkwell-backend/errs"
	"github.com/rmedina-dev/inkwell-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     blogStore
	users     userStore
}

func newBlogHandler(blogs blogStore, users userStore) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
		users:     users,
	}
}

// blogRequest is the mutation payload for create and update. Image is a
// pointer so an absent key can be told apart from an explicit null/value;
// the string fields deliberately cannot make that distinction (an empty
// string reads as "not provided", matching the update semantics the
// public clients rely on).
type blogRequest struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Content  string  `json:"content"`
	Image    *string `json:"image"`
}

// callerID extracts and parses the authenticated user's ID from the
// request context. Only reachable behind the auth middleware.
func (h blogHandler) callerID(r *http.Request) (uuid.UUID, error) {
	userIDStr, err := ctxGetUserID(r.Context())
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("missing authenticated user")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("malformed authenticated user id")
	}
	return userID, nil
}

// getAllBlogs lists blogs, optionally filtered by exact category and/or
// case-insensitive author substring, newest first. Public.
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.BlogFilter{
			Category: r.URL.Query().Get("category"),
			Author:   r.URL.Query().Get("author"),
		}

		blogs, err := h.blogs.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blogs", err))
			return
		}
		if blogs == nil {
			blogs = []*models.Blog{}
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Blogs retrieved successfully",
			"blogs":   blogs,
		})
	}
}

// getBlog returns a single blog by id. Public.
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Blog retrieved successfully",
			"blog":    blog,
		})
	}
}

// createBlog persists a new blog owned by the caller. The author display
// name is resolved from the caller's user record at creation time and
// stored on the blog; it is never re-synced afterwards.
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req blogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError(err))
			return
		}

		switch {
		case req.Title == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		case req.Category == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		case req.Content == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		if !models.ValidCategory(req.Category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "unknown category"))
			return
		}

		// Narrow race: the token verified but the user record may be gone.
		user, err := h.users.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		now := time.Now()
		blog := models.Blog{
			Title:     req.Title,
			Category:  req.Category,
			Author:    user.Name,
			Content:   req.Content,
			Image:     req.Image,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := h.blogs.Add(&blog); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "blog", err))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Blog created successfully",
			"blog":    blog,
		})
	}
}

// updateBlog applies a partial update to an owned blog. Empty title,
// category, and content values are skipped rather than written; the image
// is written whenever its key is present in the payload. UpdatedAt is
// stamped on every successful call, changed fields or not.
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if blog.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("not the owner of this blog"))
			return
		}

		var req blogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError(err))
			return
		}

		if req.Title != "" {
			blog.Title = req.Title
		}
		if req.Category != "" {
			if !models.ValidCategory(req.Category) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("category", "unknown category"))
				return
			}
			blog.Category = req.Category
		}
		if req.Content != "" {
			blog.Content = req.Content
		}
		if req.Image != nil {
			blog.Image = req.Image
		}
		blog.UpdatedAt = time.Now()

		// The write re-checks ownership in the statement itself, so a
		// concurrent delete between the fetch above and here surfaces as
		// a miss instead of resurrecting the row.
		ok, err := h.blogs.UpdateOwned(blog, userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "blog", err))
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Blog updated successfully",
			"blog":    blog,
		})
	}
}

// deleteBlog hard-deletes an owned blog.
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		blog, err := h.blogs.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if blog.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("not the owner of this blog"))
			return
		}

		ok, err := h.blogs.DeleteOwned(blogID, userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "blog", err))
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Blog deleted successfully",
		})
	}
}

// getMyBlogs lists the caller's own blogs, newest first.
func (h blogHandler) getMyBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.callerID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogs, err := h.blogs.FindByUserID(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blogs", err))
			return
		}
		if blogs == nil {
			blogs = []*models.Blog{}
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "User blogs retrieved successfully",
			"blogs":   blogs,
		})
	}
}
