package postController

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"connectx/config"
	"connectx/database"
	"connectx/middleware"
	"connectx/models"
	"connectx/utils"
)

const feedPageSize = 20

// Create publishes a post with an optional image.
func Create(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	caption := strings.TrimSpace(c.FormValue("caption"))

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving post image: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store the uploaded file!", nil)
		}
		image = utils.GetFileURL(fileName)
	}

	if caption == "" && image == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Post needs a caption or an image!", nil)
	}

	post := models.Post{
		UserID:  userID,
		Caption: caption,
		Image:   image,
	}
	if err := database.Database.Db.Create(&post).Error; err != nil {
		log.Printf("Error creating post: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created.", post)
}

type feedItem struct {
	models.Post
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
	LikedByMe    bool  `json:"likedByMe"`
}

// Feed returns posts from the viewer's college, newest first, keyset
// paginated on post id via the "cursor" query param.
func Feed(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var viewer models.User
	if err := db.First(&viewer, "id = ?", userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	query := db.Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.is_deleted = false AND users.is_deleted = false")
	if viewer.CollegeID != nil {
		query = query.Where("users.college_id = ?", *viewer.CollegeID)
	}
	if cursor, err := strconv.ParseUint(c.Query("cursor"), 10, 32); err == nil {
		query = query.Where("posts.id < ?", cursor)
	}

	var posts []models.Post
	if err := query.Preload("User").Order("posts.id DESC").Limit(feedPageSize).Find(&posts).Error; err != nil {
		log.Printf("Error fetching feed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feed!", nil)
	}

	items := make([]feedItem, 0, len(posts))
	for _, post := range posts {
		item := feedItem{Post: post}
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&item.LikeCount)
		db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&item.CommentCount)
		var mine int64
		db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, userID).Count(&mine)
		item.LikedByMe = mine > 0
		item.User.Password = ""
		items = append(items, item)
	}

	var nextCursor *uint
	if len(posts) == feedPageSize {
		id := posts[len(posts)-1].ID
		nextCursor = &id
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feed fetched.", fiber.Map{
		"posts":      items,
		"nextCursor": nextCursor,
	})
}

// ToggleLike likes the post, or removes the like when it already exists.
func ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Post{}, "id = ? AND is_deleted = false", postID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	var like models.Like
	err = db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	switch {
	case err == nil:
		if err := db.Unscoped().Delete(&like).Error; err != nil {
			log.Printf("Error removing like: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update like!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Like removed.", fiber.Map{"liked": false})
	case err == gorm.ErrRecordNotFound:
		like = models.Like{UserID: userID, PostID: uint(postID)}
		if err := db.Create(&like).Error; err != nil {
			log.Printf("Error creating like: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update like!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Post liked.", fiber.Map{"liked": true})
	default:
		log.Printf("Error looking up like: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update like!", nil)
	}
}

// AddComment appends a comment to a post.
func AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	reqData := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Text) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Comment text is required!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Post{}, "id = ? AND is_deleted = false", postID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	comment := models.Comment{
		UserID: userID,
		PostID: uint(postID),
		Text:   strings.TrimSpace(reqData.Text),
	}
	if err := db.Create(&comment).Error; err != nil {
		log.Printf("Error creating comment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment added.", comment)
}

// Comments lists a post's comments, oldest first.
func Comments(c *fiber.Ctx) error {
	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	var comments []models.Comment
	if err := database.Database.Db.Where("post_id = ?", postID).
		Preload("User").Order("id ASC").Find(&comments).Error; err != nil {
		log.Printf("Error fetching comments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched.", comments)
}

// Delete soft-deletes the caller's own post.
func Delete(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	postID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.Post{}).
		Where("id = ? AND user_id = ? AND is_deleted = false", postID, userID).
		Update("is_deleted", true)
	if res.Error != nil {
		log.Printf("Error deleting post: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted.", nil)
}
