package dto

import (
	"time"

	"inkpress/models"
)

// CommentDTO exposes a comment with its author joined in.
type CommentDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    string    `json:"author"`
	AuthorImg string    `json:"author_img,omitempty"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentDTO constructs CommentDTO from models.Comment plus its author.
func NewCommentDTO(c models.Comment, author *models.User) CommentDTO {
	d := CommentDTO{
		ID:        c.ID.Hex(),
		PostID:    c.Post.Hex(),
		Desc:      c.Desc,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		d.Author = author.Username
		d.AuthorImg = author.Img
	}
	return d
}
