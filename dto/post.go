package dto

import (
	"time"

	"inkpress/models"
)

// PostDTO exposes the public shape of a post. Author fields are joined from
// the users collection; internal bookkeeping (visited_by) stays hidden.
type PostDTO struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	AuthorImg  string    `json:"author_img,omitempty"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Desc       string    `json:"desc,omitempty"`
	Content    string    `json:"content,omitempty"`
	Img        string    `json:"img,omitempty"`
	Category   string    `json:"category"`
	IsFeatured bool      `json:"is_featured"`
	Visit      int64     `json:"visit"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewPostDTO constructs PostDTO from models.Post plus the joined author.
func NewPostDTO(p models.Post, author *models.User) PostDTO {
	d := PostDTO{
		ID:         p.ID.Hex(),
		Title:      p.Title,
		Slug:       p.Slug,
		Desc:       p.Desc,
		Content:    p.Content,
		Img:        p.Img,
		Category:   p.Category,
		IsFeatured: p.IsFeatured,
		Visit:      p.Visit,
		CreatedAt:  p.CreatedAt,
	}
	if author != nil {
		d.Author = author.Username
		d.AuthorImg = author.Img
	}
	return d
}

// PostListDTO is the pagination envelope for post listings.
type PostListDTO struct {
	Posts   []PostDTO `json:"posts"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	Limit   int       `json:"limit"`
	HasMore bool      `json:"has_more"`
}
