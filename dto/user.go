package dto

// SavedPostsDTO lists the post ids a user has bookmarked.
type SavedPostsDTO struct {
	SavedPosts []string `json:"saved_posts"`
}

// SaveToggleDTO reports the membership state after a save toggle.
type SaveToggleDTO struct {
	PostID string `json:"post_id"`
	Saved  bool   `json:"saved"`
}

// UploadAuthDTO carries the signed parameters a client needs to upload a
// cover image directly to the media CDN.
type UploadAuthDTO struct {
	Token       string `json:"token"`
	Expire      int64  `json:"expire"`
	Signature   string `json:"signature"`
	PublicKey   string `json:"public_key"`
	URLEndpoint string `json:"url_endpoint"`
}
