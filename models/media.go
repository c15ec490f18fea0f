package models

// UploadResult carries the public URLs of a stored image and its renditions.
type UploadResult struct {
	URL          string `json:"url"`
	FeedURL      string `json:"feed_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
