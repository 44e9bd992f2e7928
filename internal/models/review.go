package models

// Review is the single persisted entity. MovieId is the table's partition key and
// ReviewerName its sort key, so at most one review exists per (movie, reviewer) pair
// and a later write for the same pair overwrites the earlier one.
type Review struct {
	MovieID      int    `json:"MovieId" dynamodbav:"MovieId" binding:"required"`
	ReviewerName string `json:"ReviewerName" dynamodbav:"ReviewerName" binding:"required"`
	ReviewDate   string `json:"ReviewDate" dynamodbav:"ReviewDate" binding:"required"`
	Rating       int    `json:"Rating" dynamodbav:"Rating" binding:"required"`
	Content      string `json:"Content" dynamodbav:"Content" binding:"required"`
}

// ReviewPatch carries the mutable fields of an update. Pointers distinguish an
// absent field from a zero value, so a partial patch leaves the other field untouched.
type ReviewPatch struct {
	Rating  *int    `json:"Rating,omitempty"`
	Content *string `json:"Content,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p ReviewPatch) IsEmpty() bool {
	return p.Rating == nil && p.Content == nil
}
