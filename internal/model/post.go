package model

// PostDateLayout renders the human readable creation date stored on a post.
const PostDateLayout = "January 02, 2006"

// Post is a blog entry. Date is formatted once at creation and never rewritten.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:250;not null;uniqueIndex" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	Date     string `gorm:"size:250;not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImgURL   string `gorm:"column:img_url;size:250;not null" json:"img_url"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// PostFields are the author-editable columns of a post.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}
