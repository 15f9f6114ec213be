package model

import (
	"time"

	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

type Kind uint8

const (
	KIND_BLOG Kind = iota + 1
	KIND_COMMENT
	KIND_REPLY
)

func (k Kind) String() string {
	switch k {
	case KIND_BLOG:
		return "blog"
	case KIND_COMMENT:
		return "comment"
	case KIND_REPLY:
		return "reply"
	}
	return "unknown"
}

// Votes is stored inline on every votable document.
// Upvoted and Downvoted are only filled by reads made on behalf of a caller.
type Votes struct {
	Upvotes        []pr.ObjectID `bson:"upvotes" json:"-"`
	Downvotes      []pr.ObjectID `bson:"downvotes" json:"-"`
	UpvotesCount   int           `bson:"upvotesCount" json:"upvotesCount"`
	DownvotesCount int           `bson:"downvotesCount" json:"downvotesCount"`

	Upvoted   *bool `bson:"upvoted,omitempty" json:"upvoted,omitempty"`
	Downvoted *bool `bson:"downvoted,omitempty" json:"downvoted,omitempty"`
}

// Post holds the fields shared by blogs, comments and replies
type Post struct {
	Id         pr.ObjectID   `bson:"_id" json:"_id"`
	Content    string        `bson:"content" json:"content" binding:"max=20000"`
	Author     pr.ObjectID   `bson:"author" json:"author"`
	DateTime   time.Time     `bson:"dateTime" json:"dateTime"`
	LastUpdate time.Time     `bson:"lastUpdate" json:"lastUpdate"`
	Replies    []pr.ObjectID `bson:"replies" json:"replies"`
	Reports    []Report      `bson:"reports" json:"reports,omitempty"`
	Votes      `bson:",inline"`
}

// Init resets a post to its freshly created state
func (p *Post) Init(author pr.ObjectID) {
	now := time.Now()

	p.Id = pr.NewObjectID()
	p.Author = author
	p.DateTime = now
	p.LastUpdate = now
	p.Replies = []pr.ObjectID{}
	p.Reports = []Report{}
	p.Votes = Votes{Upvotes: []pr.ObjectID{}, Downvotes: []pr.ObjectID{}}
}

type Blog struct {
	Post       `bson:",inline"`
	Title      string   `bson:"title" json:"title" binding:"max=256"`
	Tags       []string `bson:"tags" json:"tags" binding:"max=10"`
	CoverImage string   `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Stars      int      `bson:"stars" json:"stars"`
}

// NewBlog builds an unsaved blog from a draft
func NewBlog(author pr.ObjectID, d *Draft) *Blog {
	b := &Blog{
		Title:      d.Title,
		Tags:       d.Tags,
		CoverImage: d.CoverImage,
	}
	b.Content = d.Content
	b.Author = author
	return b
}

// Comment is a node of a blog's reply tree; replies use the same shape
type Comment struct {
	Post   `bson:",inline"`
	BlogId pr.ObjectID `bson:"blogId,omitempty" json:"blogId,omitempty"`
}

// Parent references where a comment hangs: a blog or another node of the same tree
type Parent struct {
	BlogId    string `json:"blogId" form:"blogId"`
	CommentId string `json:"commentId" form:"commentId"`
	ReplyId   string `json:"replyId" form:"replyId"`
}
