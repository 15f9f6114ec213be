package model

import (
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

// User id is the subject id issued by the identity provider
type User struct {
	Id      pr.ObjectID   `bson:"_id" json:"_id"`
	Stars   []pr.ObjectID `bson:"stars" json:"stars"`
	Blogs   []pr.ObjectID `bson:"blogs" json:"blogs"`
	Replies []pr.ObjectID `bson:"replies" json:"replies"`
	Drafts  []Draft       `bson:"drafts" json:"drafts"`

	BlogList []BlogBrief `bson:"blogList,omitempty" json:"blogList,omitempty"`
}

type BlogBrief struct {
	Id    pr.ObjectID `bson:"_id" json:"_id"`
	Title string      `bson:"title" json:"title"`
	Stars int         `bson:"stars" json:"stars"`
}

type Draft struct {
	Id         pr.ObjectID `bson:"_id" json:"_id"`
	Title      string      `bson:"title" json:"title" binding:"max=256"`
	Content    string      `bson:"content" json:"content" binding:"max=20000"`
	Tags       []string    `bson:"tags,omitempty" json:"tags" binding:"max=10"`
	CoverImage string      `bson:"coverImage,omitempty" json:"coverImage"`
}

// TagRegistry is the single document holding every tag ever used
type TagRegistry struct {
	Id   string   `bson:"_id" json:"-"`
	Tags []string `bson:"tags" json:"tags"`
}
