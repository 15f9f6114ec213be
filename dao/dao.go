package dao

import (
	"forum/db"
	"forum/model"

	"github.com/qiniu/qmgo"
)

var (
	Blogs    *BlogDao
	Comments *ThreadDao
	Replies  *ThreadDao
	Tags     *TagDao
	Users    *UserDao
)

// Init binds the daos to the collections opened by db.Open
func Init() {
	Blogs, Comments, Replies, Tags, Users = New(db.Blog, db.Comment, db.Reply, db.User, db.Tag)
}

// New wires the daos over the given collections
func New(blogs, comments, replies, users, tags *qmgo.Collection) (*BlogDao, *ThreadDao, *ThreadDao, *TagDao, *UserDao) {
	forest := &Forest{Blogs: blogs, Comments: comments, Replies: replies}

	b := NewBlogDao(blogs)
	c := NewThreadDao(model.KIND_COMMENT, comments, forest)
	r := NewThreadDao(model.KIND_REPLY, replies, forest)
	t := NewTagDao(tags)
	return b, c, r, t, NewUserDao(users, b, c, r, t)
}
