package model

import pr "go.mongodb.org/mongo-driver/bson/primitive"

type Report struct {
	Id           pr.ObjectID `bson:"_id" json:"_id"`
	UserId       pr.ObjectID `bson:"userId" json:"userId"`
	ReportReason int         `bson:"reportReason" json:"reportReason" binding:"required,min=1"`
	Description  string      `bson:"description" json:"description" binding:"max=1024"`
}
