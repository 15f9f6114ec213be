/*
Name: mongox
Desc: fluent builder for mongo aggregation pipelines and pipeline-style updates
*/
package mongox

import "go.mongodb.org/mongo-driver/bson"

type options struct {
	opts []bson.D
}

func Pipeline() *options {
	return &options{opts: make([]bson.D, 0)}
}

func (p *options) Lookup(from, local, foreign, as string) *options {
	p.opts = append(p.opts, bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   local,
		"foreignField": foreign,
		"as":           as,
	}}})
	return p
}

func (p *options) Match(opt bson.M) *options {
	p.opts = append(p.opts, bson.D{{Key: "$match", Value: opt}})
	return p
}

func (p *options) Project(opt bson.M) *options {
	p.opts = append(p.opts, bson.D{{Key: "$project", Value: opt}})
	return p
}

// Set is usable both in aggregations and in update pipelines.
// Fields within one stage see the document as it was before the stage.
func (p *options) Set(opt bson.M) *options {
	p.opts = append(p.opts, bson.D{{Key: "$set", Value: opt}})
	return p
}

func (p *options) Sort(opt bson.D) *options {
	p.opts = append(p.opts, bson.D{{Key: "$sort", Value: opt}})
	return p
}

func (p *options) Limit(limit int) *options {
	p.opts = append(p.opts, bson.D{{Key: "$limit", Value: limit}})
	return p
}

func (p *options) Skip(skip int) *options {
	p.opts = append(p.opts, bson.D{{Key: "$skip", Value: skip}})
	return p
}

func (p *options) Do() []bson.D {
	return p.opts
}

// expressions

// Arr resolves a field path to its array value, or an empty array when missing
func Arr(field string) bson.M {
	return bson.M{"$ifNull": bson.A{"$" + field, bson.A{}}}
}

// Has reports membership of val in the array field
func Has(val any, field string) bson.M {
	return bson.M{"$in": bson.A{val, Arr(field)}}
}

// Without removes val from the array field
func Without(field string, val any) bson.M {
	return bson.M{"$setDifference": bson.A{Arr(field), bson.A{val}}}
}

// With appends val to the array field
func With(field string, val any) bson.M {
	return bson.M{"$concatArrays": bson.A{Arr(field), bson.A{val}}}
}

// Size counts the array field
func Size(field string) bson.M {
	return bson.M{"$size": Arr(field)}
}
