package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const publicIDLength = 21

// NewEntityID returns a fresh public id for a graph entity.
func NewEntityID() string {
	return "ent_" + gonanoid.Must(publicIDLength)
}

// NewRelationID returns a fresh public id for a graph relation.
func NewRelationID() string {
	return "rel_" + gonanoid.Must(publicIDLength)
}

// NewJobID returns a fresh correlation id for a queued job.
func NewJobID() string {
	return "job_" + gonanoid.Must(publicIDLength)
}
