// Package models contains GORM database models for the infrastructure layer.
// They are kept apart from the domain entities; every model converts to and
// from its entity with ToDomain / FromDomain.
package models
