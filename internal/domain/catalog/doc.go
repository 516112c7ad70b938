// Package catalog defines products, the queries over them and the contracts
// of the services and repository that manage the beverage catalog.
package catalog
