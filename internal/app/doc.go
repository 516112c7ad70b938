// Package app implements the application services of the storefront. They
// orchestrate the domain rules over the repositories and payment gateways;
// multi-table writes run inside one uow.Transactor transaction.
package app
