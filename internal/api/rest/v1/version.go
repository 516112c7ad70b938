package v1

// BasePath is the prefix of every version 1 route.
const BasePath = "/api/v1/shop"

// AdminPath is the prefix of the back-office routes, relative to BasePath.
const AdminPath = "/admin"
