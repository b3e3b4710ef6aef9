// Package domain contains the core business entities of the blog: users and
// the posts they write. It has no knowledge of HTTP or of the database.
package domain
