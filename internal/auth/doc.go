// Package auth provides admin session tokens and credential verification:
// HS256 JWTs for the admin API and Argon2id password hashing.
package auth
