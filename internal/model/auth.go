package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are JWT claims for a minted display identity.
type SessionClaims struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Token          string `json:"token"`
}
