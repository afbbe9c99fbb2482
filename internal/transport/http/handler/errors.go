package handler

const (
	errFieldsRequired  = "All fields are required"
	errInvalidEmail    = "Invalid email format"
	errEmailTaken      = "User with this email already exists"
	errInvalidCreds    = "Invalid credentials"
	errUserNotFound    = "User not found"
	errEmailExists     = "Email already exists"
	errProductNotFound = "Product not found"
)
