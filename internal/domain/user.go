package domain

// User es la identidad que el cliente extrae del payload del JWT.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Credentials agrupa los campos que piden login y register.
type Credentials struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
